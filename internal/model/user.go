package model

// User — запись пользователя, которую внешний API возвращает при входе.
type User struct {
	InternID string `json:"internId"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}
