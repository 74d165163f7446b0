package model

type Person struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Department string `json:"department"`
	StartDate  string `json:"startDate"`
	Status     string `json:"status"`
	Role       string `json:"role"`
}

// Статусы человека в портале
const (
	PersonActive   = "Active"
	PersonInactive = "Inactive"
)

// Роли
const (
	RoleIntern  = "Intern"  // стажёр
	RoleStudent = "Student" // студент
)
