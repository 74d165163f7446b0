package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"internportal/internal/model"
)

// CookieName — ключ, под которым сессия хранится у клиента.
const CookieName = "portal_session"

var ErrInvalidSession = errors.New("invalid session")

// Manager подписывает запись пользователя в токен сессии и читает её
// обратно. Отсутствующий или повреждённый токен означает "не вошёл",
// а не ошибку приложения.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue выпускает токен для пользователя после успешного входа.
func (m *Manager) Issue(user model.User) (string, error) {
	claims := jwt.MapClaims{
		"intern_id": user.InternID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"exp":       time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse проверяет токен и восстанавливает запись пользователя.
func (m *Manager) Parse(tokenStr string) (*model.User, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	internID, ok := claims["intern_id"].(string)
	if !ok || internID == "" {
		return nil, ErrInvalidSession
	}

	user := &model.User{InternID: internID}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}
	return user, nil
}

// TTLSeconds возвращает срок жизни сессии для Max-Age куки.
func (m *Manager) TTLSeconds() int {
	return int(m.ttl / time.Second)
}
