package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internportal/internal/session"
)

// UserKey — ключ, под которым запись пользователя лежит в контексте Gin.
const UserKey = "sessionUser"

// SessionAuthMiddleware пускает дальше только запросы с валидной сессионной
// кукой и кладёт пользователя в контекст.
func SessionAuthMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		user, err := sessions.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}
