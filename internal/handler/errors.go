package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"internportal/internal/apiclient"
	"internportal/internal/middleware"
	"internportal/internal/model"
)

// writeUpstreamError сводит ошибку внешнего API к ответу пользователю:
// сообщение сервера — дословно, недоступность — общим текстом.
func writeUpstreamError(c *gin.Context, err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	if errors.Is(err, apiclient.ErrUnreachable) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Cannot reach the server. Please try again."})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// currentUser достаёт пользователя сессии из контекста Gin.
func currentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(middleware.UserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

// confirmed проверяет явное подтверждение разрушительной операции.
func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}
