package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internportal/internal/apiclient"
	"internportal/internal/session"
)

type AuthHandler struct {
	api      apiclient.InternAPI
	sessions *session.Manager
}

func NewAuthHandler(api apiclient.InternAPI, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions}
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login проксирует проверку учётных данных во внешний API и при успехе
// выпускает сессионную куку. Никаких повторов и блокировок — чистый
// сквозной вызов.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter your user ID and password"})
		return
	}

	user, err := h.api.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	token, err := h.sessions.Issue(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetCookie(session.CookieName, token, h.sessions.TTLSeconds(), "/", "", false, true)
	c.JSON(http.StatusOK, user)
}

// Session возвращает пользователя текущей сессии (путь перезагрузки
// страницы: кука читается обратно при старте приложения).
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout сбрасывает сессионную куку.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
