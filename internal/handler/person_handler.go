package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"internportal/internal/apiclient"
	"internportal/internal/model"
	"internportal/internal/store"
)

type PersonHandler struct {
	api   apiclient.InternAPI
	views *store.ViewStore
}

func NewPersonHandler(api apiclient.InternAPI, views *store.ViewStore) *PersonHandler {
	return &PersonHandler{api: api, views: views}
}

// InternRequest представляет форму создания или редактирования человека.
// Пароль обязателен только при создании; при редактировании пустой пароль
// означает "оставить текущий".
type InternRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	Password   string `json:"password"`
	Status     string `json:"status"`
	Role       string `json:"role"`
}

func (r InternRequest) toPerson() model.Person {
	status := r.Status
	if status == "" {
		status = model.PersonActive
	}
	role := r.Role
	if role == "" {
		role = model.RoleIntern
	}
	return model.Person{
		Name:       r.Name,
		Email:      strings.ToLower(r.Email),
		Password:   r.Password,
		Department: r.Department,
		StartDate:  r.StartDate,
		Status:     status,
		Role:       role,
	}
}

// List получает весь ростер и заменяет локальный снимок.
func (h *PersonHandler) List(c *gin.Context) {
	people, err := h.api.ListInterns(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	h.views.ReplacePeople(people)
	c.JSON(http.StatusOK, people)
}

// Create создаёт человека. Валидация формы — до любого сетевого вызова.
func (h *PersonHandler) Create(c *gin.Context) {
	var req InternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}

	created, err := h.api.CreateIntern(c.Request.Context(), req.toPerson())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	// Снимок пополняется только записью, которую вернул сервер
	h.views.UpsertPerson(*created)
	c.JSON(http.StatusCreated, created)
}

// Update редактирует человека на месте.
func (h *PersonHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req InternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}

	// Пустой пароль не попадает в запрос к внешнему API вовсе
	req.Password = strings.TrimSpace(req.Password)

	updated, err := h.api.UpdateIntern(c.Request.Context(), id, req.toPerson())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	h.views.UpsertPerson(*updated)
	c.JSON(http.StatusOK, updated)
}

// Delete удаляет человека после явного подтверждения. Из локального
// снимка при этом выпадают и все его задачи; на сервере задачи остаются —
// каскад внешним API не поддерживается.
func (h *PersonHandler) Delete(c *gin.Context) {
	if !confirmed(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Are you sure you want to delete this intern? Re-submit with confirm=true"})
		return
	}

	id := c.Param("id")
	if err := h.api.DeleteIntern(c.Request.Context(), id); err != nil {
		writeUpstreamError(c, err)
		return
	}

	h.views.RemovePerson(id)
	c.JSON(http.StatusOK, gin.H{"message": "Intern deleted successfully"})
}
