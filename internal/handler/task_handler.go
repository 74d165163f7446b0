package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"internportal/internal/apiclient"
	"internportal/internal/export"
	"internportal/internal/model"
	"internportal/internal/store"
)

type TaskHandler struct {
	taskAPI   apiclient.TaskAPI
	internAPI apiclient.InternAPI
	views     *store.ViewStore
}

func NewTaskHandler(taskAPI apiclient.TaskAPI, internAPI apiclient.InternAPI, views *store.ViewStore) *TaskHandler {
	return &TaskHandler{taskAPI: taskAPI, internAPI: internAPI, views: views}
}

// TaskRequest представляет форму создания или редактирования задачи.
type TaskRequest struct {
	InternID     string `json:"internId" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Deadline     string `json:"deadline" binding:"required"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
	AssignedDate string `json:"assignedDate"`
}

// StatusUpdateRequest представляет смену статуса с причиной.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// resolveStatus приводит статус формы к каноническому значению и
// проверяет инвариант причины. Возвращает причину уже с учётом правила
// "completed очищает причину".
func resolveStatus(rawStatus, reason string) (model.TaskStatus, string, string) {
	status := model.ParseStatus(rawStatus)
	if !status.Valid() {
		return status, "", "Unknown task status"
	}
	if status.RequiresReason() && strings.TrimSpace(reason) == "" {
		return status, "", "Please provide a reason for this status"
	}
	if status == model.StatusCompleted {
		reason = ""
	}
	return status, reason, ""
}

// List получает все задачи и заменяет локальный снимок.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskAPI.ListTasks(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	h.views.ReplaceTasks(tasks)
	c.JSON(http.StatusOK, tasks)
}

// Create создаёт задачу. Статус по умолчанию — not_started.
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields"})
		return
	}

	if req.Status == "" {
		req.Status = string(model.StatusNotStarted)
	}
	status, reason, msg := resolveStatus(req.Status, req.Reason)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	assignedDate := req.AssignedDate
	if assignedDate == "" {
		assignedDate = time.Now().Format("2006-01-02")
	}

	task := model.Task{
		Title:        req.Title,
		Description:  req.Description,
		AssigneeID:   req.InternID,
		Deadline:     req.Deadline,
		Status:       status,
		Reason:       reason,
		AssignedDate: assignedDate,
	}

	created, err := h.taskAPI.CreateTask(c.Request.Context(), task)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	h.views.UpsertTask(*created)
	c.JSON(http.StatusCreated, created)
}

// Update полностью заменяет запись задачи.
func (h *TaskHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields"})
		return
	}

	if req.Status == "" {
		req.Status = string(model.StatusNotStarted)
	}
	status, reason, msg := resolveStatus(req.Status, req.Reason)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	task := model.Task{
		Title:        req.Title,
		Description:  req.Description,
		AssigneeID:   req.InternID,
		Deadline:     req.Deadline,
		Status:       status,
		Reason:       reason,
		AssignedDate: req.AssignedDate,
	}

	updated, err := h.taskAPI.UpdateTask(c.Request.Context(), id, task)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	h.views.UpsertTask(*updated)
	c.JSON(http.StatusOK, updated)
}

// UpdateStatus меняет только пару статус/причина.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a status"})
		return
	}

	status, reason, msg := resolveStatus(req.Status, req.Reason)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	patched, err := h.taskAPI.PatchTaskStatus(c.Request.Context(), id, status, reason)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	h.views.UpsertTask(*patched)
	c.JSON(http.StatusOK, patched)
}

// Delete удаляет задачу после явного подтверждения.
func (h *TaskHandler) Delete(c *gin.Context) {
	if !confirmed(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Are you sure you want to delete this task? Re-submit with confirm=true"})
		return
	}

	id := c.Param("id")
	if err := h.taskAPI.DeleteTask(c.Request.Context(), id); err != nil {
		writeUpstreamError(c, err)
		return
	}

	h.views.RemoveTask(id)
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// Export отдаёт книгу истории задач как вложение.
func (h *TaskHandler) Export(c *gin.Context) {
	tasks, err := h.taskAPI.ListTasks(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	people, err := h.internAPI.ListInterns(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	now := time.Now()
	workbook, err := export.BuildWorkbook(tasks, people, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export file"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(now)+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		// Заголовки уже ушли, остаётся только оборвать ответ
		c.Abort()
	}
}
