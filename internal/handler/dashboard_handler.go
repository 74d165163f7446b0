package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"internportal/internal/apiclient"
	"internportal/internal/model"
	"internportal/internal/store"
)

type DashboardHandler struct {
	api   apiclient.TaskAPI
	views *store.ViewStore
}

func NewDashboardHandler(api apiclient.TaskAPI, views *store.ViewStore) *DashboardHandler {
	return &DashboardHandler{api: api, views: views}
}

// Tasks возвращает задачи пользователя текущей сессии. Обновление только
// ручное: каждый вызов — свежая выборка с внешнего API.
func (h *DashboardHandler) Tasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	tasks, err := h.api.ListInternTasks(c.Request.Context(), user.InternID)
	if err != nil {
		// Старые версии API не знают выделенного маршрута — тогда
		// берём весь список и фильтруем по исполнителю
		var apiErr *apiclient.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
			writeUpstreamError(c, err)
			return
		}
		all, listErr := h.api.ListTasks(c.Request.Context())
		if listErr != nil {
			writeUpstreamError(c, listErr)
			return
		}
		tasks = filterByAssignee(all, user.InternID)
	}

	for _, task := range tasks {
		h.views.UpsertTask(task)
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateStatus меняет статус одной задачи. Инвариант причины проверяется
// до обращения к внешнему API; при ошибке локальное состояние не
// меняется.
func (h *DashboardHandler) UpdateStatus(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

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

	patched, err := h.api.PatchTaskStatus(c.Request.Context(), id, status, reason)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	h.views.UpsertTask(*patched)
	c.JSON(http.StatusOK, patched)
}

func filterByAssignee(tasks []model.Task, internID string) []model.Task {
	mine := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.AssigneeID == internID {
			mine = append(mine, t)
		}
	}
	return mine
}
