package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"internportal/internal/handler"
	"internportal/internal/model"
	"internportal/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок клиента внешнего API (задачи)
type MockTaskAPI struct {
	mock.Mock
}

func (m *MockTaskAPI) ListTasks(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskAPI) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	args := m.Called(ctx, task)
	created := args.Get(0)
	if created == nil {
		return nil, args.Error(1)
	}
	return created.(*model.Task), args.Error(1)
}

func (m *MockTaskAPI) UpdateTask(ctx context.Context, id string, task model.Task) (*model.Task, error) {
	args := m.Called(ctx, id, task)
	updated := args.Get(0)
	if updated == nil {
		return nil, args.Error(1)
	}
	return updated.(*model.Task), args.Error(1)
}

func (m *MockTaskAPI) PatchTaskStatus(ctx context.Context, id string, status model.TaskStatus, reason string) (*model.Task, error) {
	args := m.Called(ctx, id, status, reason)
	patched := args.Get(0)
	if patched == nil {
		return nil, args.Error(1)
	}
	return patched.(*model.Task), args.Error(1)
}

func (m *MockTaskAPI) DeleteTask(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskAPI) ListInternTasks(ctx context.Context, internID string) ([]model.Task, error) {
	args := m.Called(ctx, internID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func setupTaskTest() (*gin.Engine, *MockTaskAPI, *MockInternAPI, *store.ViewStore) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockTasks := new(MockTaskAPI)
	mockInterns := new(MockInternAPI)
	views := store.New()
	taskHandler := handler.NewTaskHandler(mockTasks, mockInterns, views)

	r.GET("/tasks", taskHandler.List)
	r.POST("/tasks", taskHandler.Create)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
	r.DELETE("/tasks/:id", taskHandler.Delete)
	r.GET("/tasks/export", taskHandler.Export)

	return r, mockTasks, mockInterns, views
}

func TestTaskCreate_MissingAssignee(t *testing.T) {
	// Arrange
	router, mockTasks, _, _ := setupTaskTest()

	body, _ := json.Marshal(map[string]string{
		"title":    "Complete onboarding",
		"deadline": "2024-11-20",
	})
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert — никакой POST наружу не уходит
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Please fill in all required fields")
	mockTasks.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestTaskCreate_DefaultsToNotStarted(t *testing.T) {
	// Arrange
	router, mockTasks, _, _ := setupTaskTest()

	var sent model.Task
	created := &model.Task{ID: "t1", Title: "Complete onboarding", Status: model.StatusNotStarted}
	mockTasks.On("CreateTask", mock.Anything, mock.AnythingOfType("model.Task")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(model.Task)
		}).
		Return(created, nil)

	body, _ := json.Marshal(map[string]string{
		"internId": "1",
		"title":    "Complete onboarding",
		"deadline": "2024-11-20",
	})
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, model.StatusNotStarted, sent.Status)
	mockTasks.AssertExpectations(t)
}

func TestTaskStatusUpdate_BlockedNeedsReason(t *testing.T) {
	// Arrange
	router, mockTasks, _, _ := setupTaskTest()

	body, _ := json.Marshal(map[string]string{"status": "blocked", "reason": "   "})
	req, _ := http.NewRequest("PATCH", "/tasks/t1/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert — отказ до сетевого вызова
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Please provide a reason")
	mockTasks.AssertNotCalled(t, "PatchTaskStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskStatusUpdate_InProgressNeedsReason(t *testing.T) {
	// Arrange
	router, mockTasks, _, _ := setupTaskTest()

	body, _ := json.Marshal(map[string]string{"status": "in_progress"})
	req, _ := http.NewRequest("PATCH", "/tasks/t1/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockTasks.AssertNotCalled(t, "PatchTaskStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskStatusUpdate_CompletedClearsReason(t *testing.T) {
	// Arrange
	router, mockTasks, _, views := setupTaskTest()
	views.ReplaceTasks([]model.Task{{ID: "t1", Status: model.StatusBlocked, Reason: "env down"}})

	patched := &model.Task{ID: "t1", Status: model.StatusCompleted}
	mockTasks.On("PatchTaskStatus", mock.Anything, "t1", model.StatusCompleted, "").Return(patched, nil)

	// Причина в форме осталась от прежнего статуса — она должна обнулиться
	body, _ := json.Marshal(map[string]string{"status": "completed", "reason": "env down"})
	req, _ := http.NewRequest("PATCH", "/tasks/t1/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert — и в запросе наружу, и в снимке причины больше нет
	assert.Equal(t, http.StatusOK, resp.Code)
	tasks := views.Tasks()
	assert.Len(t, tasks, 1)
	assert.Empty(t, tasks[0].Reason)
	mockTasks.AssertExpectations(t)
}

func TestTaskStatusUpdate_LegacyLabel(t *testing.T) {
	// Arrange — старая метка доски приводится к канону до вызова API
	router, mockTasks, _, _ := setupTaskTest()

	patched := &model.Task{ID: "t1", Status: model.StatusBlocked, Reason: "waiting on access"}
	mockTasks.On("PatchTaskStatus", mock.Anything, "t1", model.StatusBlocked, "waiting on access").Return(patched, nil)

	body, _ := json.Marshal(map[string]string{"status": "Blocked", "reason": "waiting on access"})
	req, _ := http.NewRequest("PATCH", "/tasks/t1/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	mockTasks.AssertExpectations(t)
}

func TestTaskDelete_RequiresConfirmation(t *testing.T) {
	// Arrange
	router, mockTasks, _, _ := setupTaskTest()

	req, _ := http.NewRequest("DELETE", "/tasks/t1", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockTasks.AssertNotCalled(t, "DeleteTask", mock.Anything, mock.Anything)
}

func TestTaskExport_Download(t *testing.T) {
	// Arrange
	router, mockTasks, mockInterns, _ := setupTaskTest()

	mockTasks.On("ListTasks", mock.Anything).Return([]model.Task{
		{ID: "t1", Title: "Onboarding", AssigneeID: "1", Status: model.StatusCompleted, CreatedAt: time.Now()},
	}, nil)
	mockInterns.On("ListInterns", mock.Anything).Return([]model.Person{
		{ID: "1", Name: "Sarah Johnson", Status: model.PersonActive, Role: model.RoleIntern},
	}, nil)

	req, _ := http.NewRequest("GET", "/tasks/export", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert — готовый xlsx уходит вложением с ожидаемым именем
	assert.Equal(t, http.StatusOK, resp.Code)
	disposition := resp.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, `attachment; filename="Task_History_`)
	assert.True(t, strings.HasSuffix(strings.TrimSuffix(disposition, `"`), ".xlsx"))
	assert.NotZero(t, resp.Body.Len())
	mockTasks.AssertExpectations(t)
	mockInterns.AssertExpectations(t)
}
