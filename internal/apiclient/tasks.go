package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"internportal/internal/model"
)

type TaskAPI interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, task model.Task) (*model.Task, error)
	PatchTaskStatus(ctx context.Context, id string, status model.TaskStatus, reason string) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListInternTasks(ctx context.Context, internID string) ([]model.Task, error)
}

var _ TaskAPI = (*Client)(nil)

// wireTask absorbs the shape differences between task endpoints: numeric
// or string ids, and an assignee that is either a raw id or an embedded
// person object.
type wireTask struct {
	ID           json.RawMessage `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	InternID     json.RawMessage `json:"internId"`
	Assignee     json.RawMessage `json:"assignee"`
	Deadline     string          `json:"deadline"`
	Status       string          `json:"status"`
	Reason       string          `json:"reason"`
	AssignedDate string          `json:"assignedDate"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (t wireTask) normalize() model.Task {
	task := model.Task{
		ID:           rawToString(t.ID),
		Title:        t.Title,
		Description:  t.Description,
		Deadline:     t.Deadline,
		Status:       model.ParseStatus(t.Status),
		Reason:       t.Reason,
		AssignedDate: t.AssignedDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}

	assignee := t.InternID
	if len(assignee) == 0 || string(assignee) == "null" {
		assignee = t.Assignee
	}
	task.AssigneeID, task.AssigneeName = parseAssignee(assignee)
	return task
}

// parseAssignee normalizes the two assignee wire shapes into
// (assigneeId, assigneeName).
func parseAssignee(raw json.RawMessage) (string, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", ""
	}
	if id := rawToString(raw); id != "" {
		return id, ""
	}
	var embedded struct {
		ID       json.RawMessage `json:"id"`
		InternID json.RawMessage `json:"internId"`
		Name     string          `json:"name"`
	}
	if err := json.Unmarshal(raw, &embedded); err != nil {
		return "", ""
	}
	id := rawToString(embedded.ID)
	if id == "" {
		id = rawToString(embedded.InternID)
	}
	return id, embedded.Name
}

// rawToString reads a JSON string or number as a string.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// taskBody is the outgoing task payload, always in the canonical shape.
type taskBody struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	InternID     string `json:"internId"`
	Deadline     string `json:"deadline,omitempty"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
	AssignedDate string `json:"assignedDate,omitempty"`
}

func toTaskBody(task model.Task) taskBody {
	return taskBody{
		Title:        task.Title,
		Description:  task.Description,
		InternID:     task.AssigneeID,
		Deadline:     task.Deadline,
		Status:       string(task.Status),
		Reason:       task.Reason,
		AssignedDate: task.AssignedDate,
	}
}

// ListTasks fetches the whole board.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var wire []wireTask
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &wire); err != nil {
		return nil, err
	}
	return normalizeAll(wire), nil
}

// CreateTask creates a task; the server sets id and timestamps.
func (c *Client) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	var wire wireTask
	if err := c.do(ctx, http.MethodPost, "/api/tasks", toTaskBody(task), &wire); err != nil {
		return nil, err
	}
	created := wire.normalize()
	return &created, nil
}

// UpdateTask replaces a task record in full.
func (c *Client) UpdateTask(ctx context.Context, id string, task model.Task) (*model.Task, error) {
	var wire wireTask
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, toTaskBody(task), &wire); err != nil {
		return nil, err
	}
	updated := wire.normalize()
	return &updated, nil
}

// PatchTaskStatus updates only the status/reason pair.
func (c *Client) PatchTaskStatus(ctx context.Context, id string, status model.TaskStatus, reason string) (*model.Task, error) {
	body := map[string]string{
		"status": string(status),
		"reason": reason,
	}
	var wire wireTask
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+id, body, &wire); err != nil {
		return nil, err
	}
	patched := wire.normalize()
	return &patched, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// ListInternTasks fetches one person's tasks. The endpoint returns either
// a bare array or a {"tasks": [...]} envelope.
func (c *Client) ListInternTasks(ctx context.Context, internID string) ([]model.Task, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/interns/"+internID+"/tasks", nil, &raw); err != nil {
		return nil, err
	}

	var wire []wireTask
	if err := json.Unmarshal(raw, &wire); err != nil {
		var envelope struct {
			Tasks []wireTask `json:"tasks"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("%w: malformed task list", ErrUnreachable)
		}
		wire = envelope.Tasks
	}
	return normalizeAll(wire), nil
}

func normalizeAll(wire []wireTask) []model.Task {
	tasks := make([]model.Task, len(wire))
	for i, t := range wire {
		tasks[i] = t.normalize()
	}
	return tasks
}
