package model

import "strings"

// TaskStatus — канонический статус задачи. Исторически админская доска
// использовала метки "Pending"/"Acknowledge", а личный кабинет — значения
// в snake_case; канон — snake_case, старые метки парсятся в него.
type TaskStatus string

const (
	StatusNotStarted   TaskStatus = "not_started"
	StatusAcknowledged TaskStatus = "acknowledged"
	StatusInProgress   TaskStatus = "in_progress"
	StatusCompleted    TaskStatus = "completed"
	StatusBlocked      TaskStatus = "blocked"
)

var legacyStatusLabels = map[string]TaskStatus{
	"pending":     StatusNotStarted,
	"acknowledge": StatusAcknowledged,
	"in progress": StatusInProgress,
	"completed":   StatusCompleted,
	"blocked":     StatusBlocked,
}

var statusDisplayLabels = map[TaskStatus]string{
	StatusNotStarted:   "Not Started Yet",
	StatusAcknowledged: "Acknowledged",
	StatusInProgress:   "In Progress",
	StatusCompleted:    "Completed",
	StatusBlocked:      "Started but Not Completed",
}

// ParseStatus приводит строку статуса к каноническому значению. Неизвестные
// строки сохраняются как есть: данными владеет внешний API.
func ParseStatus(raw string) TaskStatus {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if status, ok := legacyStatusLabels[normalized]; ok {
		return status
	}
	switch status := TaskStatus(normalized); status {
	case StatusNotStarted, StatusAcknowledged, StatusInProgress, StatusCompleted, StatusBlocked:
		return status
	}
	return TaskStatus(raw)
}

// Valid сообщает, входит ли статус в канонический набор.
func (s TaskStatus) Valid() bool {
	_, ok := statusDisplayLabels[s]
	return ok
}

// RequiresReason сообщает, обязательна ли причина для этого статуса.
func (s TaskStatus) RequiresReason() bool {
	return s == StatusBlocked || s == StatusInProgress
}

// DisplayLabel возвращает метку статуса для отображения.
func (s TaskStatus) DisplayLabel() string {
	if label, ok := statusDisplayLabels[s]; ok {
		return label
	}
	return string(s)
}
