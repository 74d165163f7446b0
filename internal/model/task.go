package model

import "time"

type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AssigneeID   string     `json:"assigneeId,omitempty"`
	AssigneeName string     `json:"assigneeName,omitempty"`
	Deadline     string     `json:"deadline,omitempty"`
	Status       TaskStatus `json:"status"`
	Reason       string     `json:"reason,omitempty"`
	AssignedDate string     `json:"assignedDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
