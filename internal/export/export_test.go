package export_test

import (
	"testing"
	"time"

	"internportal/internal/export"
	"internportal/internal/model"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 11, 10, 9, 35, 0, 0, time.UTC)

func deadlineIn(days int) string {
	return now.AddDate(0, 0, days).Format("2006-01-02")
}

func TestPriority_Buckets(t *testing.T) {
	// Пять дней до дедлайна — Medium
	task := model.Task{Status: model.StatusInProgress, Deadline: deadlineIn(5)}
	assert.Equal(t, "Medium", export.Priority(task, now))

	// Два дня — High
	task.Deadline = deadlineIn(2)
	assert.Equal(t, "High", export.Priority(task, now))

	// День назад — Overdue
	task.Deadline = deadlineIn(-1)
	assert.Equal(t, "Overdue", export.Priority(task, now))

	// Далёкий дедлайн — Low
	task.Deadline = deadlineIn(30)
	assert.Equal(t, "Low", export.Priority(task, now))
}

func TestPriority_CompletedWinsOverDeadline(t *testing.T) {
	// Завершённая задача — Completed независимо от дедлайна
	task := model.Task{Status: model.StatusCompleted, Deadline: deadlineIn(-10)}
	assert.Equal(t, "Completed", export.Priority(task, now))
}

func TestPriority_NoDeadline(t *testing.T) {
	task := model.Task{Status: model.StatusNotStarted}
	assert.Equal(t, "No Deadline", export.Priority(task, now))
}

func TestDaysSinceCreated(t *testing.T) {
	created := now.Add(-49 * time.Hour) // чуть больше двух суток
	assert.Equal(t, 2, export.DaysSinceCreated(created, now))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Task_History_2024-11-10_0935.xlsx", export.Filename(now))
}

func TestBuildWorkbook_Sheets(t *testing.T) {
	// Arrange
	tasks := []model.Task{
		{ID: "t1", Title: "Older", Status: model.StatusCompleted, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "t2", Title: "Newer", AssigneeID: "1", Status: model.StatusBlocked, Reason: "env down",
			Deadline: deadlineIn(2), CreatedAt: now.Add(-2 * time.Hour)},
	}
	people := []model.Person{
		{ID: "1", Name: "Sarah Johnson", Status: model.PersonActive, Role: model.RoleIntern},
		{ID: "2", Name: "Mike Chen", Status: model.PersonInactive, Role: model.RoleStudent},
	}

	// Act
	f, err := export.BuildWorkbook(tasks, people, now)
	assert.NoError(t, err)

	// Assert — обе страницы на месте
	assert.Equal(t, []string{export.DetailSheet, export.SummarySheet}, f.GetSheetList())

	// Свежая задача идёт первой
	title, err := f.GetCellValue(export.DetailSheet, "A2")
	assert.NoError(t, err)
	assert.Equal(t, "Newer", title)

	// Имя исполнителя разрешено через ростер
	assignee, err := f.GetCellValue(export.DetailSheet, "B2")
	assert.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", assignee)

	priority, err := f.GetCellValue(export.DetailSheet, "H2")
	assert.NoError(t, err)
	assert.Equal(t, "High", priority)

	// Строка завершённой задачи
	priority, err = f.GetCellValue(export.DetailSheet, "H3")
	assert.NoError(t, err)
	assert.Equal(t, "Completed", priority)

	// Сводка начинается с подсчёта задач по статусам
	header, err := f.GetCellValue(export.SummarySheet, "A1")
	assert.NoError(t, err)
	assert.Equal(t, "Tasks by Status", header)
}
