package export

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"internportal/internal/model"
)

const (
	DetailSheet  = "Task History Details"
	SummarySheet = "Summary Statistics"

	dateLayout = "2006-01-02"
)

// Filename returns the download name for a workbook generated now, e.g.
// Task_History_2024-11-20_0935.xlsx.
func Filename(now time.Time) string {
	return fmt.Sprintf("Task_History_%s_%s.xlsx", now.Format(dateLayout), now.Format("1504"))
}

// DaysUntilDeadline returns ceil((deadline - now) / 24h). The second
// value is false when the task has no parseable deadline.
func DaysUntilDeadline(deadline string, now time.Time) (int, bool) {
	due, err := time.Parse(dateLayout, deadline)
	if err != nil {
		return 0, false
	}
	return int(math.Ceil(due.Sub(now).Hours() / 24)), true
}

// DaysSinceCreated returns floor((now - createdAt) / 24h).
func DaysSinceCreated(createdAt, now time.Time) int {
	return int(math.Floor(now.Sub(createdAt).Hours() / 24))
}

// Priority buckets a task for the history sheet. Completed tasks win
// regardless of deadline; the rest bucket by days until the deadline.
func Priority(task model.Task, now time.Time) string {
	if task.Status == model.StatusCompleted {
		return "Completed"
	}
	days, ok := DaysUntilDeadline(task.Deadline, now)
	if !ok {
		return "No Deadline"
	}
	switch {
	case days < 0:
		return "Overdue"
	case days <= 3:
		return "High"
	case days <= 7:
		return "Medium"
	default:
		return "Low"
	}
}

var detailHeader = []interface{}{
	"Title", "Assignee", "Status", "Assigned Date", "Deadline",
	"Days Until Deadline", "Days Since Created", "Priority", "Reason",
}

// BuildWorkbook produces the two-sheet task history workbook. Rows are
// sorted by creation time, most recent first.
func BuildWorkbook(tasks []model.Task, people []model.Person, now time.Time) (*excelize.File, error) {
	sorted := append([]model.Task(nil), tasks...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DetailSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, err
	}

	if err := writeDetails(f, sorted, people, now); err != nil {
		return nil, err
	}
	if err := writeSummary(f, sorted, people); err != nil {
		return nil, err
	}
	return f, nil
}

func writeDetails(f *excelize.File, tasks []model.Task, people []model.Person, now time.Time) error {
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}

	if err := f.SetSheetRow(DetailSheet, "A1", &detailHeader); err != nil {
		return err
	}

	for i, task := range tasks {
		assignee := task.AssigneeName
		if assignee == "" {
			assignee = names[task.AssigneeID]
		}
		if assignee == "" {
			assignee = "Unassigned"
		}

		var daysUntil interface{}
		if days, ok := DaysUntilDeadline(task.Deadline, now); ok {
			daysUntil = days
		} else {
			daysUntil = ""
		}

		row := []interface{}{
			task.Title,
			assignee,
			task.Status.DisplayLabel(),
			task.AssignedDate,
			task.Deadline,
			daysUntil,
			DaysSinceCreated(task.CreatedAt, now),
			Priority(task, now),
			task.Reason,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(DetailSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(DetailSheet, "A", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(DetailSheet, "C", "H", 18); err != nil {
		return err
	}
	return f.SetColWidth(DetailSheet, "I", "I", 40)
}

var canonicalStatuses = []model.TaskStatus{
	model.StatusNotStarted,
	model.StatusAcknowledged,
	model.StatusInProgress,
	model.StatusCompleted,
	model.StatusBlocked,
}

func writeSummary(f *excelize.File, tasks []model.Task, people []model.Person) error {
	byStatus := make(map[model.TaskStatus]int)
	for _, t := range tasks {
		byStatus[t.Status]++
	}

	rows := [][]interface{}{
		{"Tasks by Status", ""},
		{"Status", "Count"},
	}
	for _, status := range canonicalStatuses {
		rows = append(rows, []interface{}{status.DisplayLabel(), byStatus[status]})
	}

	rows = append(rows, []interface{}{"", ""}, []interface{}{"People by Status and Role", ""}, []interface{}{"Group", "Count"})

	type group struct{ status, role string }
	byGroup := make(map[group]int)
	for _, p := range people {
		byGroup[group{p.Status, p.Role}]++
	}
	for _, status := range []string{model.PersonActive, model.PersonInactive} {
		for _, role := range []string{model.RoleIntern, model.RoleStudent} {
			label := fmt.Sprintf("%s %ss", status, role)
			rows = append(rows, []interface{}{label, byGroup[group{status, role}]})
		}
	}

	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 26)
}
