package cli

import (
	"sort"
	"strings"

	"github.com/opsboard/taskboard/pkg/tasks/models"
)

// Filter narrows a task list the way the list view does: by the calendar day
// or month of created_at, and by a case-insensitive substring of the task
// name or status name.
type Filter struct {
	Day    string // YYYY-MM-DD
	Month  string // YYYY-MM
	Search string
}

func FilterTasks(tasks []models.EnrichedTask, f Filter) []models.EnrichedTask {
	search := strings.ToLower(f.Search)

	out := make([]models.EnrichedTask, 0, len(tasks))
	for _, task := range tasks {
		if f.Day != "" && task.CreatedAt.Format("2006-01-02") != f.Day {
			continue
		}
		if f.Month != "" && task.CreatedAt.Format("2006-01") != f.Month {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(task.JobName), search) &&
			!strings.Contains(strings.ToLower(task.StatusName), search) {
			continue
		}
		out = append(out, task)
	}
	return out
}

// SortByUpdatedDesc orders tasks newest-updated first for display.
func SortByUpdatedDesc(tasks []models.EnrichedTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt)
	})
}
