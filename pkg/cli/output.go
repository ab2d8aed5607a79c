package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/opsboard/taskboard/pkg/tasks/models"
)

func PrintTasks(tasks []models.EnrichedTask, typeOutput string) error {
	if typeOutput == "json" {
		bytes, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("[printoutput] : %v", err)
		}
		fmt.Println(string(bytes))
		return nil
	}

	printTable := table.NewWriter()
	printTable.SetOutputMirror(os.Stdout)

	printTable.AppendHeader(table.Row{"ID", "Job Type", "Job Name", "Start", "End", "Status", "Created", "Updated"})
	for _, t := range tasks {
		printTable.AppendRow(table.Row{
			t.TaskID,
			t.JobTypeName,
			t.JobName,
			t.StartTime.Format("03:04 PM"),
			t.EndTime.Format("03:04 PM"),
			t.StatusName,
			t.CreatedAt.Format("2006-01-02 03:04 PM"),
			t.UpdatedAt.Format("2006-01-02 03:04 PM"),
		})
	}
	printTable.AppendSeparator()
	printTable.Render()
	return nil
}

// LatestUpdatedTime returns the newest updated_at in the list, zero when the
// list is empty.
func LatestUpdatedTime(tasks []models.EnrichedTask) time.Time {
	var latest time.Time
	for _, t := range tasks {
		if t.UpdatedAt.After(latest) {
			latest = t.UpdatedAt
		}
	}
	return latest
}
