package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/opsboard/taskboard/pkg/tasks/api"
	"github.com/opsboard/taskboard/pkg/tasks/client"
	"github.com/opsboard/taskboard/pkg/tasks/models"
	"github.com/spf13/cobra"
)

func serverAddress(cmd *cobra.Command) string {
	server, _ := cmd.Flags().GetString("server")
	if server == "" {
		server = os.Getenv("TASKBOARD_SERVER")
	}
	if server == "" {
		server = "http://localhost:8080"
	}
	return server
}

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taskboard",
		Short:         "taskboard is a terminal client for the task service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("server", "", "base URL of the task service")

	cmd.AddCommand(listCommand())
	cmd.AddCommand(createCommand())
	cmd.AddCommand(updateCommand())
	cmd.AddCommand(deleteCommand())
	return cmd
}

func listCommand() *cobra.Command {
	var filter Filter
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, filtered and sorted newest-updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.NewTaskServiceClient(serverAddress(cmd))

			tasks, err := c.ListTasks(cmd.Context())
			if err != nil {
				return err
			}

			tasks = FilterTasks(tasks, filter)
			SortByUpdatedDesc(tasks)
			if err := PrintTasks(tasks, output); err != nil {
				return err
			}
			if latest := LatestUpdatedTime(tasks); output == "table" && !latest.IsZero() {
				fmt.Printf("Last updated: %s\n", latest.Format("2006-01-02 03:04 PM"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Day, "day", "", "only tasks created on this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.Month, "month", "", "only tasks created in this month (YYYY-MM)")
	cmd.Flags().StringVar(&filter.Search, "search", "", "case-insensitive match on task or status name")
	cmd.Flags().StringVar(&output, "output", "table", "output format: table or json")
	return cmd
}

func parseTimeFlag(cmd *cobra.Command, name string) (api.Timestamp, error) {
	value, _ := cmd.Flags().GetString(name)
	if value == "" {
		return api.Timestamp{Time: time.Now()}, nil
	}
	return api.ParseTimestamp(value)
}

func createCommand() *cobra.Command {
	var req api.CreateTaskRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.NewTaskServiceClient(serverAddress(cmd))

			for flag, dst := range map[string]*api.Timestamp{
				"start":   &req.StartTime,
				"end":     &req.EndTime,
				"created": &req.CreatedAt,
				"updated": &req.UpdatedAt,
			} {
				ts, err := parseTimeFlag(cmd, flag)
				if err != nil {
					return err
				}
				*dst = ts
			}

			resp, err := c.CreateTask(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}
			fmt.Println(resp.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.TaskType, "type", "", "job type name")
	cmd.Flags().StringVar(&req.TaskName, "name", "", "task name")
	cmd.Flags().StringVar(&req.Status, "status", "", "status name")
	cmd.Flags().String("start", "", "start time")
	cmd.Flags().String("end", "", "end time")
	cmd.Flags().String("created", "", "creation time, defaults to now")
	cmd.Flags().String("updated", "", "update time, defaults to now")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("status")
	return cmd
}

func updateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("task id must be an integer: %w", err)
			}

			c := client.NewTaskServiceClient(serverAddress(cmd))
			resolver := NewLookupResolver(c)

			var req api.UpdateTaskRequest

			if cmd.Flags().Changed("type") {
				name, _ := cmd.Flags().GetString("type")
				jobTypeID, err := resolver.Resolve(cmd.Context(), models.LookupTableJobType, name)
				if err != nil {
					return err
				}
				req.JobTypeID = &jobTypeID
			}
			if cmd.Flags().Changed("status") {
				name, _ := cmd.Flags().GetString("status")
				statusID, err := resolver.Resolve(cmd.Context(), models.LookupTableStatus, name)
				if err != nil {
					return err
				}
				req.StatusID = &statusID
			}
			if cmd.Flags().Changed("name") {
				name, _ := cmd.Flags().GetString("name")
				req.JobName = &name
			}

			for flag, dst := range map[string]**api.Timestamp{
				"start":   &req.StartTime,
				"end":     &req.EndTime,
				"created": &req.CreatedAt,
				"updated": &req.UpdatedAt,
			} {
				if !cmd.Flags().Changed(flag) {
					continue
				}
				value, _ := cmd.Flags().GetString(flag)
				ts, err := api.ParseTimestamp(value)
				if err != nil {
					return err
				}
				*dst = &ts
			}

			resp, err := c.UpdateTask(cmd.Context(), uint(id), req)
			if err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}
			fmt.Println(resp.Message)
			return nil
		},
	}

	cmd.Flags().String("type", "", "job type name")
	cmd.Flags().String("name", "", "task name")
	cmd.Flags().String("status", "", "status name")
	cmd.Flags().String("start", "", "start time")
	cmd.Flags().String("end", "", "end time")
	cmd.Flags().String("created", "", "creation time")
	cmd.Flags().String("updated", "", "update time")
	return cmd
}

func deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("task id must be an integer: %w", err)
			}

			c := client.NewTaskServiceClient(serverAddress(cmd))
			if err := c.DeleteTask(cmd.Context(), uint(id)); err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			fmt.Println("Task deleted successfully")
			return nil
		},
	}
}
