package cli

import (
	"context"
	"flag"
	"fmt"
	"text/template"

	"github.com/iudanet/taskkeeper/internal/client/api"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	auth, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	completedOnly := fs.Bool("completed", false, "show only completed tasks")
	pendingOnly := fs.Bool("pending", false, "show only pending tasks")
	desc := fs.Bool("desc", false, "newest first")
	limit := fs.Int("limit", 0, "maximum number of tasks")
	skip := fs.Int("skip", 0, "number of tasks to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *completedOnly && *pendingOnly {
		return fmt.Errorf("--completed and --pending are mutually exclusive")
	}

	opts := api.TaskListOptions{
		SortDesc: *desc,
		Limit:    *limit,
		Skip:     *skip,
	}
	if *completedOnly {
		v := true
		opts.Completed = &v
	}
	if *pendingOnly {
		v := false
		opts.Completed = &v
	}

	tasks, err := c.apiClient.ListTasks(ctx, auth.Token, opts)
	if err != nil {
		return err
	}

	tmpl, err := template.New("tasks").Parse(taskListTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse list template: %w", err)
	}

	if err := tmpl.Execute(c.io, tasks); err != nil {
		return fmt.Errorf("failed to render task list: %w", err)
	}

	return nil
}
