package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/taskkeeper/pkg/api"
)

func (c *Cli) runDone(ctx context.Context, args []string) error {
	auth, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	if len(args) != 1 {
		return fmt.Errorf("usage: taskkeeper done <id>")
	}

	completed := true
	task, err := c.apiClient.UpdateTask(ctx, auth.Token, args[0], api.UpdateTaskRequest{
		Completed: &completed,
	})
	if err != nil {
		return err
	}

	c.io.Printf("Completed: %s\n", task.Description)
	return nil
}
