package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/taskkeeper/pkg/api"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	auth, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return fmt.Errorf("usage: taskkeeper add <description>")
	}

	task, err := c.apiClient.CreateTask(ctx, auth.Token, api.CreateTaskRequest{
		Description: description,
	})
	if err != nil {
		return err
	}

	c.io.Printf("Created task %s\n", task.ID)
	return nil
}
