package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	auth, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	if len(args) != 1 {
		return fmt.Errorf("usage: taskkeeper rm <id>")
	}

	task, err := c.apiClient.DeleteTask(ctx, auth.Token, args[0])
	if err != nil {
		return err
	}

	c.io.Printf("Deleted: %s\n", task.Description)
	return nil
}
