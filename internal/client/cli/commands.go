package cli

import (
	"context"
	"fmt"
)

// Run dispatches a single command invocation
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "logout-all":
		return c.runLogoutAll(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "add":
		return c.runAdd(ctx, args)
	case "list":
		return c.runList(ctx, args)
	case "done":
		return c.runDone(ctx, args)
	case "rm":
		return c.runDelete(ctx, args)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
