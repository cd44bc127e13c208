// Package cli implements the taskkeeper command line client.
package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/taskkeeper/internal/client/api"
	"github.com/iudanet/taskkeeper/internal/client/storage"
)

type Cli struct {
	apiClient   *api.Client
	authStorage storage.AuthStorage
	io          IO
}

// IO is the terminal abstraction the commands print and read through
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}

func New(apiClient *api.Client, authStorage storage.AuthStorage, io IO) *Cli {
	return &Cli{
		apiClient:   apiClient,
		authStorage: authStorage,
		io:          io,
	}
}

// requireAuth loads the cached session or tells the user to log in
func (c *Cli) requireAuth(ctx context.Context) (*storage.AuthData, error) {
	auth, err := c.authStorage.GetAuth(ctx)
	if err != nil {
		if err == storage.ErrAuthNotFound {
			return nil, fmt.Errorf("not authenticated. Please run 'taskkeeper login' first")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return auth, nil
}

func (c *Cli) PrintUsage() {
	c.io.Printf("%s", usageText)
}
