package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/taskkeeper/internal/client/storage"
)

func (c *Cli) runLogout(ctx context.Context) error {
	auth, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	// Revoke server-side first; a dead session on the server is worse
	// than a stale cache entry.
	if err := c.apiClient.Logout(ctx, auth.Token); err != nil {
		return err
	}

	if err := c.authStorage.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to clear session cache: %w", err)
	}

	c.io.Println("Logged out.")
	return nil
}

func (c *Cli) runLogoutAll(ctx context.Context) error {
	auth, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := c.apiClient.LogoutAll(ctx, auth.Token); err != nil {
		return err
	}

	if err := c.authStorage.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to clear session cache: %w", err)
	}

	c.io.Println("Logged out everywhere.")
	return nil
}
