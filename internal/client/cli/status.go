package cli

import (
	"context"
)

func (c *Cli) runWhoami(ctx context.Context) error {
	auth, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	// Ask the server rather than trusting the cache: this also tells the
	// user when the cached session has been revoked elsewhere.
	user, err := c.apiClient.GetMe(ctx, auth.Token)
	if err != nil {
		return err
	}

	c.io.Printf("Email: %s\n", user.Email)
	c.io.Printf("Name:  %s\n", user.Name)
	if user.Age != nil {
		c.io.Printf("Age:   %d\n", *user.Age)
	}
	c.io.Printf("ID:    %s\n", user.ID)

	return nil
}
