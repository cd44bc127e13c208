package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iudanet/taskkeeper/internal/client/storage"
	"github.com/iudanet/taskkeeper/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	ageInput, err := c.io.ReadInput("Age (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read age: %w", err)
	}

	var age *int
	if ageInput != "" {
		n, err := strconv.Atoi(ageInput)
		if err != nil {
			return fmt.Errorf("age must be a number")
		}
		age = &n
	}

	password, err := c.io.ReadPassword("Password (min 7 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	resp, err := c.apiClient.Register(ctx, api.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Age:      age,
	})
	if err != nil {
		return err
	}

	// The registration response already carries a session token
	if err := c.saveSession(ctx, resp); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Registration successful!")
	c.io.Printf("User ID: %s\n", resp.User.ID)
	c.io.Printf("Email:   %s\n", resp.User.Email)

	return nil
}

func (c *Cli) saveSession(ctx context.Context, resp *api.AuthResponse) error {
	auth := &storage.AuthData{
		Email:   resp.User.Email,
		UserID:  resp.User.ID,
		Name:    resp.User.Name,
		Token:   resp.Token,
		SavedAt: time.Now().Unix(),
	}
	if err := c.authStorage.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
