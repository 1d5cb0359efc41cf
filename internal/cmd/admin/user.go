package admin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/louisbranch/bengkel/internal/platform/id"
	"github.com/louisbranch/bengkel/internal/services/web/session"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

type userCreateOptions struct {
	username    string
	displayName string
	role        string
	password    string
}

func newUserCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(newUserCreateCommand(root), newUserDisableCommand(root))
	return cmd
}

func newUserCreateCommand(root *rootOptions) *cobra.Command {
	opts := &userCreateOptions{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUserCreate(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.username, "username", "", "Sign-in name (required)")
	cmd.Flags().StringVar(&opts.displayName, "display-name", "", "Name shown in the app")
	cmd.Flags().StringVar(&opts.role, "role", storage.RoleCashier, "Role: owner or cashier")
	cmd.Flags().StringVar(&opts.password, "password", "", "Initial password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runUserCreate(cmd *cobra.Command, root *rootOptions, opts *userCreateOptions) error {
	username := strings.ToLower(strings.TrimSpace(opts.username))
	if username == "" {
		return errors.New("username is required")
	}
	if !storage.ValidRole(opts.role) {
		return fmt.Errorf("role %q is not valid", opts.role)
	}
	if len(opts.password) < session.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", session.MinPasswordLength)
	}
	displayName := strings.TrimSpace(opts.displayName)
	if displayName == "" {
		displayName = username
	}

	store, err := root.openStore()
	if err != nil {
		return err
	}
	defer closeStore(cmd, store)

	ctx := cmd.Context()
	if _, err := store.GetUserByUsername(ctx, username); err == nil {
		return fmt.Errorf("user %q already exists", username)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("look up user: %w", err)
	}

	hash, err := session.HashPassword(opts.password)
	if err != nil {
		return err
	}
	userID, err := id.NewID()
	if err != nil {
		return fmt.Errorf("generate user id: %w", err)
	}
	if err := store.PutUser(ctx, storage.User{
		ID:           userID,
		Username:     username,
		DisplayName:  displayName,
		Role:         opts.role,
		PasswordHash: hash,
	}); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (%s)\n", opts.role, username, userID)
	return nil
}

func newUserDisableCommand(root *rootOptions) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Disable a staff account and end its sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := root.openStore()
			if err != nil {
				return err
			}
			defer closeStore(cmd, store)

			ctx := cmd.Context()
			user, err := store.GetUserByUsername(ctx, username)
			if err != nil {
				return fmt.Errorf("look up user %q: %w", username, err)
			}
			user.Disabled = true
			if err := store.PutUser(ctx, user); err != nil {
				return fmt.Errorf("disable user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Disabled %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Sign-in name (required)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
