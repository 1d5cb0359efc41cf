package sqlite

import (
	"context"
	"strings"

	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

const userColumns = `id, username, display_name, role, password_hash, disabled, created_at, updated_at`

// PutUser inserts or replaces a staff account.
func (s *Store) PutUser(ctx context.Context, u storage.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	u.ID = strings.TrimSpace(u.ID)
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	if u.ID == "" {
		return invalidf("user id is required")
	}
	if u.Username == "" {
		return invalidf("username is required")
	}
	if !storage.ValidRole(u.Role) {
		return invalidf("role %q is not valid", u.Role)
	}
	if u.PasswordHash == "" {
		return invalidf("password hash is required")
	}
	u.CreatedAt = s.stamp(u.CreatedAt)
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    username = excluded.username,
    display_name = excluded.display_name,
    role = excluded.role,
    password_hash = excluded.password_hash,
    disabled = excluded.disabled,
    updated_at = excluded.updated_at`,
		u.ID,
		u.Username,
		strings.TrimSpace(u.DisplayName),
		u.Role,
		u.PasswordHash,
		boolToInt(u.Disabled),
		toMillis(u.CreatedAt),
		toMillis(u.UpdatedAt),
	)
	return classify("put user", err)
}

// GetUser fetches a staff account by id.
func (s *Store) GetUser(ctx context.Context, id string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.User{}, invalidf("user id is required")
	}
	return s.getUser(ctx, `id = ?`, id)
}

// GetUserByUsername fetches a staff account by its case-insensitive username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return storage.User{}, invalidf("username is required")
	}
	return s.getUser(ctx, `username = ?`, username)
}

func (s *Store) getUser(ctx context.Context, where string, arg string) (storage.User, error) {
	var (
		u                    storage.User
		disabled             int
		createdAt, updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg).Scan(
		&u.ID,
		&u.Username,
		&u.DisplayName,
		&u.Role,
		&u.PasswordHash,
		&disabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.User{}, classify("get user", err)
	}
	u.Disabled = disabled != 0
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}
