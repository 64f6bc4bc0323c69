package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
)

// SaveAdmin inserts a new administrator. An existing username yields ErrAlreadyExists
// and leaves the stored hash untouched.
func (r *Repository) SaveAdmin(ctx context.Context, username, passwordHash string) error {
	defer r.observe("save_admin", time.Now())

	query := `INSERT INTO admins (username, password_hash) VALUES ($1, $2);`

	_, err := r.db.Exec(ctx, query, username, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to save admin: %w", classify(err))
	}

	return nil
}

// GetAdminByUsername retrieves an administrator by username.
func (r *Repository) GetAdminByUsername(ctx context.Context, username string) (models.Admin, error) {
	var result models.Admin

	defer r.observe("get_admin", time.Now())

	query := `SELECT username, password_hash, created_at FROM admins WHERE username=$1`

	err := r.db.QueryRow(ctx, query, username).Scan(&result.Username, &result.PasswordHash, &result.CreatedAt)
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to get admin by username: %w", classify(err))
	}

	return result, nil
}
