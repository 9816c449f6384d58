package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkandie/acquisitions/internal/config"
	"github.com/mkandie/acquisitions/internal/domain/user"
	"github.com/mkandie/acquisitions/internal/security"
)

// EnsureAdminUser inserts a bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured and no user with that email exists yet.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy int

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (email, name, role, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW())`,
		cfg.AdminEmail, cfg.AdminName, user.RoleAdmin, hash,
	)

	return err
}
