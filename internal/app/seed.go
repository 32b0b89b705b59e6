package app

import (
	"context"
	"strings"

	"hris-dashboard/internal/bootstrap"
	"hris-dashboard/internal/config"
	"hris-dashboard/internal/shared/connection"
	"hris-dashboard/internal/user"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the configured admin account when it does not exist
// yet. It reports whether a row was written.
func SeedAdmin(ctx context.Context, users user.Repository, cfg config.SeedConfig, audit bootstrap.AuditLogger) (bool, error) {
	username := strings.ToLower(strings.TrimSpace(cfg.AdminUsername))
	if username == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	_, err := users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !connection.IsNotFound(err) {
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if err := users.Create(ctx, &user.User{
		Username: username,
		Password: string(hashed),
		Name:     "Administrator",
		Role:     user.RoleAdmin,
	}); err != nil {
		return false, err
	}

	audit.Log(ctx, bootstrap.AuditLog{
		Action:  "ADMIN_SEEDED",
		Message: "initial admin account created",
		Meta:    map[string]any{"username": username},
	})
	return true, nil
}
