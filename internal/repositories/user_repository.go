package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"

	"golang.org/x/crypto/bcrypt"
)

type UserRepository struct {
	DB intdb.DBTX
}

func (r UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = ?
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// EnsureAdmin creates the admin account, or resets its password when it
// already exists so the configured password always works.
func (r UserRepository) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ValidationError{Field: "admin", Msg: "username and password required"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ensure admin: hash password: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE username = ?`, string(hash), username)
	if err != nil {
		return fmt.Errorf("ensure admin: update: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES (?, ?, 'admin', ?)
	`, username, string(hash), intdb.NowStamp()); err != nil {
		return fmt.Errorf("ensure admin: insert: %w", err)
	}
	return nil
}

// CheckPassword returns the user when password matches its stored hash.
func (r UserRepository) CheckPassword(ctx context.Context, username, password string) (models.User, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "invalid username or password", Err: err}
	}
	return u, nil
}
