package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fleetlog/internal/domain"
	"fleetlog/internal/repositories"
	"fleetlog/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type AuthService struct {
	Users     repositories.UserRepository
	Secret    []byte
	RequestID string
}

// Login checks credentials and returns a signed HS256 token.
func (s AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.Users.CheckPassword(ctx, username, password)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.ValidationError{Field: "password", Msg: "invalid username or password", Err: err}
		}
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(u.ID, 10),
		"username": u.Username,
		"role":     u.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(TokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	utils.LogEvent(s.RequestID, "auth", "login", "user signed in", zap.String("username", u.Username))
	return signed, nil
}

// ParseToken validates raw and returns the caller it identifies.
func ParseToken(secret []byte, raw string) (domain.RequestContext, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return domain.RequestContext{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return domain.RequestContext{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	id, _ := strconv.ParseInt(sub, 10, 64)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return domain.RequestContext{UserID: domain.ID(id), Username: username, Role: role}, nil
}
