// Package auth implements credential verification and the login and
// registration flows. Login failures collapse to a single generic error so
// that responses never reveal whether a username exists.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/skillsenselab/secureapi/auth/password"
	"github.com/skillsenselab/secureapi/auth/token"
	apperrors "github.com/skillsenselab/secureapi/errors"
	"github.com/skillsenselab/secureapi/logger"
	"github.com/skillsenselab/secureapi/user"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	// Token is the signed bearer token.
	Token string `json:"token"`

	// TokenType is the authorization scheme clients must use.
	TokenType string `json:"type"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expiresIn"`
}

// Service verifies credentials and manages accounts.
type Service struct {
	store  user.Store
	hasher password.Hasher
	tokens *token.Service
	log    *logger.Logger
}

// NewService creates an authentication service.
func NewService(store user.Store, hasher password.Hasher, tokens *token.Service, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    log.WithComponent("auth"),
	}
}

// Login verifies the username and password and issues a bearer token.
//
// An unknown username and a wrong password return the identical error value
// so the two cases cannot be told apart from outside. Store connectivity
// failures propagate as-is: an outage must surface as 503, never as a
// credential rejection.
func (s *Service) Login(ctx context.Context, username, pw string) (*LoginResult, error) {
	if username == "" || pw == "" {
		return nil, apperrors.InvalidCredentials()
	}

	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
			s.log.Debug("Login failed: unknown username", logger.Fields(
				logger.FieldUsername, username,
			))
			return nil, apperrors.InvalidCredentials()
		}
		// Infrastructure failure, not a verdict about the credentials.
		return nil, err
	}

	if err := s.hasher.Verify(pw, u.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMalformedDigest) {
			// The stored digest is corrupt. The caller still sees the generic
			// failure, but this needs operator attention.
			s.log.Error("Stored password digest is malformed", logger.ErrorFields("login", err))
		} else {
			s.log.Debug("Login failed: wrong password", logger.Fields(
				logger.FieldUsername, username,
			))
		}
		return nil, apperrors.InvalidCredentials()
	}

	signed, err := s.tokens.Issue(u.Username, map[string]any{
		"role": string(u.Role),
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.Info("Login succeeded", logger.Fields(logger.FieldUsername, u.Username))
	return &LoginResult{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	Role     user.Role
}

// Register creates a new account with a hashed password. The username must
// be unused; the check races with concurrent registrations, so the store's
// unique constraint is the final word and also maps to ALREADY_EXISTS.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.MissingField("username")
	}
	role := req.Role
	if role == "" {
		role = user.RoleStandard
	}
	if !role.Valid() {
		return nil, apperrors.InvalidInput("role", "unknown role")
	}

	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return nil, apperrors.AlreadyExists("user", "username")
	} else if !apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InvalidInput("password", err.Error())
	}

	created, err := s.store.Create(ctx, &user.User{
		Username:     username,
		Email:        req.Email,
		PasswordHash: digest,
		Role:         role,
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeAlreadyExists) {
			return nil, apperrors.AlreadyExists("user", "username")
		}
		return nil, err
	}

	s.log.Info("User registered", logger.Fields(
		logger.FieldUsername, created.Username,
		"role", string(created.Role),
	))
	return created, nil
}

// Tokens exposes the token service for the request authentication gate.
func (s *Service) Tokens() *token.Service {
	return s.tokens
}
