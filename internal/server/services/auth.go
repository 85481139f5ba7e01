// Package services contains server-side business logic. This file implements
// AuthService, which handles registration and login and issues bearer tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/server/auth"
	"github.com/pzubov/products-api/internal/server/models"
	"github.com/pzubov/products-api/internal/server/repositories/repomanager"
)

// emailRegexp is the WHATWG HTML5 email pattern; close enough to RFC 5322 for
// input validation without rejecting real-world addresses.
var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// normalizeEmail trims surrounding whitespace and lowercases the address.
// All lookups and stored emails go through this.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return emailRegexp.MatchString(strings.TrimSpace(email))
}

// AuthService provides credential-based authentication:
// - Register: create users and issue a first token
// - Login: verify credentials and issue a token
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
}

// NewAuthService constructs an AuthService using repositories and the token codec.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec) *AuthService {
	return &AuthService{db: db, repomanager: m, codec: codec}
}

// Login verifies the email/password pair and returns the user plus a signed
// bearer token. Unknown email and wrong password produce the identical
// common.ErrorInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email string, password string) (*models.User, string, error) {
	if !validEmail(email) {
		return nil, "", common.NewValidationError("Email is required and must be a valid email format")
	}
	if password == "" {
		return nil, "", common.NewValidationError("Password is required")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordDigest) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Register creates a new user with role "user" and returns it together with
// a freshly issued token.
func (s *AuthService) Register(ctx context.Context, email string, password string, name string) (*models.User, string, error) {
	if !validEmail(email) {
		return nil, "", common.NewValidationError("Email is required and must be a valid email format")
	}
	if len(password) < 8 {
		return nil, "", common.NewValidationError("Password must be at least 8 characters")
	}
	if len(name) < 1 || len(name) > 100 {
		return nil, "", common.NewValidationError("Name is required and must be between 1-100 characters")
	}

	repo := s.repomanager.Users(s.db)
	normalized := normalizeEmail(email)

	if _, err := repo.GetByEmail(ctx, normalized); err == nil {
		return nil, "", common.ErrorEmailExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", common.ErrorInternal
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	now := time.Now()
	user := &models.User{
		ID:             uuid.NewString(),
		Email:          normalized,
		Name:           name,
		PasswordDigest: digest,
		Role:           models.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := repo.Create(ctx, user); err != nil {
		return nil, "", common.ErrorInternal
	}

	token, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}
