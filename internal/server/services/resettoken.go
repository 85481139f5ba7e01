package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/dbx"
	"github.com/pzubov/products-api/internal/server/auth"
	"github.com/pzubov/products-api/internal/server/models"
	"github.com/pzubov/products-api/internal/server/repositories/repomanager"
)

// resetTokenBytes is the entropy of a reset token before hex encoding (256 bits).
const resetTokenBytes = 32

// ResetTokenStore manages single-use, expiring password-reset tokens stored
// on the user row. At most one token is live per user; issuing a new one
// overwrites the previous value.
type ResetTokenStore struct {
	repomanager repomanager.RepositoryManager
	validity    time.Duration
}

func NewResetTokenStore(m repomanager.RepositoryManager, validity time.Duration) *ResetTokenStore {
	return &ResetTokenStore{repomanager: m, validity: validity}
}

// Issue generates a fresh random token, persists it on the user row with an
// absolute expiry and returns the plaintext value. The plaintext is shown to
// the caller exactly once and is never logged.
func (s *ResetTokenStore) Issue(ctx context.Context, db dbx.DBTX, user *models.User) (string, time.Time, error) {
	token, err := common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return "", time.Time{}, common.ErrorInternal
	}

	expiresAt := time.Now().Add(s.validity)
	if err := s.repomanager.Users(db).SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return "", time.Time{}, common.ErrorInternal
	}

	return token, expiresAt, nil
}

// Consume looks up the user owning the token, checks the expiry window and
// clears the token in a single conditional update. Two concurrent calls with
// the same token cannot both succeed: the compare-and-clear happens at the
// storage layer and the loser observes zero updated rows, surfacing
// common.ErrInvalidToken.
func (s *ResetTokenStore) Consume(ctx context.Context, db dbx.DBTX, token string) (*models.User, error) {
	repo := s.repomanager.Users(db)

	user, err := repo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return nil, common.ErrTokenExpired
	}

	n, err := repo.ClearResetToken(ctx, token)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if n == 0 {
		// Lost a race against a concurrent consume.
		return nil, common.ErrInvalidToken
	}

	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	return user, nil
}

// PasswordResetService orchestrates the forgot/reset-password flow on top of
// the ResetTokenStore.
type PasswordResetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       *ResetTokenStore
}

func NewPasswordResetService(db *sql.DB, m repomanager.RepositoryManager, store *ResetTokenStore) *PasswordResetService {
	return &PasswordResetService{db: db, repomanager: m, store: store}
}

// ForgotPassword issues a reset token for the account registered under the
// given email. Unlike login this reports an unknown address explicitly.
func (s *PasswordResetService) ForgotPassword(ctx context.Context, email string) (string, time.Time, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", time.Time{}, common.ErrEmailNotFound
		}
		return "", time.Time{}, common.ErrorInternal
	}

	return s.store.Issue(ctx, s.db, user)
}

// ResetPassword consumes the token and stores the new password digest. The
// token clearing and the digest update run in one transaction so they commit
// or roll back together.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token string, newPassword string) (*models.User, error) {
	if len(newPassword) < 8 {
		return nil, common.ErrWeakPassword
	}

	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.store.Consume(ctx, tx, token)
		if err != nil {
			return err
		}

		digest, err := auth.HashPassword(newPassword)
		if err != nil {
			return common.ErrorInternal
		}

		if err := s.repomanager.Users(tx).UpdatePasswordDigest(ctx, u.ID, digest); err != nil {
			return common.ErrorInternal
		}

		u.PasswordDigest = digest
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
