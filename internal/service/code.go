// internal/service/code.go
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
)

const (
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenLength   = 5

	// How many random draws to attempt per code before concluding the token
	// space is effectively full.
	tokenRetryLimit = 100
)

// CodeService manages the invitation code pool. Every business gets
// model.CodePoolSize single-use codes at creation; consuming one is the only
// way to submit a review against the business.
type CodeService struct {
	codes  repository.CodeRepositoryIface
	logger *slog.Logger
}

func NewCodeService(codes repository.CodeRepositoryIface, logger *slog.Logger) *CodeService {
	return &CodeService{
		codes:  codes,
		logger: logger,
	}
}

func generateToken() (string, error) {
	buf := make([]byte, tokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generating token: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// Provision creates the business's full code pool. When tx is non-nil the
// codes join the caller's transaction, so a failed business creation never
// leaves orphaned codes behind.
func (s *CodeService) Provision(ctx context.Context, tx *gorm.DB, businessID uuid.UUID) ([]model.Code, error) {
	repo := s.codes
	if tx != nil {
		repo = s.codes.WithTx(tx)
	}

	codes := make([]model.Code, 0, model.CodePoolSize)
	batch := make(map[string]struct{}, model.CodePoolSize)

	for len(codes) < model.CodePoolSize {
		token, err := s.drawToken(ctx, repo, batch)
		if err != nil {
			return nil, err
		}

		code := model.Code{
			InvitationCode: token,
			BusinessID:     businessID,
			IsActive:       true,
		}
		if err := repo.Create(ctx, &code); err != nil {
			return nil, err
		}

		batch[token] = struct{}{}
		codes = append(codes, code)
	}

	return codes, nil
}

// drawToken retries random draws until one is unused both in the database and
// in the current batch. Tokens are unique across all businesses.
func (s *CodeService) drawToken(ctx context.Context, repo repository.CodeRepositoryIface, batch map[string]struct{}) (string, error) {
	for attempt := 0; attempt < tokenRetryLimit; attempt++ {
		token, err := generateToken()
		if err != nil {
			return "", err
		}

		if _, dup := batch[token]; dup {
			continue
		}

		exists, err := repo.TokenExists(ctx, token)
		if err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}
	}
	return "", domain.ErrCodeSpaceExhausted
}

// CheckStatus returns the code for a token regardless of its active flag, so
// callers can tell "never existed" from "already used".
func (s *CodeService) CheckStatus(ctx context.Context, token string) (*model.Code, error) {
	return s.codes.FindByToken(ctx, token)
}

// Consume atomically burns an active code. The conditional update guarantees
// that two concurrent consumers of the same token see exactly one success;
// the loser gets domain.ErrCodeInvalidOrInactive.
func (s *CodeService) Consume(ctx context.Context, tx *gorm.DB, token string) (*model.Code, error) {
	repo := s.codes
	if tx != nil {
		repo = s.codes.WithTx(tx)
	}

	code, err := repo.FindActiveByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	consumed, err := repo.Deactivate(ctx, code.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, domain.ErrCodeInvalidOrInactive
	}
	code.IsActive = false

	// Duplicate active rows for one token violate the uniqueness guarantee
	// and point at a data integrity bug upstream. Remove the strays so the
	// token stays single use, and leave a trace for whoever investigates.
	removed, err := repo.DeleteActiveDuplicates(ctx, token, code.ID)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		s.logger.WarnContext(ctx, "removed duplicate active invitation codes",
			slog.String("token", token),
			slog.Int64("removed", removed))
	}

	return code, nil
}

// CodesForBusiness lists a business's codes filtered by their active flag.
func (s *CodeService) CodesForBusiness(ctx context.Context, businessID uuid.UUID, active bool) ([]model.Code, error) {
	return s.codes.FindByBusiness(ctx, businessID, active)
}
