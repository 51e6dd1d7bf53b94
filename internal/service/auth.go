// internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ngeukam/backendmaoni/internal/auth"
	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
	"github.com/ngeukam/backendmaoni/internal/session"
)

// AuthService owns login, logout and the single-session guard. A user holds
// at most one live session at a time: the session record lives in redis and
// the user row carries a back-reference to its key.
type AuthService struct {
	users           repository.UserRepositoryIface
	sessions        *session.Store
	passwordHasher  *auth.PasswordHasher
	tokenManager    *auth.TokenManager
	sessionLifetime time.Duration
	logger          *slog.Logger
	validate        *validator.Validate
}

func NewAuthService(
	users repository.UserRepositoryIface,
	sessions *session.Store,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
	sessionLifetime time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:           users,
		sessions:        sessions,
		passwordHasher:  passwordHasher,
		tokenManager:    tokenManager,
		sessionLifetime: sessionLifetime,
		logger:          logger,
		validate:        validator.New(),
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	User       *model.User     `json:"user"`
	SessionKey string          `json:"session_key"`
	Tokens     *auth.TokenPair `json:"tokens"`
}

// Login authenticates the user and opens their session. A user with a live
// session is refused outright; a stale or expired back-reference is cleaned
// up and login proceeds.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	verified, err := s.passwordHasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !verified {
		return nil, domain.ErrInvalidCredentials
	}

	if user.CurrentSessionKey != nil {
		rec, err := s.sessions.Find(ctx, *user.CurrentSessionKey)
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			// Stale back-reference, the record is already gone.
			if err := s.users.SetSessionKey(ctx, user.ID, nil); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		case rec.Expired():
			if err := s.sessions.Delete(ctx, rec.Key); err != nil {
				return nil, err
			}
			if err := s.users.SetSessionKey(ctx, user.ID, nil); err != nil {
				return nil, err
			}
		default:
			return nil, domain.ErrSessionAlreadyActive
		}
	}

	rec, err := s.sessions.Create(ctx, user.ID, s.sessionLifetime)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetSessionKey(ctx, user.ID, &rec.Key); err != nil {
		return nil, err
	}
	user.CurrentSessionKey = &rec.Key

	tokens, err := s.tokenManager.GeneratePair(user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return &LoginOutput{
		User:       user,
		SessionKey: rec.Key,
		Tokens:     tokens,
	}, nil
}

// Logout closes the user's session and clears the back-reference. The
// refresh token handed back at login is blacklisted on the way out so it
// cannot mint new pairs after the session is gone; a missing or mangled
// token only costs a log line. If the record has already vanished the key
// is still cleared, but the caller is told nothing was open.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if refreshToken != "" {
		if claims, err := s.tokenManager.Validate(refreshToken, auth.TokenRefresh); err == nil {
			if err := s.sessions.BlacklistToken(ctx, claims.ID, s.tokenManager.RefreshExpiry()); err != nil {
				s.logger.WarnContext(ctx, "refresh token not blacklisted on logout",
					slog.String("user_id", user.ID.String()),
					slog.String("error", err.Error()))
			}
		} else {
			s.logger.WarnContext(ctx, "unparseable refresh token on logout",
				slog.String("user_id", user.ID.String()))
		}
	}

	if user.CurrentSessionKey == nil {
		return domain.ErrNoActiveSession
	}
	key := *user.CurrentSessionKey

	if err := s.users.SetSessionKey(ctx, user.ID, nil); err != nil {
		return err
	}

	if _, err := s.sessions.Find(ctx, key); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrNoActiveSession
		}
		return err
	}

	if err := s.sessions.Delete(ctx, key); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user logged out",
		slog.String("user_id", user.ID.String()))
	return nil
}

// SessionStatus is the answer to "is this user's session still good".
type SessionStatus struct {
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CheckSession reports whether the user's session is live. Expired or
// dangling sessions are cleaned up on the way through, so a false answer
// leaves the user ready to log in again.
func (s *AuthService) CheckSession(ctx context.Context, userID uuid.UUID) (*SessionStatus, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.CurrentSessionKey == nil {
		return &SessionStatus{Active: false}, nil
	}
	key := *user.CurrentSessionKey

	rec, err := s.sessions.Find(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			if err := s.users.SetSessionKey(ctx, user.ID, nil); err != nil {
				return nil, err
			}
			return &SessionStatus{Active: false}, nil
		}
		return nil, err
	}

	if rec.Expired() {
		if err := s.sessions.Delete(ctx, key); err != nil {
			return nil, err
		}
		if err := s.users.SetSessionKey(ctx, user.ID, nil); err != nil {
			return nil, err
		}
		return &SessionStatus{Active: false}, nil
	}

	expiresAt := rec.ExpiresAt
	return &SessionStatus{Active: true, ExpiresAt: &expiresAt}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The used token's
// id goes on the blacklist so each refresh token works once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokenManager.Validate(refreshToken, auth.TokenRefresh)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	blacklisted, err := s.sessions.TokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, domain.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidRefreshToken
	}

	if err := s.sessions.BlacklistToken(ctx, claims.ID, s.tokenManager.RefreshExpiry()); err != nil {
		return nil, err
	}

	tokens, err := s.tokenManager.GeneratePair(user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}
	return tokens, nil
}
