package service

import (
	"context"
	"crypto/subtle"

	"github.com/rs/zerolog"

	"portfolio/api/internal/config"
	"portfolio/api/internal/models"
	"portfolio/api/internal/security"
)

// UserStore is the slice of the user repository the auth engine needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	UpdatePassword(ctx context.Context, id string, hashed string) error
}

// Identity is the result of a successful authorization.
type Identity struct {
	Email string
}

type AuthService struct {
	users UserStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users UserStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

// VerifyCredentials checks an admin login attempt. Every failure looks the
// same from outside: unknown identity, wrong password, wrong role and even
// a failed credential migration all return false with no hint which.
//
// Accounts created before hashing was introduced still hold their secret in
// plaintext. The first successful login through here upgrades the stored
// value to a bcrypt hash, so no plaintext comparison ever happens again for
// that account. Two concurrent first logins may both rehash; the second
// write just replaces an equivalent hash, so the race is left alone.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) bool {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false
	}
	if user.Role != models.UserRoleSuperAdmin {
		return false
	}

	stored := user.Password

	if security.LooksHashed(stored) {
		return security.VerifyPassword(password, stored)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return false
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		s.log.Error().Err(err).Msg("credential migration: hash failed")
		return false
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		s.log.Error().Err(err).Msg("credential migration: persist failed")
		return false
	}

	s.log.Info().Str("user_id", user.ID).Msg("migrated legacy credential to hash")
	return true
}

// IssueSession signs a stateless session token for a verified admin.
func (s *AuthService) IssueSession(email string) (string, error) {
	return security.GenerateSessionToken(
		s.cfg.Session.Secret,
		email,
		string(models.UserRoleSuperAdmin),
		s.cfg.Session.TTL,
	)
}

// Authorize validates a presented session token. Beyond signature and
// expiry it re-reads the account so a deleted or demoted admin is rejected
// even while holding a token that is otherwise still valid. All failure
// modes collapse to nil.
func (s *AuthService) Authorize(ctx context.Context, token string) *Identity {
	claims, err := security.ParseSessionToken(token, s.cfg.Session.Secret)
	if err != nil {
		return nil
	}
	if claims.Role != string(models.UserRoleSuperAdmin) {
		return nil
	}

	email := claims.Subject
	if email == "" {
		return nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}
	if user.Role != models.UserRoleSuperAdmin {
		return nil
	}

	return &Identity{Email: email}
}
