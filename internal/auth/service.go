// Package auth registers and authenticates administrators and issues the
// signed session tokens that guard the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/UnknownOlympus/athena/internal/lib/apperr"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/repository"
)

// User-facing messages.
const (
	MsgMissingFields      = "Please fill in all fields"
	MsgPasswordTooLong    = "Password must be at most 72 bytes"
	MsgAdminExists        = "Admin already exists"
	MsgInvalidCredentials = "Invalid username or password"
	MsgUnauthorized       = "Unauthorized"
	MsgTokenInvalid       = "Token is invalid"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// Session is the outcome of a successful registration or login.
type Session struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// Options tune token lifetimes and hashing cost.
type Options struct {
	RegisterTTL time.Duration
	LoginTTL    time.Duration
	BcryptCost  int
}

type Service struct {
	log       *slog.Logger
	repo      repository.AdminRepoIface
	tokens    *TokenManager
	revoker   Revoker
	metrics   *metrics.Metrics
	opts      Options
	dummyHash []byte
}

// NewService creates the auth service. revoker may be nil, in which case logout
// only clears the client cookie and tokens stay valid until they expire.
func NewService(
	log *slog.Logger,
	repo repository.AdminRepoIface,
	tokens *TokenManager,
	revoker Revoker,
	metrics *metrics.Metrics,
	opts Options,
) (*Service, error) {
	// compared against when the username is unknown, so both paths cost one bcrypt run
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("athena-dummy-password"), opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}

	return &Service{
		log:       log,
		repo:      repo,
		tokens:    tokens,
		revoker:   revoker,
		metrics:   metrics,
		opts:      opts,
		dummyHash: dummyHash,
	}, nil
}

func (s *Service) initLogger(opn string) *slog.Logger {
	return s.log.With(
		sl.Op(opn),
		slog.String("division", "auth"),
	)
}

func (s *Service) record(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	s.metrics.AuthAttempts.WithLabelValues(operation, result).Inc()
}

// Register creates a new administrator and opens a short-lived session for it.
func (s *Service) Register(ctx context.Context, username, password string) (session Session, err error) {
	const opn = "Auth.Register"
	log := s.initLogger(opn)
	defer func() { s.record("register", err) }()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, apperr.Validation(MsgMissingFields)
	}
	if len(password) > maxPasswordBytes {
		return Session{}, apperr.Validation(MsgPasswordTooLong)
	}

	_, err = s.repo.GetAdminByUsername(ctx, username)
	switch {
	case err == nil:
		return Session{}, apperr.Conflict(MsgAdminExists, nil)
	case !errors.Is(err, repository.ErrNotFound):
		return Session{}, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.repo.SaveAdmin(ctx, username, string(hash)); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return Session{}, apperr.Conflict(MsgAdminExists, err)
		}
		return Session{}, fmt.Errorf("failed to save admin: %w", err)
	}

	session, err = s.openSession(username, s.opts.RegisterTTL)
	if err != nil {
		return Session{}, err
	}

	log.InfoContext(ctx, "Administrator registered", "username", username)

	return session, nil
}

// Login checks the credentials and opens a long-lived session. Unknown users and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (session Session, err error) {
	const opn = "Auth.Login"
	log := s.initLogger(opn)
	defer func() { s.record("login", err) }()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, apperr.Validation(MsgMissingFields)
	}
	// bcrypt ignores everything past the limit, so a longer password can never be the stored one
	if len(password) > maxPasswordBytes {
		return Session{}, apperr.Unauthorized(MsgInvalidCredentials, nil)
	}

	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			log.DebugContext(ctx, "Login for unknown administrator", "username", username)
			return Session{}, apperr.Unauthorized(MsgInvalidCredentials, nil)
		}
		return Session{}, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		log.DebugContext(ctx, "Password mismatch", "username", username)
		return Session{}, apperr.Unauthorized(MsgInvalidCredentials, nil)
	}

	return s.openSession(admin.Username, s.opts.LoginTTL)
}

// VerifySession returns the claims of a valid, unrevoked token.
// A missing token is Unauthorized, any other rejection is Forbidden.
func (s *Service) VerifySession(ctx context.Context, token string) (claims *Claims, err error) {
	defer func() { s.record("verify", err) }()

	if token == "" {
		return nil, apperr.Unauthorized(MsgUnauthorized, nil)
	}

	claims, err = s.tokens.Parse(token)
	if err != nil {
		return nil, apperr.Forbidden(MsgTokenInvalid, err)
	}

	if s.revoker != nil {
		revoked, revErr := s.revoker.IsRevoked(ctx, claims.ID)
		if revErr != nil {
			return nil, fmt.Errorf("failed to verify session: %w", revErr)
		}
		if revoked {
			return nil, apperr.Forbidden(MsgTokenInvalid, nil)
		}
	}

	return claims, nil
}

// Logout revokes token for the rest of its lifetime when a revocation store is
// configured. Tokens that do not verify are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	const opn = "Auth.Logout"
	log := s.initLogger(opn)

	if s.revoker == nil || token == "" {
		return nil
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		log.DebugContext(ctx, "Logout with unusable token", sl.Err(err))
		return nil
	}

	if err = s.revoker.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.metrics.RevokedSessions.Inc()

	log.InfoContext(ctx, "Session revoked", "username", claims.Username)

	return nil
}

func (s *Service) openSession(username string, ttl time.Duration) (Session, error) {
	token, claims, err := s.tokens.Issue(username, ttl)
	if err != nil {
		return Session{}, err
	}

	return Session{Username: username, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}
