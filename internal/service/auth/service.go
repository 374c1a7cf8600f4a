package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/mssola/useragent"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/infra/identity"
	"github.com/KasumiMercury/situgas/internal/observability/metrics"
)

const (
	minPasswordLength = 6
	defaultProvider   = "email"

	kindRegister = "register"
	kindLogin    = "login"
)

//go:generate mockgen -source=service.go -destination=mock.go -package=auth

// SessionManager starts and ends reminder sessions.
type SessionManager interface {
	StartSession(ctx context.Context, userID string, now time.Time) error
	EndSession(ctx context.Context, userID string) error
}

// ClientInfo describes where a credential request came from.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type Result struct {
	User    *domain.User
	Session *identity.Session
}

type Service struct {
	provider       identity.Provider
	verifier       identity.TokenVerifier
	users          domain.UserRepository
	audits         domain.AuditRepository
	sessions       SessionManager
	catalogMetrics *metrics.CatalogMetrics
	clock          func() time.Time
}

func NewService(
	provider identity.Provider,
	verifier identity.TokenVerifier,
	users domain.UserRepository,
	audits domain.AuditRepository,
	sessions SessionManager,
	catalogMetrics *metrics.CatalogMetrics,
) *Service {
	return &Service{
		provider:       provider,
		verifier:       verifier,
		users:          users,
		audits:         audits,
		sessions:       sessions,
		catalogMetrics: catalogMetrics,
		clock:          time.Now,
	}
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email is invalid", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	return nil
}

func (s *Service) Register(ctx context.Context, input RegisterInput, client ClientInfo) (*Result, error) {
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("%w: full_name is required", domain.ErrValidation)
	}

	id, session, err := s.provider.SignUp(ctx, input.Email, input.Password, input.FullName)
	if err != nil {
		s.recordLogin(ctx, kindRegister, nil, false, client)
		return nil, err
	}

	user := s.syncUser(ctx, id)
	s.recordLogin(ctx, kindRegister, &user.ID, true, client)

	return &Result{User: user, Session: session}, nil
}

// Login exchanges credentials for a session and starts reminder polling
// for the user.
func (s *Service) Login(ctx context.Context, email, password string, client ClientInfo) (*Result, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	id, session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		var userID *string
		if existing, lookupErr := s.users.GetByEmail(ctx, email); lookupErr == nil {
			userID = &existing.ID
		}
		s.recordLogin(ctx, kindLogin, userID, false, client)
		return nil, err
	}

	user := s.syncUser(ctx, id)
	s.recordLogin(ctx, kindLogin, &user.ID, true, client)

	if err := s.sessions.StartSession(ctx, user.ID, s.clock()); err != nil {
		slog.WarnContext(ctx, "failed to start reminder session",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return &Result{User: user, Session: session}, nil
}

// Authenticate resolves a bearer token to the local user, creating the user
// on first sight.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthorized
	}

	id, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		}
		return nil, err
	}

	user, err := s.users.FirstOrCreate(ctx, identityUser(id))
	if err != nil {
		slog.WarnContext(ctx, "failed to load user for token",
			slog.String("user_id", id.UserID),
			slog.String("error", err.Error()),
		)
		return identityUser(id), nil
	}
	return user, nil
}

// Logout ends the reminder session and revokes the token upstream.
// Failures are logged; the caller is logged out either way.
func (s *Service) Logout(ctx context.Context, userID, accessToken string) {
	if err := s.sessions.EndSession(ctx, userID); err != nil {
		slog.WarnContext(ctx, "failed to end reminder session",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		slog.WarnContext(ctx, "failed to revoke token",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}

func identityUser(id *identity.Identity) *domain.User {
	provider := id.Provider
	if provider == "" {
		provider = defaultProvider
	}
	return &domain.User{
		ID:       id.UserID,
		Email:    id.Email,
		FullName: id.FullName,
		Provider: provider,
		IsActive: true,
	}
}

// syncUser mirrors the identity into the users table. The login stands even
// when the write fails.
func (s *Service) syncUser(ctx context.Context, id *identity.Identity) *domain.User {
	user := identityUser(id)
	if err := s.users.Upsert(ctx, user); err != nil {
		slog.WarnContext(ctx, "failed to sync user",
			slog.String("event", "auth.user_sync.fail"),
			slog.String("user_id", id.UserID),
			slog.String("error", err.Error()),
		)
		return identityUser(id)
	}
	return user
}

func (s *Service) recordLogin(ctx context.Context, kind string, userID *string, success bool, client ClientInfo) {
	s.catalogMetrics.IncLogin(kind, success)

	ua := useragent.New(client.UserAgent)
	browser, version := ua.Browser()
	if version != "" {
		browser += " " + version
	}

	err := s.audits.RecordLogin(ctx, domain.LoginLog{
		UserID:    userID,
		Provider:  defaultProvider,
		Success:   success,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		Browser:   strings.TrimSpace(browser),
		OS:        ua.OS(),
		Mobile:    ua.Mobile(),
		CreatedAt: s.clock(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to write login log",
			slog.String("event", "auth.login_log.fail"),
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
	}
}
