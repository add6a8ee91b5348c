package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/securebank/portal/internal/audit"
	"github.com/securebank/portal/internal/logging"
	"github.com/securebank/portal/internal/models"
	"github.com/securebank/portal/internal/ratelimit"
	"github.com/securebank/portal/internal/repo"
	"github.com/securebank/portal/internal/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	Limiter       *ratelimit.Limiter
	Audit         audit.Publisher
	SessionSecret []byte
	SessionTTL    time.Duration
}

type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *models.Account
}

// SignIn runs the full login pipeline: input check, rate limit, credential
// verification, token issuance. The rate limiter sees every attempt with a
// non-empty identifier, before credentials are checked.
func (s *AuthService) SignIn(ctx context.Context, email, password, remoteIP string) (*SignInResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signin")

	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrValidation
	}

	if s.Limiter.ShouldBlock(email) {
		l.Warn("signin blocked", "reason", "rate limited")
		s.recordEvent(ctx, audit.Event{Type: audit.EventSignInBlocked, Email: email, RemoteIP: remoteIP})
		return nil, ErrRateLimited
	}

	account, err := s.Repo.AccountByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("signin failed", "reason", "invalid credentials")
			s.recordEvent(ctx, audit.Event{Type: audit.EventSignInFailed, Email: email, RemoteIP: remoteIP})
			return nil, ErrInvalidCredentials
		}
		l.Error("signin failed", "error", err)
		return nil, err
	}

	// Successful login lifts the penalty immediately rather than waiting
	// for the window to expire.
	s.Limiter.Clear(email)

	token, exp, err := tokens.Issue(account, s.SessionSecret, s.SessionTTL)
	if err != nil {
		l.Error("signin failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	l.Info("signin successful", "account_id", account.ID, "role", account.Role)
	s.recordEvent(ctx, audit.Event{
		Type:     audit.EventSignInSucceeded,
		Email:    email,
		ActorID:  account.ID,
		RemoteIP: remoteIP,
	})

	return &SignInResult{Token: token, ExpiresAt: exp, Account: account}, nil
}

// SignOut records the sign-out; session invalidation itself is cookie
// deletion, the token is stateless.
func (s *AuthService) SignOut(ctx context.Context, session *tokens.Session, remoteIP string) {
	if session == nil {
		return
	}
	s.recordEvent(ctx, audit.Event{
		Type:     audit.EventSignOut,
		Email:    session.Email,
		ActorID:  session.AccountID,
		RemoteIP: remoteIP,
	})
}

func (s *AuthService) recordEvent(ctx context.Context, e audit.Event) {
	l := logging.FromContext(ctx)
	e.At = time.Now()

	if err := s.Repo.RecordAuditEvent(ctx, &models.AuditEvent{
		Type:     e.Type,
		Email:    e.Email,
		ActorID:  e.ActorID,
		RemoteIP: e.RemoteIP,
	}); err != nil {
		l.Error("audit record failed", "type", e.Type, "error", err)
	}

	if s.Audit == nil {
		return
	}
	if err := s.Audit.Publish(ctx, e); err != nil {
		l.Error("audit publish failed", "type", e.Type, "error", err)
	}
}
