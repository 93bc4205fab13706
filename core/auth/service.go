package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/neyborhuud/huud-go/core/apierr"
	"github.com/neyborhuud/huud-go/core/client"
	"github.com/neyborhuud/huud-go/core/logger"
	"github.com/neyborhuud/huud-go/core/session"
)

var (
	// ErrNilClient is returned by NewService without an API client.
	ErrNilClient = errors.New("auth service requires a client")
	// ErrNilSessions is returned by NewService without a session manager.
	ErrNilSessions = errors.New("auth service requires a session manager")
)

// Option configures the service.
type Option func(*Service)

// WithLogger sets the service logger. Nil disables logging.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

// Service drives the account lifecycle and keeps the session manager in
// sync with what the backend returns.
type Service struct {
	api      *client.Client
	sessions *session.Manager
	logger   *slog.Logger
}

// NewService creates an auth service over api, persisting credentials
// through sessions.
func NewService(api *client.Client, sessions *session.Manager, opts ...Option) (*Service, error) {
	if api == nil {
		return nil, ErrNilClient
	}
	if sessions == nil {
		return nil, ErrNilSessions
	}
	s := &Service{api: api, sessions: sessions}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateAccountPayload is the registration input.
type CreateAccountPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Login authenticates with email and password and stores the returned
// session.
func (s *Service) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Post(ctx, "/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	return s.adoptSession(ctx, resp)
}

// CreateAccount registers a new user. The backend logs the account in on
// success, so the returned session is stored immediately.
func (s *Service) CreateAccount(ctx context.Context, payload CreateAccountPayload) error {
	resp, err := s.api.Post(ctx, "/auth/create-account", payload)
	if err != nil {
		return err
	}
	return s.adoptSession(ctx, resp)
}

// adoptSession decodes a token-bearing response and persists it.
func (s *Service) adoptSession(ctx context.Context, resp *client.Response) error {
	var sess session.Session
	if err := resp.Decode(&sess); err != nil {
		return err
	}
	if sess.AccessToken == "" {
		// Registration flows that require verification first return no
		// tokens; there is nothing to persist yet.
		return nil
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		s.log(ctx, slog.LevelError, "failed to persist session", logger.Error(err))
		return err
	}
	return nil
}

// VerifyEmail confirms an address with the emailed token link.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	return s.verify(ctx, map[string]any{"token": token})
}

// VerifyEmailCode confirms an address with the emailed numeric code.
func (s *Service) VerifyEmailCode(ctx context.Context, email, code string) error {
	return s.verify(ctx, map[string]any{"email": email, "code": code})
}

func (s *Service) verify(ctx context.Context, body map[string]any) error {
	resp, err := s.api.Post(ctx, "/auth/verify-email", body)
	if err != nil {
		return err
	}
	// Verification may return a refreshed user blob; fold it in when the
	// caller is logged in.
	if s.sessions.IsAuthenticated() {
		var user session.User
		if decodeErr := resp.Decode(&user); decodeErr == nil && user.ID != "" {
			user.EmailVerified = true
			if err := s.sessions.SetUser(ctx, user); err != nil {
				s.log(ctx, slog.LevelWarn, "failed to update verified user", logger.Error(err))
			}
		}
	}
	return nil
}

// ResendVerification asks for a fresh verification email.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	_, err := s.api.Post(ctx, "/auth/resend-verification", map[string]any{"email": email})
	return err
}

// ForgotPassword starts the password recovery flow.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	_, err := s.api.Post(ctx, "/auth/forgot-password", map[string]any{"email": email})
	return err
}

// ResetPassword sets a new password using the recovery token.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	_, err := s.api.Post(ctx, "/auth/reset-password", map[string]any{
		"token":    token,
		"password": password,
	})
	return err
}

// CompleteProfilePayload is the onboarding profile input.
type CompleteProfilePayload struct {
	Username     string  `json:"username,omitempty"`
	FirstName    string  `json:"firstName,omitempty"`
	LastName     string  `json:"lastName,omitempty"`
	Bio          string  `json:"bio,omitempty"`
	ProfileImage string  `json:"profileImage,omitempty"`
	Latitude     float64 `json:"lat,omitempty"`
	Longitude    float64 `json:"lng,omitempty"`
	Address      string  `json:"address,omitempty"`
}

// CompleteProfile submits the onboarding profile. Failures are
// classified with the caller's local verification state, which
// distinguishes a genuinely unverified account from a backend that
// reports "not active" for other reasons.
func (s *Service) CompleteProfile(ctx context.Context, payload CompleteProfilePayload) error {
	resp, err := s.api.Post(ctx, "/auth/complete-profile", payload)
	if err != nil {
		kind := apierr.Classify(err, apierr.WithVerifiedAccount(s.sessions.User().EmailVerified))
		s.log(ctx, slog.LevelWarn, "complete profile failed",
			logger.Error(err), logger.Kind(kind.String()))
		return err
	}

	var user session.User
	if decodeErr := resp.Decode(&user); decodeErr == nil && user.ID != "" {
		if err := s.sessions.SetUser(ctx, user); err != nil {
			s.log(ctx, slog.LevelWarn, "failed to store completed profile", logger.Error(err))
		}
	}
	return nil
}

// Availability is the result of an email or username check.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

// CheckEmail reports whether an email address is free to register.
func (s *Service) CheckEmail(ctx context.Context, email string) (Availability, error) {
	return s.check(ctx, "/auth/check-email", url.Values{"email": {email}})
}

// CheckUsername reports whether a username is free to claim.
func (s *Service) CheckUsername(ctx context.Context, username string) (Availability, error) {
	return s.check(ctx, "/auth/check-username", url.Values{"username": {username}})
}

func (s *Service) check(ctx context.Context, path string, query url.Values) (Availability, error) {
	resp, err := s.api.Get(ctx, path, query)
	if err != nil {
		return Availability{}, err
	}
	var out Availability
	if err := resp.Decode(&out); err != nil {
		return Availability{}, err
	}
	if out.Message == "" {
		out.Message = resp.Message
	}
	return out, nil
}

// Logout tells the backend to revoke the token, then clears local state.
// The local session is cleared even when the revoke call fails.
func (s *Service) Logout(ctx context.Context) error {
	if _, err := s.api.Post(ctx, "/auth/logout", nil); err != nil {
		s.log(ctx, slog.LevelWarn, "logout revoke failed", logger.Error(err))
	}
	return s.sessions.Clear(ctx)
}

func (s *Service) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}
