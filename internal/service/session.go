package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// cookieJar is the part of the API transport the session needs (consumer-defined interface)
type cookieJar interface {
	BaseURL() string
	Cookies() []*http.Cookie
	SetCookies(cookies []*http.Cookie)
}

// SessionService manages user session operations and keeps the session
// alive across runs
type SessionService struct {
	auth   domain.AuthService
	jar    cookieJar
	store  domain.SessionStore
	logger *slog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(auth domain.AuthService, jar cookieJar, store domain.SessionStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		auth:   auth,
		jar:    jar,
		store:  store,
		logger: logger,
	}
}

// Restore seeds the transport with cookies saved by a previous run.
// It returns the user cached alongside them, if any.
func (s *SessionService) Restore() (*domain.User, bool) {
	cookies := s.store.LoadCookies(s.jar.BaseURL())
	if len(cookies) == 0 {
		return nil, false
	}
	s.jar.SetCookies(toHTTPCookies(cookies))
	return s.store.LoadUser(s.jar.BaseURL())
}

// SignIn authenticates and persists the resulting session
func (s *SessionService) SignIn(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	user, err := s.auth.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}
	s.persist(*user)
	return user, nil
}

// SignUp registers and persists the resulting session
func (s *SessionService) SignUp(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	user, err := s.auth.SignUp(ctx, creds)
	if err != nil {
		return nil, err
	}
	s.persist(*user)
	return user, nil
}

// SignOut ends the session on the server, then forgets it locally
func (s *SessionService) SignOut(ctx context.Context) error {
	if err := s.auth.SignOut(ctx); err != nil {
		return err
	}
	return s.store.Clear(s.jar.BaseURL())
}

// CurrentUser asks the server who is signed in. A rejected session is
// forgotten locally.
func (s *SessionService) CurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := s.auth.FetchUser(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			if clearErr := s.store.Clear(s.jar.BaseURL()); clearErr != nil {
				s.logger.Warn("failed to clear stale session", "error", clearErr)
			}
		}
		return nil, err
	}
	if err := s.store.SaveUser(s.jar.BaseURL(), *user); err != nil {
		s.logger.Warn("failed to cache user", "error", err)
	}
	return user, nil
}

// persist saves the session for the next run. The server session is
// already live, so a local failure only costs a later sign-in.
func (s *SessionService) persist(user domain.User) {
	base := s.jar.BaseURL()
	if err := s.store.SaveUser(base, user); err != nil {
		s.logger.Warn("failed to save user", "error", err)
	}
	if err := s.store.SaveCookies(base, fromHTTPCookies(s.jar.Cookies())); err != nil {
		s.logger.Warn("failed to save session cookies", "error", err)
	}
}

func fromHTTPCookies(cookies []*http.Cookie) []domain.Cookie {
	out := make([]domain.Cookie, 0, len(cookies))
	for _, c := range cookies {
		dc := domain.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		}
		if !c.Expires.IsZero() {
			dc.Expires = c.Expires.Unix()
		}
		out = append(out, dc)
	}
	return out
}

// Jar cookies carry only name and value, so restored ones default to path "/".
func toHTTPCookies(cookies []domain.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		hc := &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		}
		if hc.Path == "" {
			hc.Path = "/"
		}
		if c.Expires != 0 {
			hc.Expires = time.Unix(c.Expires, 0)
		}
		out = append(out, hc)
	}
	return out
}
