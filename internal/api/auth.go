package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmcdole/reel/internal/domain"
)

// AuthClient implements domain.AuthService over the shared transport
type AuthClient struct {
	transport *Transport
	logger    *slog.Logger
}

// NewAuthClient creates a new auth API client
func NewAuthClient(transport *Transport, logger *slog.Logger) *AuthClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthClient{
		transport: transport,
		logger:    logger,
	}
}

// SignIn authenticates with email and password
func (c *AuthClient) SignIn(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	body, err := newCredentialsBody(signInRequestBody, creds)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Do(ctx, http.MethodPost, "/signIn", body)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
		}
		return nil, err
	}

	user, err := parseUser(signInResponse, resp)
	if err != nil {
		c.logger.Error("sign in response rejected", "error", err)
		return nil, err
	}
	c.logger.Info("signed in", "userID", user.ID)
	return user, nil
}

// SignOut ends the current session
func (c *AuthClient) SignOut(ctx context.Context) error {
	if _, err := c.transport.Do(ctx, http.MethodPost, "/signOut", nil); err != nil {
		return err
	}
	c.logger.Info("signed out")
	return nil
}

// SignUp creates an account and signs it in
func (c *AuthClient) SignUp(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	body, err := newCredentialsBody(signUpRequestBody, creds)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Do(ctx, http.MethodPost, "/signUp", body)
	if err != nil {
		return nil, err
	}

	user, err := parseUser(signUpResponse, resp)
	if err != nil {
		c.logger.Error("sign up response rejected", "error", err)
		return nil, err
	}
	c.logger.Info("signed up", "userID", user.ID)
	return user, nil
}

// FetchUser returns the signed-in user. It fails with
// domain.ErrUnauthenticated when there is no valid session.
func (c *AuthClient) FetchUser(ctx context.Context) (*domain.User, error) {
	resp, err := c.transport.Do(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return nil, err
	}
	return parseUser(getUserResponse, resp)
}
