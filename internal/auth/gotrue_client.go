package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
)

// GoTrueClient calls the user-facing Supabase auth endpoints with the public
// anon key.
type GoTrueClient struct {
	supabaseURL string
	anonKey     string
	httpClient  *http.Client
}

// NewGoTrueClient creates a client for the Supabase auth API.
func NewGoTrueClient(supabaseURL, anonKey string) *GoTrueClient {
	return &GoTrueClient{
		supabaseURL: strings.TrimRight(supabaseURL, "/"),
		anonKey:     anonKey,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
}

var _ services.AuthService = (*GoTrueClient)(nil)

// signUpResponse covers both shapes GoTrue returns: a session when email
// confirmation is off, or the bare user when it is on.
type signUpResponse struct {
	models.AuthSession
	ID    string `json:"id"`
	Email string `json:"email"`
}

func validateCredentials(email, password string) error {
	err := validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.EmailFormat),
		"password": validation.Validate(password, validation.Required, validation.Length(6, 72)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// SignUp registers a user with email and password.
func (c *GoTrueClient) SignUp(ctx context.Context, req *services.SignUpRequest) (*models.AuthSession, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}

	body := map[string]any{
		"email":    strings.TrimSpace(req.Email),
		"password": req.Password,
	}
	if req.Username != "" {
		body["data"] = map[string]any{"username": req.Username}
	}

	var resp signUpResponse
	err := doGoTrue(ctx, c.httpClient, c.supabaseURL, gotrueRequest{
		method: http.MethodPost,
		path:   "/auth/v1/signup",
		apiKey: c.anonKey,
		body:   body,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	session := resp.AuthSession
	if session.User == nil && resp.ID != "" {
		session.User = &models.AuthUser{ID: resp.ID, Email: resp.Email}
	}
	return &session, nil
}

// SignIn exchanges email and password for a session.
func (c *GoTrueClient) SignIn(ctx context.Context, req *services.SignInRequest) (*models.AuthSession, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}

	var session models.AuthSession
	err := doGoTrue(ctx, c.httpClient, c.supabaseURL, gotrueRequest{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"password"}},
		apiKey: c.anonKey,
		body: map[string]string{
			"email":    strings.TrimSpace(req.Email),
			"password": req.Password,
		},
	}, &session)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return &session, nil
}

// SignOut revokes the session behind an access token.
func (c *GoTrueClient) SignOut(ctx context.Context, accessToken string) error {
	err := doGoTrue(ctx, c.httpClient, c.supabaseURL, gotrueRequest{
		method: http.MethodPost,
		path:   "/auth/v1/logout",
		apiKey: c.anonKey,
		bearer: accessToken,
	}, nil)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// GetUser returns the user an access token belongs to.
func (c *GoTrueClient) GetUser(ctx context.Context, accessToken string) (*models.AuthUser, error) {
	var user models.AuthUser
	err := doGoTrue(ctx, c.httpClient, c.supabaseURL, gotrueRequest{
		method: http.MethodGet,
		path:   "/auth/v1/user",
		apiKey: c.anonKey,
		bearer: accessToken,
	}, &user)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// MagicLinkRequest asks GoTrue to email a one-time sign-in link.
type MagicLinkRequest struct {
	Email      string
	RedirectTo string
	// Data is stored in the user's metadata and comes back in their JWT.
	Data map[string]interface{}
}

// SendMagicLink emails a sign-in link, creating the user if needed.
func (c *GoTrueClient) SendMagicLink(ctx context.Context, req MagicLinkRequest) error {
	query := url.Values{}
	if req.RedirectTo != "" {
		query.Set("redirect_to", req.RedirectTo)
	}

	err := doGoTrue(ctx, c.httpClient, c.supabaseURL, gotrueRequest{
		method: http.MethodPost,
		path:   "/auth/v1/otp",
		query:  query,
		apiKey: c.anonKey,
		body: map[string]any{
			"email":       req.Email,
			"create_user": true,
			"data":        req.Data,
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}
