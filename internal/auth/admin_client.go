package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"rpgmanager/internal/domain"
)

// AdminClient provides access to the Supabase Admin API for user management.
// It is used by the seed command, never by request handling.
type AdminClient struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
}

// NewAdminClient creates a client authenticated with the service role key.
func NewAdminClient(supabaseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		supabaseURL: strings.TrimRight(supabaseURL, "/"),
		serviceKey:  serviceKey,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
}

// CreateUserRequest is the payload for creating a new user
type CreateUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// AdminUser is a user as reported by the admin API
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type listUsersResponse struct {
	Users []AdminUser `json:"users"`
}

// CreateUser creates a confirmed user and returns its id.
func (c *AdminClient) CreateUser(ctx context.Context, req CreateUserRequest) (string, error) {
	req.EmailConfirm = true

	var user AdminUser
	err := doGoTrue(ctx, c.httpClient, c.supabaseURL, gotrueRequest{
		method: http.MethodPost,
		path:   "/auth/v1/admin/users",
		apiKey: c.serviceKey,
		body:   req,
	}, &user)
	if err != nil {
		return "", fmt.Errorf("create user %s: %w", req.Email, err)
	}
	return user.ID, nil
}

// FindUserByEmail pages through the admin user list looking for email.
func (c *AdminClient) FindUserByEmail(ctx context.Context, email string) (*AdminUser, error) {
	const perPage = 200
	for page := 1; ; page++ {
		var resp listUsersResponse
		err := doGoTrue(ctx, c.httpClient, c.supabaseURL, gotrueRequest{
			method: http.MethodGet,
			path:   "/auth/v1/admin/users",
			query:  url.Values{"page": {fmt.Sprint(page)}, "per_page": {fmt.Sprint(perPage)}},
			apiKey: c.serviceKey,
		}, &resp)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}

		for i := range resp.Users {
			if strings.EqualFold(resp.Users[i].Email, email) {
				return &resp.Users[i], nil
			}
		}
		if len(resp.Users) < perPage {
			return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
	}
}

// DeleteUserByEmail deletes the user with the given email.
// This is idempotent - returns nil if the user doesn't exist.
func (c *AdminClient) DeleteUserByEmail(ctx context.Context, email string) error {
	user, err := c.FindUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = doGoTrue(ctx, c.httpClient, c.supabaseURL, gotrueRequest{
		method: http.MethodDelete,
		path:   "/auth/v1/admin/users/" + user.ID,
		apiKey: c.serviceKey,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", email, err)
	}
	return nil
}
