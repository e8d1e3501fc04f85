// Package client is a typed HTTP client for the campaign manager API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rpgmanager/internal/content"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
)

// Patch is a partial update body. Only the keys present are sent; a nil value
// is sent as JSON null and clears a nullable field.
type Patch map[string]any

// Client is the campaign manager API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client. token is the user's access token and may be
// empty for the auth endpoints.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that sends token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// --- Auth ---

// Login signs in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthSession, error) {
	var session models.AuthSession
	body := services.SignInRequest{Email: email, Password: password}
	if err := c.post(ctx, "/api/auth/login", body, &session); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &session, nil
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := c.get(ctx, "/api/auth/me", &user); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &user, nil
}

// ListUsers returns the user directory.
func (c *Client) ListUsers(ctx context.Context) ([]models.DirectoryUser, error) {
	var users []models.DirectoryUser
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, fmt.Errorf("client.ListUsers: %w", err)
	}
	return users, nil
}

// --- Campaigns ---

// ListCampaigns returns campaigns the caller owns or belongs to, newest first.
func (c *Client) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := c.get(ctx, "/api/campaigns", &campaigns); err != nil {
		return nil, fmt.Errorf("client.ListCampaigns: %w", err)
	}
	return campaigns, nil
}

func (c *Client) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := c.get(ctx, campaignPath(id), &campaign); err != nil {
		return nil, fmt.Errorf("client.GetCampaign: %w", err)
	}
	return &campaign, nil
}

// CreateCampaign creates a campaign and reports the invitation and import
// outcomes.
func (c *Client) CreateCampaign(ctx context.Context, req services.CreateCampaignRequest) (*services.CreateCampaignResult, error) {
	var result services.CreateCampaignResult
	if err := c.post(ctx, "/api/campaigns", req, &result); err != nil {
		return nil, fmt.Errorf("client.CreateCampaign: %w", err)
	}
	return &result, nil
}

func (c *Client) UpdateCampaign(ctx context.Context, id string, patch Patch) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := c.doRequest(ctx, http.MethodPatch, campaignPath(id), patch, &campaign); err != nil {
		return nil, fmt.Errorf("client.UpdateCampaign: %w", err)
	}
	return &campaign, nil
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, campaignPath(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteCampaign: %w", err)
	}
	return nil
}

// ImportScenarios clones scenarios into a campaign.
func (c *Client) ImportScenarios(ctx context.Context, campaignID string, scenarioIDs []string) (*services.ImportResult, error) {
	var result services.ImportResult
	body := map[string][]string{"scenario_ids": scenarioIDs}
	if err := c.post(ctx, campaignPath(campaignID)+"/import", body, &result); err != nil {
		return nil, fmt.Errorf("client.ImportScenarios: %w", err)
	}
	return &result, nil
}

// --- Members ---

func (c *Client) AddMember(ctx context.Context, campaignID, email string, role models.MemberRole) (*services.MemberResult, error) {
	var result services.MemberResult
	body := map[string]any{"email": email, "role": role}
	if err := c.post(ctx, campaignPath(campaignID)+"/members", body, &result); err != nil {
		return nil, fmt.Errorf("client.AddMember: %w", err)
	}
	return &result, nil
}

// AddExistingUser adds a user picked from the directory as a player.
func (c *Client) AddExistingUser(ctx context.Context, campaignID, email string) (*services.MemberResult, error) {
	var result services.MemberResult
	body := map[string]any{"email": email, "from_directory": true}
	if err := c.post(ctx, campaignPath(campaignID)+"/members", body, &result); err != nil {
		return nil, fmt.Errorf("client.AddExistingUser: %w", err)
	}
	return &result, nil
}

func (c *Client) UpdateMemberRole(ctx context.Context, campaignID, email string, role models.MemberRole) (*models.Campaign, error) {
	var campaign models.Campaign
	body := map[string]any{"role": role}
	if err := c.doRequest(ctx, http.MethodPatch, memberPath(campaignID, email), body, &campaign); err != nil {
		return nil, fmt.Errorf("client.UpdateMemberRole: %w", err)
	}
	return &campaign, nil
}

func (c *Client) RemoveMember(ctx context.Context, campaignID, email string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := c.doRequest(ctx, http.MethodDelete, memberPath(campaignID, email), nil, &campaign); err != nil {
		return nil, fmt.Errorf("client.RemoveMember: %w", err)
	}
	return &campaign, nil
}

func (c *Client) ResendInvitation(ctx context.Context, campaignID, email string) (*services.InvitationOutcome, error) {
	var outcome services.InvitationOutcome
	if err := c.post(ctx, memberPath(campaignID, email)+"/resend", nil, &outcome); err != nil {
		return nil, fmt.Errorf("client.ResendInvitation: %w", err)
	}
	return &outcome, nil
}

// AcceptInvitation activates the caller's membership after a magic-link sign-in.
func (c *Client) AcceptInvitation(ctx context.Context) (*services.AcceptInvitationResult, error) {
	var result services.AcceptInvitationResult
	if err := c.post(ctx, "/api/invitations/accept", nil, &result); err != nil {
		return nil, fmt.Errorf("client.AcceptInvitation: %w", err)
	}
	return &result, nil
}

// --- Scenarios ---

func (c *Client) ListScenarios(ctx context.Context, campaignID string) ([]models.Scenario, error) {
	var scenarios []models.Scenario
	if err := c.get(ctx, campaignPath(campaignID)+"/scenarios", &scenarios); err != nil {
		return nil, fmt.Errorf("client.ListScenarios: %w", err)
	}
	return scenarios, nil
}

// ListAllScenarios returns every scenario the caller can import.
func (c *Client) ListAllScenarios(ctx context.Context) ([]models.Scenario, error) {
	var scenarios []models.Scenario
	if err := c.get(ctx, "/api/scenarios", &scenarios); err != nil {
		return nil, fmt.Errorf("client.ListAllScenarios: %w", err)
	}
	return scenarios, nil
}

func (c *Client) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := c.get(ctx, "/api/scenarios/"+url.PathEscape(id), &scenario); err != nil {
		return nil, fmt.Errorf("client.GetScenario: %w", err)
	}
	return &scenario, nil
}

func (c *Client) CreateScenario(ctx context.Context, req services.CreateScenarioRequest) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := c.post(ctx, campaignPath(req.CampaignID)+"/scenarios", req, &scenario); err != nil {
		return nil, fmt.Errorf("client.CreateScenario: %w", err)
	}
	return &scenario, nil
}

func (c *Client) UpdateScenario(ctx context.Context, id string, patch Patch) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := c.doRequest(ctx, http.MethodPatch, "/api/scenarios/"+url.PathEscape(id), patch, &scenario); err != nil {
		return nil, fmt.Errorf("client.UpdateScenario: %w", err)
	}
	return &scenario, nil
}

func (c *Client) DeleteScenario(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/scenarios/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteScenario: %w", err)
	}
	return nil
}

// EditScenario sends a batch of content edit commands.
func (c *Client) EditScenario(ctx context.Context, id string, cmds []content.Command) (*services.EditResult, error) {
	var result services.EditResult
	body := map[string][]content.Command{"commands": cmds}
	if err := c.post(ctx, "/api/scenarios/"+url.PathEscape(id)+"/edits", body, &result); err != nil {
		return nil, fmt.Errorf("client.EditScenario: %w", err)
	}
	return &result, nil
}

// --- NPCs ---

func (c *Client) ListNPCs(ctx context.Context, campaignID string) ([]models.NPC, error) {
	var npcs []models.NPC
	if err := c.get(ctx, campaignPath(campaignID)+"/npcs", &npcs); err != nil {
		return nil, fmt.Errorf("client.ListNPCs: %w", err)
	}
	return npcs, nil
}

func (c *Client) CreateNPC(ctx context.Context, req services.CreateNPCRequest) (*models.NPC, error) {
	var npc models.NPC
	if err := c.post(ctx, campaignPath(req.CampaignID)+"/npcs", req, &npc); err != nil {
		return nil, fmt.Errorf("client.CreateNPC: %w", err)
	}
	return &npc, nil
}

func (c *Client) UpdateNPC(ctx context.Context, id string, patch Patch) (*models.NPC, error) {
	var npc models.NPC
	if err := c.doRequest(ctx, http.MethodPatch, "/api/npcs/"+url.PathEscape(id), patch, &npc); err != nil {
		return nil, fmt.Errorf("client.UpdateNPC: %w", err)
	}
	return &npc, nil
}

func (c *Client) DeleteNPC(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/npcs/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteNPC: %w", err)
	}
	return nil
}

// --- Sessions ---

func (c *Client) ListSessions(ctx context.Context, campaignID string) ([]models.Session, error) {
	var sessions []models.Session
	if err := c.get(ctx, campaignPath(campaignID)+"/sessions", &sessions); err != nil {
		return nil, fmt.Errorf("client.ListSessions: %w", err)
	}
	return sessions, nil
}

func (c *Client) CreateSession(ctx context.Context, req services.CreateSessionRequest) (*models.Session, error) {
	var session models.Session
	if err := c.post(ctx, campaignPath(req.CampaignID)+"/sessions", req, &session); err != nil {
		return nil, fmt.Errorf("client.CreateSession: %w", err)
	}
	return &session, nil
}

func (c *Client) UpdateSession(ctx context.Context, id string, patch Patch) (*models.Session, error) {
	var session models.Session
	if err := c.doRequest(ctx, http.MethodPatch, "/api/sessions/"+url.PathEscape(id), patch, &session); err != nil {
		return nil, fmt.Errorf("client.UpdateSession: %w", err)
	}
	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/sessions/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteSession: %w", err)
	}
	return nil
}

// --- HTTP helpers ---

func campaignPath(id string) string {
	return "/api/campaigns/" + url.PathEscape(id)
}

func memberPath(campaignID, email string) string {
	return campaignPath(campaignID) + "/members/" + url.PathEscape(email)
}

// problem is the RFC 7807 body the API returns for errors.
type problem struct {
	Title        string `json:"title"`
	Detail       string `json:"detail"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var p problem
		if json.Unmarshal(respBody, &p) == nil && (p.Detail != "" || p.Title != "") {
			msg := p.Detail
			if msg == "" {
				msg = p.Title
			}
			return &HTTPError{
				StatusCode:   resp.StatusCode,
				Message:      msg,
				ResourceType: p.ResourceType,
				ResourceID:   p.ResourceID,
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}
