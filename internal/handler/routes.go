package handler

import (
	"net/http"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Directory *DirectoryHandler
	Campaign  *CampaignHandler
	Member    *MemberHandler
	Scenario  *ScenarioHandler
	NPC       *NPCHandler
	Session   *SessionHandler
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// NewRouter registers all routes (Go 1.22+ enhanced patterns). Everything
// under /api/ except the auth endpoints passes through requireAuth. Routes
// live on one mux so request logging sees the matched pattern.
func NewRouter(h Handlers, requireAuth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /health", h.Health.HealthCheck)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}
	mux.HandleFunc("POST /api/auth/signup", h.Auth.SignUp)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /api/auth/me", h.Auth.Me)

	api := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(fn))
	}

	// User directory
	api("GET /api/users", h.Directory.ListUsers)

	// Campaign routes
	api("GET /api/campaigns", h.Campaign.ListCampaigns)
	api("POST /api/campaigns", h.Campaign.CreateCampaign)
	api("GET /api/campaigns/{id}", h.Campaign.GetCampaign)
	api("PATCH /api/campaigns/{id}", h.Campaign.UpdateCampaign)
	api("DELETE /api/campaigns/{id}", h.Campaign.DeleteCampaign)
	api("POST /api/campaigns/{id}/import", h.Campaign.ImportScenarios)

	// Member routes
	api("POST /api/campaigns/{id}/members", h.Member.AddMember)
	api("PATCH /api/campaigns/{id}/members/{email}", h.Member.UpdateMember)
	api("DELETE /api/campaigns/{id}/members/{email}", h.Member.RemoveMember)
	api("POST /api/campaigns/{id}/members/{email}/resend", h.Member.ResendInvitation)
	api("POST /api/invitations/accept", h.Member.AcceptInvitation)

	// Campaign-scoped collections
	api("GET /api/campaigns/{id}/scenarios", h.Scenario.ListScenarios)
	api("POST /api/campaigns/{id}/scenarios", h.Scenario.CreateScenario)
	api("GET /api/campaigns/{id}/npcs", h.NPC.ListNPCs)
	api("POST /api/campaigns/{id}/npcs", h.NPC.CreateNPC)
	api("GET /api/campaigns/{id}/sessions", h.Session.ListSessions)
	api("POST /api/campaigns/{id}/sessions", h.Session.CreateSession)

	// Scenario routes
	api("GET /api/scenarios", h.Scenario.ListAllScenarios)
	api("GET /api/scenarios/{id}", h.Scenario.GetScenario)
	api("PATCH /api/scenarios/{id}", h.Scenario.UpdateScenario)
	api("DELETE /api/scenarios/{id}", h.Scenario.DeleteScenario)
	api("POST /api/scenarios/{id}/edits", h.Scenario.EditContent)

	// NPC routes
	api("GET /api/npcs/{id}", h.NPC.GetNPC)
	api("PATCH /api/npcs/{id}", h.NPC.UpdateNPC)
	api("DELETE /api/npcs/{id}", h.NPC.DeleteNPC)

	// Session routes
	api("GET /api/sessions/{id}", h.Session.GetSession)
	api("PATCH /api/sessions/{id}", h.Session.UpdateSession)
	api("DELETE /api/sessions/{id}", h.Session.DeleteSession)

	return mux
}
