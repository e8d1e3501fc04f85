package client

import (
	"context"

	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/store"
)

// Store types for each collection the API exposes.
type (
	CampaignStore = store.Store[models.Campaign, services.CreateCampaignRequest, Patch]
	ScenarioStore = store.Store[models.Scenario, services.CreateScenarioRequest, Patch]
	NPCStore      = store.Store[models.NPC, services.CreateNPCRequest, Patch]
	SessionStore  = store.Store[models.Session, services.CreateSessionRequest, Patch]
)

// Stores builds one store per collection, all backed by c.
func (c *Client) Stores() (*CampaignStore, *ScenarioStore, *NPCStore, *SessionStore) {
	return store.New[models.Campaign, services.CreateCampaignRequest, Patch](campaignBackend{c}),
		store.New[models.Scenario, services.CreateScenarioRequest, Patch](scenarioBackend{c}),
		store.New[models.NPC, services.CreateNPCRequest, Patch](npcBackend{c}),
		store.New[models.Session, services.CreateSessionRequest, Patch](sessionBackend{c})
}

type campaignBackend struct{ c *Client }

var _ store.Backend[models.Campaign, services.CreateCampaignRequest, Patch] = campaignBackend{}

// List ignores scope; the server returns every campaign the caller can see.
func (b campaignBackend) List(ctx context.Context, _ string) ([]models.Campaign, error) {
	return b.c.ListCampaigns(ctx)
}

func (b campaignBackend) Create(ctx context.Context, req services.CreateCampaignRequest) (models.Campaign, error) {
	result, err := b.c.CreateCampaign(ctx, req)
	if err != nil {
		return models.Campaign{}, err
	}
	return *result.Campaign, nil
}

func (b campaignBackend) Update(ctx context.Context, id string, patch Patch) (models.Campaign, error) {
	return deref(b.c.UpdateCampaign(ctx, id, patch))
}

func (b campaignBackend) Delete(ctx context.Context, id string) error {
	return b.c.DeleteCampaign(ctx, id)
}

type scenarioBackend struct{ c *Client }

var _ store.Backend[models.Scenario, services.CreateScenarioRequest, Patch] = scenarioBackend{}

// List lists one campaign's scenarios, or all visible scenarios when scope is empty.
func (b scenarioBackend) List(ctx context.Context, campaignID string) ([]models.Scenario, error) {
	if campaignID == "" {
		return b.c.ListAllScenarios(ctx)
	}
	return b.c.ListScenarios(ctx, campaignID)
}

func (b scenarioBackend) Create(ctx context.Context, req services.CreateScenarioRequest) (models.Scenario, error) {
	return deref(b.c.CreateScenario(ctx, req))
}

func (b scenarioBackend) Update(ctx context.Context, id string, patch Patch) (models.Scenario, error) {
	return deref(b.c.UpdateScenario(ctx, id, patch))
}

func (b scenarioBackend) Delete(ctx context.Context, id string) error {
	return b.c.DeleteScenario(ctx, id)
}

type npcBackend struct{ c *Client }

var _ store.Backend[models.NPC, services.CreateNPCRequest, Patch] = npcBackend{}

func (b npcBackend) List(ctx context.Context, campaignID string) ([]models.NPC, error) {
	return b.c.ListNPCs(ctx, campaignID)
}

func (b npcBackend) Create(ctx context.Context, req services.CreateNPCRequest) (models.NPC, error) {
	return deref(b.c.CreateNPC(ctx, req))
}

func (b npcBackend) Update(ctx context.Context, id string, patch Patch) (models.NPC, error) {
	return deref(b.c.UpdateNPC(ctx, id, patch))
}

func (b npcBackend) Delete(ctx context.Context, id string) error {
	return b.c.DeleteNPC(ctx, id)
}

type sessionBackend struct{ c *Client }

var _ store.Backend[models.Session, services.CreateSessionRequest, Patch] = sessionBackend{}

func (b sessionBackend) List(ctx context.Context, campaignID string) ([]models.Session, error) {
	return b.c.ListSessions(ctx, campaignID)
}

func (b sessionBackend) Create(ctx context.Context, req services.CreateSessionRequest) (models.Session, error) {
	return deref(b.c.CreateSession(ctx, req))
}

func (b sessionBackend) Update(ctx context.Context, id string, patch Patch) (models.Session, error) {
	return deref(b.c.UpdateSession(ctx, id, patch))
}

func (b sessionBackend) Delete(ctx context.Context, id string) error {
	return b.c.DeleteSession(ctx, id)
}

func deref[T any](v *T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return *v, nil
}
