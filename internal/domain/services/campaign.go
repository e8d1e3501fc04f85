package services

import (
	"context"

	"rpgmanager/internal/domain/models"
)

// CreateCampaignRequest represents a request to create a campaign. Members are
// invited and ImportedScenarios are cloned into the new campaign.
type CreateCampaignRequest struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	ImageURL          *string         `json:"image_url"`
	Members           []models.Member `json:"members"`
	ImportedScenarios []string        `json:"imported_scenarios"`
}

// UpdateCampaignRequest is a partial update; nil pointers leave fields alone.
type UpdateCampaignRequest struct {
	Title       *string
	Description *string
	ImageURL    models.OptionalString
}

// CreateCampaignResult reports the campaign plus the outcome of each
// follow-up step. A failed step never undoes the campaign.
type CreateCampaignResult struct {
	Campaign    *models.Campaign    `json:"campaign"`
	Invitations []InvitationOutcome `json:"invitations"`
	Import      *ImportResult       `json:"import,omitempty"`
}

type CampaignService interface {
	CreateCampaign(ctx context.Context, actor models.Actor, req *CreateCampaignRequest) (*CreateCampaignResult, error)
	GetCampaign(ctx context.Context, actor models.Actor, id string) (*models.Campaign, error)
	// ListCampaigns returns campaigns the actor owns or belongs to, newest first.
	ListCampaigns(ctx context.Context, actor models.Actor) ([]models.Campaign, error)
	UpdateCampaign(ctx context.Context, actor models.Actor, id string, req *UpdateCampaignRequest) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, actor models.Actor, id string) error
}
