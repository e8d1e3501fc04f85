package services

import (
	"context"

	"rpgmanager/internal/domain/models"
)

// CreateNPCRequest represents a request to create an NPC. Nil Traits gets the
// default trait keys with empty values.
type CreateNPCRequest struct {
	CampaignID  string         `json:"campaign_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ImageURL    *string        `json:"image_url"`
	Traits      []models.Trait `json:"traits"`
}

type UpdateNPCRequest struct {
	Name        *string
	Description *string
	ImageURL    models.OptionalString
	Traits      *[]models.Trait
}

type NPCService interface {
	CreateNPC(ctx context.Context, actor models.Actor, req *CreateNPCRequest) (*models.NPC, error)
	GetNPC(ctx context.Context, actor models.Actor, id string) (*models.NPC, error)
	ListNPCs(ctx context.Context, actor models.Actor, campaignID string) ([]models.NPC, error)
	UpdateNPC(ctx context.Context, actor models.Actor, id string, req *UpdateNPCRequest) (*models.NPC, error)
	DeleteNPC(ctx context.Context, actor models.Actor, id string) error
}
