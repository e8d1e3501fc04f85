package repositories

import (
	"context"

	"rpgmanager/internal/domain/models"
)

type NPCRepository interface {
	Create(ctx context.Context, npc *models.NPC) error
	GetByID(ctx context.Context, id string) (*models.NPC, error)
	// ListByCampaign returns a campaign's NPCs, newest first.
	ListByCampaign(ctx context.Context, campaignID string) ([]models.NPC, error)
	Update(ctx context.Context, npc *models.NPC) error
	Delete(ctx context.Context, id string) error
}
