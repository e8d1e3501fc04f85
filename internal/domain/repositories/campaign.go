package repositories

import (
	"context"

	"rpgmanager/internal/domain/models"
)

// CampaignRepository persists campaigns and their member rosters.
type CampaignRepository interface {
	// Create inserts a campaign and fills ID and CreatedAt.
	Create(ctx context.Context, campaign *models.Campaign) error

	// GetByID returns a campaign regardless of who is asking.
	// Access checks belong to the caller.
	GetByID(ctx context.Context, id string) (*models.Campaign, error)

	// GetForUpdate returns a campaign and locks its row until the surrounding
	// transaction ends. Must be called inside ExecTx.
	GetForUpdate(ctx context.Context, id string) (*models.Campaign, error)

	// ListVisible returns campaigns owned by userID or listing email as a
	// member, newest first.
	ListVisible(ctx context.Context, userID, email string) ([]models.Campaign, error)

	// Update writes title, description, image_url and imported_scenarios.
	Update(ctx context.Context, campaign *models.Campaign) error

	// UpdateMembers replaces the member list.
	UpdateMembers(ctx context.Context, id string, members []models.Member) error

	// Delete removes the campaign; its scenarios, NPCs and sessions go with it.
	Delete(ctx context.Context, id string) error
}
