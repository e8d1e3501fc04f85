package repositories

import (
	"context"

	"rpgmanager/internal/content"
	"rpgmanager/internal/domain/models"
)

type ScenarioRepository interface {
	Create(ctx context.Context, scenario *models.Scenario) error
	GetByID(ctx context.Context, id string) (*models.Scenario, error)

	// ListByCampaign returns a campaign's scenarios, newest first.
	ListByCampaign(ctx context.Context, campaignID string) ([]models.Scenario, error)

	// ListVisible returns every scenario in a campaign visible to the user,
	// with CampaignTitle filled in, newest first.
	ListVisible(ctx context.Context, userID, email string) ([]models.Scenario, error)

	// Update writes title, description and content.
	Update(ctx context.Context, scenario *models.Scenario) error

	// UpdateContent replaces only the content document.
	UpdateContent(ctx context.Context, id string, doc content.Document) error

	Delete(ctx context.Context, id string) error
}
