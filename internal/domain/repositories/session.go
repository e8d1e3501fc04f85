package repositories

import (
	"context"

	"rpgmanager/internal/domain/models"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	// ListByCampaign returns a campaign's sessions ordered by date, latest first.
	ListByCampaign(ctx context.Context, campaignID string) ([]models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}
