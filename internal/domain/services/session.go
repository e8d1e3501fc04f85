package services

import (
	"context"

	"rpgmanager/internal/domain/models"
)

type CreateSessionRequest struct {
	CampaignID string  `json:"campaign_id"`
	Title      string  `json:"title"`
	Date       string  `json:"date"`
	Notes      string  `json:"notes"`
	ScenarioID *string `json:"scenario_id"`
}

type UpdateSessionRequest struct {
	Title      *string
	Date       *string
	Notes      *string
	ScenarioID models.OptionalString
}

type SessionService interface {
	CreateSession(ctx context.Context, actor models.Actor, req *CreateSessionRequest) (*models.Session, error)
	GetSession(ctx context.Context, actor models.Actor, id string) (*models.Session, error)
	ListSessions(ctx context.Context, actor models.Actor, campaignID string) ([]models.Session, error)
	UpdateSession(ctx context.Context, actor models.Actor, id string, req *UpdateSessionRequest) (*models.Session, error)
	DeleteSession(ctx context.Context, actor models.Actor, id string) error
}
