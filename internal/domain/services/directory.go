package services

import (
	"context"

	"rpgmanager/internal/domain/models"
)

// DirectoryService lists users that can be added to a campaign.
type DirectoryService interface {
	ListUsers(ctx context.Context) ([]models.DirectoryUser, error)
}
