package repositories

import (
	"context"

	"rpgmanager/internal/domain/models"
)

// DirectoryRepository enumerates known users.
type DirectoryRepository interface {
	// ListAllUsers calls the get_all_users() database function.
	ListAllUsers(ctx context.Context) ([]models.DirectoryUser, error)

	// ListProfilesWithEmail reads profiles that carry an email address.
	ListProfilesWithEmail(ctx context.Context) ([]models.Profile, error)

	// UpsertProfile creates or refreshes the profile row for a user id.
	UpsertProfile(ctx context.Context, profile *models.Profile) error
}
