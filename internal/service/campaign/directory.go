package campaign

import (
	"context"
	"log/slog"

	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
	"rpgmanager/internal/domain/services"
)

// directoryService implements the DirectoryService interface
type directoryService struct {
	directoryRepo repositories.DirectoryRepository
	logger        *slog.Logger
}

// NewDirectoryService creates a new user directory service
func NewDirectoryService(directoryRepo repositories.DirectoryRepository, logger *slog.Logger) services.DirectoryService {
	return &directoryService{directoryRepo: directoryRepo, logger: logger}
}

// ListUsers reads the full user list. When the database function is not
// available it falls back to profiles that carry an email.
func (s *directoryService) ListUsers(ctx context.Context) ([]models.DirectoryUser, error) {
	users, err := s.directoryRepo.ListAllUsers(ctx)
	if err == nil {
		return users, nil
	}

	s.logger.Warn("get_all_users failed, falling back to profiles", "error", err)

	profiles, err := s.directoryRepo.ListProfilesWithEmail(ctx)
	if err != nil {
		return nil, err
	}

	users = make([]models.DirectoryUser, 0, len(profiles))
	for _, p := range profiles {
		if p.Email == nil || *p.Email == "" {
			continue
		}
		username := p.Username
		users = append(users, models.DirectoryUser{
			ID:        p.ID,
			Email:     *p.Email,
			Username:  &username,
			AvatarURL: p.AvatarURL,
		})
	}
	return users, nil
}
