package campaign

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"rpgmanager/internal/config"
	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
	"rpgmanager/internal/domain/services"
)

// sessionService implements the SessionService interface
type sessionService struct {
	sessionRepo  repositories.SessionRepository
	scenarioRepo repositories.ScenarioRepository
	authorizer   services.CampaignAuthorizer
	logger       *slog.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repositories.SessionRepository,
	scenarioRepo repositories.ScenarioRepository,
	authorizer services.CampaignAuthorizer,
	logger *slog.Logger,
) services.SessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		scenarioRepo: scenarioRepo,
		authorizer:   authorizer,
		logger:       logger,
	}
}

// CreateSession logs a play session in a campaign
func (s *sessionService) CreateSession(ctx context.Context, actor models.Actor, req *services.CreateSessionRequest) (*models.Session, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, invalid(err)
	}

	if _, err := s.authorizer.CanEditContent(ctx, actor, req.CampaignID); err != nil {
		return nil, err
	}
	if err := s.checkScenario(ctx, req.CampaignID, req.ScenarioID); err != nil {
		return nil, err
	}

	session := &models.Session{
		Title:      strings.TrimSpace(req.Title),
		Date:       req.Date,
		Notes:      req.Notes,
		CampaignID: req.CampaignID,
		UserID:     actor.UserID,
		ScenarioID: req.ScenarioID,
		CreatedAt:  time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session created",
		"id", session.ID,
		"date", session.Date,
		"campaign_id", session.CampaignID,
	)

	return session, nil
}

// checkScenario verifies a linked scenario exists in the same campaign.
func (s *sessionService) checkScenario(ctx context.Context, campaignID string, scenarioID *string) error {
	if scenarioID == nil {
		return nil
	}
	scenario, err := s.scenarioRepo.GetByID(ctx, *scenarioID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && scenario.CampaignID != campaignID) {
		return invalidf("scenario_id: scenario %s is not part of this campaign", *scenarioID)
	}
	return err
}

// GetSession retrieves a session whose campaign the actor can see
func (s *sessionService) GetSession(ctx context.Context, actor models.Actor, id string) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.CanView(ctx, actor, session.CampaignID); err != nil {
		return nil, hideParent(err, "session", id)
	}
	return session, nil
}

// ListSessions retrieves a campaign's sessions, latest date first
func (s *sessionService) ListSessions(ctx context.Context, actor models.Actor, campaignID string) ([]models.Session, error) {
	if _, err := s.authorizer.CanView(ctx, actor, campaignID); err != nil {
		return nil, err
	}
	return s.sessionRepo.ListByCampaign(ctx, campaignID)
}

// UpdateSession updates the given fields
func (s *sessionService) UpdateSession(ctx context.Context, actor models.Actor, id string, req *services.UpdateSessionRequest) (*models.Session, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, invalid(err)
	}

	session, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.ScenarioID.Present {
		if err := s.checkScenario(ctx, session.CampaignID, req.ScenarioID.Value); err != nil {
			return nil, err
		}
	}

	if req.Title != nil {
		session.Title = strings.TrimSpace(*req.Title)
	}
	if req.Date != nil {
		session.Date = *req.Date
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}
	session.ScenarioID = req.ScenarioID.Apply(session.ScenarioID)

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session updated",
		"id", session.ID,
		"user_id", actor.UserID,
	)

	return session, nil
}

// DeleteSession deletes a session
func (s *sessionService) DeleteSession(ctx context.Context, actor models.Actor, id string) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}

	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("session deleted",
		"id", id,
		"user_id", actor.UserID,
	)

	return nil
}

func (s *sessionService) editable(ctx context.Context, actor models.Actor, id string) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.CanEditContent(ctx, actor, session.CampaignID); err != nil {
		return nil, hideParent(err, "session", id)
	}
	return session, nil
}

func (s *sessionService) validateCreateRequest(req *services.CreateSessionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CampaignID, validation.Required),
		validation.Field(&req.Title, titleRules...),
		validation.Field(&req.Date, validation.Required, validDate),
		validation.Field(&req.Notes, validation.RuneLength(0, config.MaxDescriptionLength)),
		validation.Field(&req.ScenarioID, validation.NilOrNotEmpty),
	)
}

func (s *sessionService) validateUpdateRequest(req *services.UpdateSessionRequest) error {
	return validation.Errors{
		"title":       validation.Validate(req.Title, optionalTitleRules...),
		"date":        validation.Validate(req.Date, validation.NilOrNotEmpty, validDate),
		"notes":       validation.Validate(req.Notes, validation.RuneLength(0, config.MaxDescriptionLength)),
		"scenario_id": validation.Validate(req.ScenarioID.Value, validation.NilOrNotEmpty),
	}.Filter()
}
