package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"rpgmanager/internal/config"
	"rpgmanager/internal/content"
	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/metrics"
)

const (
	importActionCloned = "cloned"
	importActionFailed = "failed"
)

// scenarioService implements the ScenarioService interface
type scenarioService struct {
	scenarioRepo repositories.ScenarioRepository
	npcRepo      repositories.NPCRepository
	campaignRepo repositories.CampaignRepository
	authorizer   services.CampaignAuthorizer
	newID        content.IDGenerator
	logger       *slog.Logger
}

// NewScenarioService creates a new scenario service. newID generates content
// element ids; nil uses content.NewID.
func NewScenarioService(
	scenarioRepo repositories.ScenarioRepository,
	npcRepo repositories.NPCRepository,
	campaignRepo repositories.CampaignRepository,
	authorizer services.CampaignAuthorizer,
	newID content.IDGenerator,
	logger *slog.Logger,
) services.ScenarioService {
	if newID == nil {
		newID = content.NewID
	}
	return &scenarioService{
		scenarioRepo: scenarioRepo,
		npcRepo:      npcRepo,
		campaignRepo: campaignRepo,
		authorizer:   authorizer,
		newID:        newID,
		logger:       logger,
	}
}

// CreateScenario creates a scenario, empty unless content is supplied
func (s *scenarioService) CreateScenario(ctx context.Context, actor models.Actor, req *services.CreateScenarioRequest) (*models.Scenario, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, invalid(err)
	}

	if _, err := s.authorizer.CanEditContent(ctx, actor, req.CampaignID); err != nil {
		return nil, err
	}

	doc := content.New()
	if req.Content != nil {
		doc = *req.Content
	}

	scenario := &models.Scenario{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CampaignID:  req.CampaignID,
		UserID:      actor.UserID,
		Content:     doc,
		CreatedAt:   time.Now(),
	}

	if err := s.scenarioRepo.Create(ctx, scenario); err != nil {
		return nil, err
	}

	s.logger.Info("scenario created",
		"id", scenario.ID,
		"campaign_id", scenario.CampaignID,
		"user_id", actor.UserID,
	)

	return scenario, nil
}

// GetScenario retrieves a scenario whose campaign the actor can see
func (s *scenarioService) GetScenario(ctx context.Context, actor models.Actor, id string) (*models.Scenario, error) {
	scenario, err := s.scenarioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.CanView(ctx, actor, scenario.CampaignID); err != nil {
		return nil, hideParent(err, "scenario", id)
	}
	return scenario, nil
}

// ListScenarios retrieves a campaign's scenarios
func (s *scenarioService) ListScenarios(ctx context.Context, actor models.Actor, campaignID string) ([]models.Scenario, error) {
	if _, err := s.authorizer.CanView(ctx, actor, campaignID); err != nil {
		return nil, err
	}
	return s.scenarioRepo.ListByCampaign(ctx, campaignID)
}

// ListAllScenarios retrieves every visible scenario with its campaign title
func (s *scenarioService) ListAllScenarios(ctx context.Context, actor models.Actor) ([]models.Scenario, error) {
	return s.scenarioRepo.ListVisible(ctx, actor.UserID, actor.NormalizedEmail())
}

// UpdateScenario updates fields; content replaces the whole document
func (s *scenarioService) UpdateScenario(ctx context.Context, actor models.Actor, id string, req *services.UpdateScenarioRequest) (*models.Scenario, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, invalid(err)
	}

	scenario, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		scenario.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		scenario.Description = *req.Description
	}
	if req.Content != nil {
		scenario.Content = *req.Content
	}

	if err := s.scenarioRepo.Update(ctx, scenario); err != nil {
		return nil, err
	}

	s.logger.Info("scenario updated",
		"id", scenario.ID,
		"user_id", actor.UserID,
	)

	return scenario, nil
}

// DeleteScenario deletes a scenario; sessions pointing at it lose the link
func (s *scenarioService) DeleteScenario(ctx context.Context, actor models.Actor, id string) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}

	if err := s.scenarioRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("scenario deleted",
		"id", id,
		"user_id", actor.UserID,
	)

	return nil
}

// EditContent loads the document, applies the commands in order and saves once
func (s *scenarioService) EditContent(ctx context.Context, actor models.Actor, id string, cmds []content.Command) (*services.EditResult, error) {
	err := validation.Validate(cmds, validation.Required, validation.Length(1, config.MaxEditCommands))
	if err != nil {
		return nil, invalidf("commands: %v", err)
	}

	scenario, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	editor := content.NewEditor(scenario.Content, s.newID)
	created, err := editor.ApplyAll(cmds, s.npcResolver(ctx, scenario.CampaignID))
	if err != nil {
		return nil, err
	}

	saver := content.SaverFunc(func(ctx context.Context, doc content.Document) error {
		return s.scenarioRepo.UpdateContent(ctx, scenario.ID, doc)
	})
	if err := editor.Save(ctx, saver); err != nil {
		return nil, err
	}
	scenario.Content = editor.Document()

	s.logger.Info("scenario content edited",
		"id", scenario.ID,
		"commands", len(cmds),
		"user_id", actor.UserID,
	)

	return &services.EditResult{Scenario: scenario, Created: created}, nil
}

// npcResolver only resolves NPCs that live in the scenario's campaign.
func (s *scenarioService) npcResolver(ctx context.Context, campaignID string) content.NPCResolver {
	return func(npcID string) (content.NPCRef, error) {
		npc, err := s.npcRepo.GetByID(ctx, npcID)
		if err != nil {
			return content.NPCRef{}, err
		}
		if npc.CampaignID != campaignID {
			return content.NPCRef{}, fmt.Errorf("npc %s: %w", npcID, domain.ErrNotFound)
		}
		return content.NPCRef{ID: npc.ID, Name: npc.Name, Description: npc.Description}, nil
	}
}

// ImportScenarios clones each source into the target campaign, one at a
// time. A failed item is recorded and the batch moves on; nothing is undone.
func (s *scenarioService) ImportScenarios(ctx context.Context, actor models.Actor, targetCampaignID string, sourceIDs []string) (*services.ImportResult, error) {
	err := validation.Validate(sourceIDs,
		validation.Required,
		validation.Length(1, config.MaxImportBatch),
		validation.Each(validation.Required),
	)
	if err != nil {
		return nil, invalidf("scenario_ids: %v", err)
	}

	target, err := s.authorizer.CanEditContent(ctx, actor, targetCampaignID)
	if err != nil {
		return nil, err
	}

	result := &services.ImportResult{
		Summary: services.ImportSummary{Requested: len(sourceIDs)},
		Items:   make([]services.ImportItem, 0, len(sourceIDs)),
	}

	var cloned []string
	for _, sourceID := range sourceIDs {
		clone, err := s.cloneScenario(ctx, actor, sourceID, target.ID)
		metrics.ScenarioClonesTotal.WithLabelValues(metrics.Result(err)).Inc()

		if err != nil {
			s.logger.Warn("scenario clone failed",
				"source_id", sourceID,
				"campaign_id", target.ID,
				"error", err,
			)
			result.Summary.Failed++
			result.Items = append(result.Items, services.ImportItem{
				SourceID: sourceID,
				Action:   importActionFailed,
				Error:    err.Error(),
			})
			continue
		}

		result.Summary.Cloned++
		result.Items = append(result.Items, services.ImportItem{
			SourceID:   sourceID,
			ScenarioID: clone.ID,
			Action:     importActionCloned,
		})
		cloned = append(cloned, sourceID)
	}

	s.recordImported(ctx, target, cloned)

	s.logger.Info("scenarios imported",
		"campaign_id", target.ID,
		"requested", result.Summary.Requested,
		"cloned", result.Summary.Cloned,
		"failed", result.Summary.Failed,
	)

	return result, nil
}

// cloneScenario copies title, description and content verbatim into a new
// scenario owned by the actor.
func (s *scenarioService) cloneScenario(ctx context.Context, actor models.Actor, sourceID, campaignID string) (*models.Scenario, error) {
	source, err := s.GetScenario(ctx, actor, sourceID)
	if err != nil {
		return nil, err
	}

	clone := &models.Scenario{
		Title:       source.Title,
		Description: source.Description,
		CampaignID:  campaignID,
		UserID:      actor.UserID,
		Content:     source.Content,
		CreatedAt:   time.Now(),
	}
	if err := s.scenarioRepo.Create(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// recordImported appends newly cloned source ids to the campaign's import list.
// The clones already exist, so a failure here is only logged.
func (s *scenarioService) recordImported(ctx context.Context, campaign *models.Campaign, sourceIDs []string) {
	before := len(campaign.ImportedScenarios)
	campaign.ImportedScenarios = dedupe(append(campaign.ImportedScenarios, sourceIDs...))
	if len(campaign.ImportedScenarios) == before {
		return
	}
	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		s.logger.Warn("failed to record imported scenarios",
			"campaign_id", campaign.ID,
			"error", err,
		)
	}
}

// editable loads a scenario the actor may change.
func (s *scenarioService) editable(ctx context.Context, actor models.Actor, id string) (*models.Scenario, error) {
	scenario, err := s.scenarioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.CanEditContent(ctx, actor, scenario.CampaignID); err != nil {
		return nil, hideParent(err, "scenario", id)
	}
	return scenario, nil
}

func (s *scenarioService) validateCreateRequest(req *services.CreateScenarioRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CampaignID, validation.Required),
		validation.Field(&req.Title, titleRules...),
		validation.Field(&req.Description, descriptionRules...),
		validation.Field(&req.Content),
	)
}

func (s *scenarioService) validateUpdateRequest(req *services.UpdateScenarioRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, optionalTitleRules...),
		validation.Field(&req.Description, optionalDescriptionRules...),
		validation.Field(&req.Content),
	)
}

// hideParent reports a child of an invisible campaign as the child not being
// found, so callers cannot probe campaign ids through child ids.
func hideParent(err error, kind, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return err
}
