package campaign

import (
	"context"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"rpgmanager/internal/config"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/templates"
)

// npcService implements the NPCService interface
type npcService struct {
	npcRepo    repositories.NPCRepository
	authorizer services.CampaignAuthorizer
	templates  *templates.Registry
	logger     *slog.Logger
}

// NewNPCService creates a new NPC service. New NPCs without traits get the
// registry's default trait keys.
func NewNPCService(
	npcRepo repositories.NPCRepository,
	authorizer services.CampaignAuthorizer,
	registry *templates.Registry,
	logger *slog.Logger,
) services.NPCService {
	return &npcService{
		npcRepo:    npcRepo,
		authorizer: authorizer,
		templates:  registry,
		logger:     logger,
	}
}

var traitsRules = []validation.Rule{
	validation.Length(0, config.MaxTraits),
	validation.Each(validation.By(func(value interface{}) error {
		t, _ := value.(models.Trait)
		return validation.Validate(t.Key, validation.RuneLength(0, config.MaxTitleLength))
	})),
}

// CreateNPC creates an NPC in a campaign
func (s *npcService) CreateNPC(ctx context.Context, actor models.Actor, req *services.CreateNPCRequest) (*models.NPC, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, invalid(err)
	}

	if _, err := s.authorizer.CanEditContent(ctx, actor, req.CampaignID); err != nil {
		return nil, err
	}

	traits := req.Traits
	if traits == nil {
		traits = s.defaultTraits()
	}

	npc := &models.NPC{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CampaignID:  req.CampaignID,
		UserID:      actor.UserID,
		ImageURL:    req.ImageURL,
		Traits:      traits,
		CreatedAt:   time.Now(),
	}

	if err := s.npcRepo.Create(ctx, npc); err != nil {
		return nil, err
	}

	s.logger.Info("npc created",
		"id", npc.ID,
		"name", npc.Name,
		"campaign_id", npc.CampaignID,
	)

	return npc, nil
}

func (s *npcService) defaultTraits() []models.Trait {
	keys := s.templates.NPCTraitKeys()
	traits := make([]models.Trait, len(keys))
	for i, k := range keys {
		traits[i] = models.Trait{Key: k}
	}
	return traits
}

// GetNPC retrieves an NPC whose campaign the actor can see
func (s *npcService) GetNPC(ctx context.Context, actor models.Actor, id string) (*models.NPC, error) {
	npc, err := s.npcRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.CanView(ctx, actor, npc.CampaignID); err != nil {
		return nil, hideParent(err, "npc", id)
	}
	return npc, nil
}

// ListNPCs retrieves a campaign's NPCs
func (s *npcService) ListNPCs(ctx context.Context, actor models.Actor, campaignID string) ([]models.NPC, error) {
	if _, err := s.authorizer.CanView(ctx, actor, campaignID); err != nil {
		return nil, err
	}
	return s.npcRepo.ListByCampaign(ctx, campaignID)
}

// UpdateNPC updates the given fields; traits are replaced as a whole list
func (s *npcService) UpdateNPC(ctx context.Context, actor models.Actor, id string, req *services.UpdateNPCRequest) (*models.NPC, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, invalid(err)
	}

	npc, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		npc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		npc.Description = *req.Description
	}
	npc.ImageURL = req.ImageURL.Apply(npc.ImageURL)
	if req.Traits != nil {
		npc.Traits = *req.Traits
		if npc.Traits == nil {
			npc.Traits = []models.Trait{}
		}
	}

	if err := s.npcRepo.Update(ctx, npc); err != nil {
		return nil, err
	}

	s.logger.Info("npc updated",
		"id", npc.ID,
		"user_id", actor.UserID,
	)

	return npc, nil
}

// DeleteNPC deletes an NPC. Character sections linked to it keep their copied text.
func (s *npcService) DeleteNPC(ctx context.Context, actor models.Actor, id string) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}

	if err := s.npcRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("npc deleted",
		"id", id,
		"user_id", actor.UserID,
	)

	return nil
}

func (s *npcService) editable(ctx context.Context, actor models.Actor, id string) (*models.NPC, error) {
	npc, err := s.npcRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.CanEditContent(ctx, actor, npc.CampaignID); err != nil {
		return nil, hideParent(err, "npc", id)
	}
	return npc, nil
}

func (s *npcService) validateCreateRequest(req *services.CreateNPCRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CampaignID, validation.Required),
		validation.Field(&req.Name, titleRules...),
		validation.Field(&req.Description, descriptionRules...),
		validation.Field(&req.ImageURL, imageURLRules...),
		validation.Field(&req.Traits, traitsRules...),
	)
}

func (s *npcService) validateUpdateRequest(req *services.UpdateNPCRequest) error {
	errs := validation.Errors{
		"name":        validation.Validate(req.Name, optionalTitleRules...),
		"description": validation.Validate(req.Description, optionalDescriptionRules...),
		"image_url":   validation.Validate(req.ImageURL.Value, imageURLRules...),
	}
	if req.Traits != nil {
		errs["traits"] = validation.Validate(*req.Traits, traitsRules...)
	}
	return errs.Filter()
}
