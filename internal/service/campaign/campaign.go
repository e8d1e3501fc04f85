package campaign

import (
	"context"
	"fmt"
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

// campaignService implements the CampaignService interface
type campaignService struct {
	campaignRepo repositories.CampaignRepository
	authorizer   services.CampaignAuthorizer
	importer     services.ScenarioService
	inviter      inviter
	logger       *slog.Logger
}

// NewCampaignService creates a new campaign service. importer clones the
// scenarios selected at creation time.
func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	authorizer services.CampaignAuthorizer,
	importer services.ScenarioService,
	sender services.InvitationSender,
	logger *slog.Logger,
) services.CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		authorizer:   authorizer,
		importer:     importer,
		inviter:      inviter{sender: sender, logger: logger},
		logger:       logger,
	}
}

// CreateCampaign inserts the campaign, then invites its members and clones the
// selected scenarios. Follow-up failures are reported in the result.
func (s *campaignService) CreateCampaign(ctx context.Context, actor models.Actor, req *services.CreateCampaignRequest) (*services.CreateCampaignResult, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, invalid(err)
	}
	members, err := s.prepareMembers(actor, req.Members)
	if err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		UserID:            actor.UserID,
		ImageURL:          req.ImageURL,
		Members:           members,
		ImportedScenarios: dedupe(req.ImportedScenarios),
		CreatedAt:         time.Now(),
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	s.logger.Info("campaign created",
		"id", campaign.ID,
		"title", campaign.Title,
		"user_id", actor.UserID,
		"members", len(campaign.Members),
	)

	result := &services.CreateCampaignResult{
		Campaign:    campaign,
		Invitations: s.inviter.inviteAll(ctx, campaign, actor.Email),
	}

	if len(campaign.ImportedScenarios) > 0 {
		imported, err := s.importer.ImportScenarios(ctx, actor, campaign.ID, campaign.ImportedScenarios)
		if err != nil {
			// The campaign exists; report the import as a whole failure item by item
			s.logger.Warn("scenario import failed", "campaign_id", campaign.ID, "error", err)
			imported = failedImport(campaign.ImportedScenarios, err)
		}
		result.Import = imported
	}

	return result, nil
}

// prepareMembers normalizes emails and defaults role and status. The owner and
// duplicate emails are rejected.
func (s *campaignService) prepareMembers(actor models.Actor, in []models.Member) ([]models.Member, error) {
	members := make([]models.Member, 0, len(in))
	seen := make(map[string]bool, len(in))
	owner := actor.NormalizedEmail()

	for i, m := range in {
		email := models.NormalizeEmail(m.Email)
		if m.Role == "" {
			m.Role = models.RolePlayer
		}
		if m.Status == "" {
			m.Status = models.StatusInvited
		}

		err := validation.Errors{
			"email": validation.Validate(email, emailRules...),
			"role":  validation.Validate(m.Role, validRole),
			"status": validation.Validate(m.Status,
				validation.In(models.StatusInvited, models.StatusActive)),
		}.Filter()
		if err != nil {
			return nil, invalidf("members[%d]: %v", i, err)
		}

		if email == owner {
			return nil, invalidf("members[%d]: the campaign owner cannot be added as a member", i)
		}
		if seen[email] {
			return nil, domain.NewConflictError("member", email, "%s is listed more than once", email)
		}
		seen[email] = true

		members = append(members, models.Member{Email: email, Role: m.Role, Status: m.Status})
	}
	return members, nil
}

// GetCampaign retrieves a campaign visible to the actor
func (s *campaignService) GetCampaign(ctx context.Context, actor models.Actor, id string) (*models.Campaign, error) {
	return s.authorizer.CanView(ctx, actor, id)
}

// ListCampaigns retrieves owned and joined campaigns
func (s *campaignService) ListCampaigns(ctx context.Context, actor models.Actor) ([]models.Campaign, error) {
	return s.campaignRepo.ListVisible(ctx, actor.UserID, actor.NormalizedEmail())
}

// UpdateCampaign updates title, description and image
func (s *campaignService) UpdateCampaign(ctx context.Context, actor models.Actor, id string, req *services.UpdateCampaignRequest) (*models.Campaign, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, invalid(err)
	}

	campaign, err := s.authorizer.CanManage(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		campaign.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	campaign.ImageURL = req.ImageURL.Apply(campaign.ImageURL)

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	s.logger.Info("campaign updated",
		"id", campaign.ID,
		"user_id", actor.UserID,
	)

	return campaign, nil
}

// DeleteCampaign deletes a campaign with its scenarios, NPCs and sessions
func (s *campaignService) DeleteCampaign(ctx context.Context, actor models.Actor, id string) error {
	if _, err := s.authorizer.CanManage(ctx, actor, id); err != nil {
		return err
	}

	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("campaign deleted",
		"id", id,
		"user_id", actor.UserID,
	)

	return nil
}

func (s *campaignService) validateCreateRequest(req *services.CreateCampaignRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, titleRules...),
		validation.Field(&req.Description, descriptionRules...),
		validation.Field(&req.ImageURL, imageURLRules...),
		validation.Field(&req.ImportedScenarios,
			validation.Length(0, config.MaxImportBatch),
			validation.Each(validation.Required),
		),
	)
}

func (s *campaignService) validateUpdateRequest(req *services.UpdateCampaignRequest) error {
	return validation.Errors{
		"title":       validation.Validate(req.Title, optionalTitleRules...),
		"description": validation.Validate(req.Description, optionalDescriptionRules...),
		"image_url":   validation.Validate(req.ImageURL.Value, imageURLRules...),
	}.Filter()
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func failedImport(sourceIDs []string, err error) *services.ImportResult {
	result := &services.ImportResult{
		Summary: services.ImportSummary{Requested: len(sourceIDs), Failed: len(sourceIDs)},
		Items:   make([]services.ImportItem, 0, len(sourceIDs)),
	}
	for _, id := range sourceIDs {
		result.Items = append(result.Items, services.ImportItem{
			SourceID: id,
			Action:   importActionFailed,
			Error:    fmt.Sprint(err),
		})
	}
	return result
}
