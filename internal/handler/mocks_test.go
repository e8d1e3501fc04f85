package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rpgmanager/internal/content"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
)

type mockCampaignService struct {
	mock.Mock
}

func (m *mockCampaignService) CreateCampaign(ctx context.Context, actor models.Actor, req *services.CreateCampaignRequest) (*services.CreateCampaignResult, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*services.CreateCampaignResult)
	return res, args.Error(1)
}

func (m *mockCampaignService) GetCampaign(ctx context.Context, actor models.Actor, id string) (*models.Campaign, error) {
	args := m.Called(ctx, actor, id)
	c, _ := args.Get(0).(*models.Campaign)
	return c, args.Error(1)
}

func (m *mockCampaignService) ListCampaigns(ctx context.Context, actor models.Actor) ([]models.Campaign, error) {
	args := m.Called(ctx, actor)
	list, _ := args.Get(0).([]models.Campaign)
	return list, args.Error(1)
}

func (m *mockCampaignService) UpdateCampaign(ctx context.Context, actor models.Actor, id string, req *services.UpdateCampaignRequest) (*models.Campaign, error) {
	args := m.Called(ctx, actor, id, req)
	c, _ := args.Get(0).(*models.Campaign)
	return c, args.Error(1)
}

func (m *mockCampaignService) DeleteCampaign(ctx context.Context, actor models.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockMembershipService struct {
	mock.Mock
}

func (m *mockMembershipService) AddMember(ctx context.Context, actor models.Actor, campaignID string, req *services.AddMemberRequest) (*services.MemberResult, error) {
	args := m.Called(ctx, actor, campaignID, req)
	res, _ := args.Get(0).(*services.MemberResult)
	return res, args.Error(1)
}

func (m *mockMembershipService) AddExistingUser(ctx context.Context, actor models.Actor, campaignID, email string) (*services.MemberResult, error) {
	args := m.Called(ctx, actor, campaignID, email)
	res, _ := args.Get(0).(*services.MemberResult)
	return res, args.Error(1)
}

func (m *mockMembershipService) RemoveMember(ctx context.Context, actor models.Actor, campaignID, email string) (*models.Campaign, error) {
	args := m.Called(ctx, actor, campaignID, email)
	c, _ := args.Get(0).(*models.Campaign)
	return c, args.Error(1)
}

func (m *mockMembershipService) UpdateMemberRole(ctx context.Context, actor models.Actor, campaignID, email string, role models.MemberRole) (*models.Campaign, error) {
	args := m.Called(ctx, actor, campaignID, email, role)
	c, _ := args.Get(0).(*models.Campaign)
	return c, args.Error(1)
}

func (m *mockMembershipService) ResendInvitation(ctx context.Context, actor models.Actor, campaignID, email string) (*services.InvitationOutcome, error) {
	args := m.Called(ctx, actor, campaignID, email)
	o, _ := args.Get(0).(*services.InvitationOutcome)
	return o, args.Error(1)
}

func (m *mockMembershipService) AcceptInvitation(ctx context.Context, claims *models.SupabaseClaims) (*services.AcceptInvitationResult, error) {
	args := m.Called(ctx, claims)
	res, _ := args.Get(0).(*services.AcceptInvitationResult)
	return res, args.Error(1)
}

type mockScenarioService struct {
	mock.Mock
}

func (m *mockScenarioService) CreateScenario(ctx context.Context, actor models.Actor, req *services.CreateScenarioRequest) (*models.Scenario, error) {
	args := m.Called(ctx, actor, req)
	s, _ := args.Get(0).(*models.Scenario)
	return s, args.Error(1)
}

func (m *mockScenarioService) GetScenario(ctx context.Context, actor models.Actor, id string) (*models.Scenario, error) {
	args := m.Called(ctx, actor, id)
	s, _ := args.Get(0).(*models.Scenario)
	return s, args.Error(1)
}

func (m *mockScenarioService) ListScenarios(ctx context.Context, actor models.Actor, campaignID string) ([]models.Scenario, error) {
	args := m.Called(ctx, actor, campaignID)
	list, _ := args.Get(0).([]models.Scenario)
	return list, args.Error(1)
}

func (m *mockScenarioService) ListAllScenarios(ctx context.Context, actor models.Actor) ([]models.Scenario, error) {
	args := m.Called(ctx, actor)
	list, _ := args.Get(0).([]models.Scenario)
	return list, args.Error(1)
}

func (m *mockScenarioService) UpdateScenario(ctx context.Context, actor models.Actor, id string, req *services.UpdateScenarioRequest) (*models.Scenario, error) {
	args := m.Called(ctx, actor, id, req)
	s, _ := args.Get(0).(*models.Scenario)
	return s, args.Error(1)
}

func (m *mockScenarioService) DeleteScenario(ctx context.Context, actor models.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockScenarioService) EditContent(ctx context.Context, actor models.Actor, id string, cmds []content.Command) (*services.EditResult, error) {
	args := m.Called(ctx, actor, id, cmds)
	res, _ := args.Get(0).(*services.EditResult)
	return res, args.Error(1)
}

func (m *mockScenarioService) ImportScenarios(ctx context.Context, actor models.Actor, targetCampaignID string, sourceIDs []string) (*services.ImportResult, error) {
	args := m.Called(ctx, actor, targetCampaignID, sourceIDs)
	res, _ := args.Get(0).(*services.ImportResult)
	return res, args.Error(1)
}
