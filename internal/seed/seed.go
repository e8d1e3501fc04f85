package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"rpgmanager/internal/auth"
	"rpgmanager/internal/content"
	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
	"rpgmanager/internal/domain/services"
)

// UserAdmin is the part of the auth provider's admin API the seeder needs.
type UserAdmin interface {
	FindUserByEmail(ctx context.Context, email string) (*auth.AdminUser, error)
	CreateUser(ctx context.Context, req auth.CreateUserRequest) (string, error)
}

// Services are the application services fixture rows are written through.
type Services struct {
	Campaigns  services.CampaignService
	Membership services.MembershipService
	Scenarios  services.ScenarioService
	NPCs       services.NPCService
	Sessions   services.SessionService
}

// Seeder writes a Fixture into a live database.
type Seeder struct {
	admin     UserAdmin
	directory repositories.DirectoryRepository
	svc       Services
	newID     content.IDGenerator
	logger    *slog.Logger
}

func NewSeeder(admin UserAdmin, directory repositories.DirectoryRepository, svc Services, logger *slog.Logger) *Seeder {
	return &Seeder{
		admin:     admin,
		directory: directory,
		svc:       svc,
		newID:     content.NewID,
		logger:    logger,
	}
}

// Report counts what a Seed run created.
type Report struct {
	Users     int
	Campaigns int
	NPCs      int
	Scenarios int
	Sessions  int
}

// Seed creates every fixture user that does not exist yet, then every
// campaign with its roster and content. Campaign failures are logged and
// skipped so one bad entry does not block the rest.
func (s *Seeder) Seed(ctx context.Context, f *Fixture) (*Report, error) {
	report := &Report{}
	actors := make(map[string]models.Actor, len(f.Users))

	for _, u := range f.Users {
		actor, created, err := s.ensureUser(ctx, u)
		if err != nil {
			return report, err
		}
		if created {
			report.Users++
		}
		actors[models.NormalizeEmail(u.Email)] = actor
	}

	for _, c := range f.Campaigns {
		if err := s.seedCampaign(ctx, c, actors, report); err != nil {
			s.logger.Error("failed to seed campaign", "title", c.Title, "error", err)
			continue
		}
		report.Campaigns++
	}
	return report, nil
}

// Clear deletes every campaign owned by a fixture user. NPCs, scenarios and
// sessions go with their campaign.
func (s *Seeder) Clear(ctx context.Context, f *Fixture) (int, error) {
	deleted := 0
	for _, u := range f.Users {
		user, err := s.admin.FindUserByEmail(ctx, u.Email)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}

		actor := models.Actor{UserID: user.ID, Email: user.Email}
		campaigns, err := s.svc.Campaigns.ListCampaigns(ctx, actor)
		if err != nil {
			return deleted, fmt.Errorf("list campaigns of %s: %w", u.Email, err)
		}
		for _, c := range campaigns {
			if !c.IsOwner(actor.UserID) {
				continue
			}
			if err := s.svc.Campaigns.DeleteCampaign(ctx, actor, c.ID); err != nil {
				return deleted, fmt.Errorf("delete campaign %s: %w", c.ID, err)
			}
			deleted++
		}
	}
	return deleted, nil
}

func (s *Seeder) ensureUser(ctx context.Context, u User) (models.Actor, bool, error) {
	email := models.NormalizeEmail(u.Email)
	created := false

	var id string
	existing, err := s.admin.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		id = existing.ID
	case errors.Is(err, domain.ErrNotFound):
		id, err = s.admin.CreateUser(ctx, auth.CreateUserRequest{
			Email:        email,
			Password:     u.Password,
			UserMetadata: map[string]interface{}{"username": u.Username},
		})
		if err != nil {
			return models.Actor{}, false, err
		}
		created = true
		s.logger.Info("created user", "email", email, "user_id", id)
	default:
		return models.Actor{}, false, err
	}

	profile := &models.Profile{ID: id, Username: u.Username, Email: &email}
	if err := s.directory.UpsertProfile(ctx, profile); err != nil {
		return models.Actor{}, false, fmt.Errorf("upsert profile %s: %w", email, err)
	}
	return models.Actor{UserID: id, Email: email}, created, nil
}

func (s *Seeder) seedCampaign(ctx context.Context, c Campaign, actors map[string]models.Actor, report *Report) error {
	owner := actors[models.NormalizeEmail(c.Owner)]

	members := make([]models.Member, 0, len(c.Members))
	for _, m := range c.Members {
		members = append(members, models.Member{Email: m.Email, Role: m.Role})
	}
	result, err := s.svc.Campaigns.CreateCampaign(ctx, owner, &services.CreateCampaignRequest{
		Title:       c.Title,
		Description: c.Description,
		Members:     members,
	})
	if err != nil {
		return err
	}
	camp := result.Campaign
	s.logger.Info("created campaign", "campaign_id", camp.ID, "title", camp.Title)

	for _, m := range c.Members {
		if !m.Accept {
			continue
		}
		if err := s.accept(ctx, camp, owner, m.Email); err != nil {
			return err
		}
	}

	npcs := make(map[string]models.NPC, len(c.NPCs))
	for _, n := range c.NPCs {
		npc, err := s.svc.NPCs.CreateNPC(ctx, owner, &services.CreateNPCRequest{
			CampaignID:  camp.ID,
			Name:        n.Name,
			Description: n.Description,
			Traits:      n.Traits,
		})
		if err != nil {
			return fmt.Errorf("npc %q: %w", n.Name, err)
		}
		npcs[n.Name] = *npc
		report.NPCs++
	}

	scenarios := make(map[string]string, len(c.Scenarios))
	for _, sc := range c.Scenarios {
		doc, err := BuildContent(sc.Edits, npcs, s.newID)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Title, err)
		}
		created, err := s.svc.Scenarios.CreateScenario(ctx, owner, &services.CreateScenarioRequest{
			CampaignID:  camp.ID,
			Title:       sc.Title,
			Description: sc.Description,
			Content:     &doc,
		})
		if err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Title, err)
		}
		scenarios[sc.Title] = created.ID
		report.Scenarios++
	}

	for _, se := range c.Sessions {
		req := &services.CreateSessionRequest{
			CampaignID: camp.ID,
			Title:      se.Title,
			Date:       se.Date,
			Notes:      se.Notes,
		}
		if se.Scenario != "" {
			id, ok := scenarios[se.Scenario]
			if !ok {
				return fmt.Errorf("session %q: scenario %q is not in this campaign", se.Title, se.Scenario)
			}
			req.ScenarioID = &id
		}
		if _, err := s.svc.Sessions.CreateSession(ctx, owner, req); err != nil {
			return fmt.Errorf("session %q: %w", se.Title, err)
		}
		report.Sessions++
	}
	return nil
}

// accept activates an invited member the same way following the magic link
// would, by presenting claims that carry the invitation metadata.
func (s *Seeder) accept(ctx context.Context, camp *models.Campaign, owner models.Actor, email string) error {
	inv := models.CampaignInvitation{
		Email:         email,
		CampaignID:    camp.ID,
		CampaignTitle: camp.Title,
		InviterEmail:  owner.Email,
	}
	claims := &models.SupabaseClaims{Email: email, UserMetadata: inv.Metadata()}
	res, err := s.svc.Membership.AcceptInvitation(ctx, claims)
	if err != nil {
		return fmt.Errorf("accept invitation for %s: %w", email, err)
	}
	if !res.Activated {
		s.logger.Warn("member was not activated", "campaign_id", camp.ID, "email", email)
	}
	return nil
}

// LogSender stands in for the magic-link sender while seeding, so fixture
// users never receive real emails.
type LogSender struct {
	Logger *slog.Logger
}

func (l LogSender) SendCampaignInvitation(_ context.Context, inv models.CampaignInvitation) error {
	l.Logger.Info("skipping invitation email", "email", inv.Email, "campaign_id", inv.CampaignID)
	return nil
}

var _ services.InvitationSender = LogSender{}
