package campaign

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"rpgmanager/internal/content"
	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/repositories"
	"rpgmanager/internal/domain/services"
	authz "rpgmanager/internal/service/auth"
	"rpgmanager/internal/templates"
)

// memDB is an in-memory stand-in for the campaign tables. Reads return
// copies so services cannot mutate stored rows without writing them back.
type memDB struct {
	mu        sync.Mutex
	seq       int
	campaigns map[string]models.Campaign
	scenarios map[string]models.Scenario
	npcs      map[string]models.NPC
	sessions  map[string]models.Session
	users     []models.DirectoryUser
	profiles  []models.Profile
	usersErr  error
	locks     int
}

func newMemDB() *memDB {
	return &memDB{
		campaigns: map[string]models.Campaign{},
		scenarios: map[string]models.Scenario{},
		npcs:      map[string]models.NPC{},
		sessions:  map[string]models.Session{},
	}
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func (db *memDB) next(prefix string) (string, time.Time) {
	db.seq++
	return fmt.Sprintf("%s-%d", prefix, db.seq), epoch.Add(time.Duration(db.seq) * time.Minute)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

func cloneCampaign(c models.Campaign) *models.Campaign {
	c.Members = slices.Clone(c.Members)
	c.ImportedScenarios = slices.Clone(c.ImportedScenarios)
	return &c
}

func newestFirst[T any](items []T, at func(T) time.Time) []T {
	sort.SliceStable(items, func(i, j int) bool { return at(items[i]).After(at(items[j])) })
	return items
}

func (db *memDB) visible(c models.Campaign, userID, email string) bool {
	return c.UserID == userID || (email != "" && c.FindMember(email) >= 0)
}

// campaigns

type memCampaigns struct{ db *memDB }

func (r memCampaigns) Create(_ context.Context, c *models.Campaign) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID, c.CreatedAt = r.db.next("camp")
	r.db.campaigns[c.ID] = *cloneCampaign(*c)
	return nil
}

func (r memCampaigns) GetByID(_ context.Context, id string) (*models.Campaign, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.campaigns[id]
	if !ok {
		return nil, notFound("campaign", id)
	}
	return cloneCampaign(c), nil
}

func (r memCampaigns) GetForUpdate(ctx context.Context, id string) (*models.Campaign, error) {
	r.db.mu.Lock()
	r.db.locks++
	r.db.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r memCampaigns) ListVisible(_ context.Context, userID, email string) ([]models.Campaign, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Campaign{}
	for _, c := range r.db.campaigns {
		if r.db.visible(c, userID, email) {
			out = append(out, *cloneCampaign(c))
		}
	}
	return newestFirst(out, func(c models.Campaign) time.Time { return c.CreatedAt }), nil
}

func (r memCampaigns) Update(_ context.Context, c *models.Campaign) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.campaigns[c.ID]
	if !ok {
		return notFound("campaign", c.ID)
	}
	stored.Title, stored.Description, stored.ImageURL = c.Title, c.Description, c.ImageURL
	stored.ImportedScenarios = slices.Clone(c.ImportedScenarios)
	r.db.campaigns[c.ID] = stored
	return nil
}

func (r memCampaigns) UpdateMembers(_ context.Context, id string, members []models.Member) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.campaigns[id]
	if !ok {
		return notFound("campaign", id)
	}
	stored.Members = slices.Clone(members)
	r.db.campaigns[id] = stored
	return nil
}

func (r memCampaigns) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.campaigns[id]; !ok {
		return notFound("campaign", id)
	}
	delete(r.db.campaigns, id)
	for sid, s := range r.db.scenarios {
		if s.CampaignID == id {
			delete(r.db.scenarios, sid)
		}
	}
	for nid, n := range r.db.npcs {
		if n.CampaignID == id {
			delete(r.db.npcs, nid)
		}
	}
	for sid, s := range r.db.sessions {
		if s.CampaignID == id {
			delete(r.db.sessions, sid)
		}
	}
	return nil
}

// scenarios

type memScenarios struct{ db *memDB }

func (r memScenarios) Create(_ context.Context, s *models.Scenario) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.campaigns[s.CampaignID]; !ok {
		return notFound("campaign", s.CampaignID)
	}
	s.ID, s.CreatedAt = r.db.next("scn")
	r.db.scenarios[s.ID] = *s
	return nil
}

func (r memScenarios) GetByID(_ context.Context, id string) (*models.Scenario, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.scenarios[id]
	if !ok {
		return nil, notFound("scenario", id)
	}
	return &s, nil
}

func (r memScenarios) ListByCampaign(_ context.Context, campaignID string) ([]models.Scenario, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Scenario{}
	for _, s := range r.db.scenarios {
		if s.CampaignID == campaignID {
			out = append(out, s)
		}
	}
	return newestFirst(out, func(s models.Scenario) time.Time { return s.CreatedAt }), nil
}

func (r memScenarios) ListVisible(_ context.Context, userID, email string) ([]models.Scenario, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Scenario{}
	for _, s := range r.db.scenarios {
		c := r.db.campaigns[s.CampaignID]
		if r.db.visible(c, userID, email) {
			s.CampaignTitle = c.Title
			out = append(out, s)
		}
	}
	return newestFirst(out, func(s models.Scenario) time.Time { return s.CreatedAt }), nil
}

func (r memScenarios) Update(_ context.Context, s *models.Scenario) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.scenarios[s.ID]; !ok {
		return notFound("scenario", s.ID)
	}
	r.db.scenarios[s.ID] = *s
	return nil
}

func (r memScenarios) UpdateContent(_ context.Context, id string, doc content.Document) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.scenarios[id]
	if !ok {
		return notFound("scenario", id)
	}
	s.Content = doc
	r.db.scenarios[id] = s
	return nil
}

func (r memScenarios) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.scenarios[id]; !ok {
		return notFound("scenario", id)
	}
	delete(r.db.scenarios, id)
	for sid, s := range r.db.sessions {
		if s.ScenarioID != nil && *s.ScenarioID == id {
			s.ScenarioID = nil
			r.db.sessions[sid] = s
		}
	}
	return nil
}

// npcs

type memNPCs struct{ db *memDB }

func (r memNPCs) Create(_ context.Context, n *models.NPC) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n.ID, n.CreatedAt = r.db.next("npc")
	r.db.npcs[n.ID] = *n
	return nil
}

func (r memNPCs) GetByID(_ context.Context, id string) (*models.NPC, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n, ok := r.db.npcs[id]
	if !ok {
		return nil, notFound("npc", id)
	}
	n.Traits = slices.Clone(n.Traits)
	return &n, nil
}

func (r memNPCs) ListByCampaign(_ context.Context, campaignID string) ([]models.NPC, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.NPC{}
	for _, n := range r.db.npcs {
		if n.CampaignID == campaignID {
			out = append(out, n)
		}
	}
	return newestFirst(out, func(n models.NPC) time.Time { return n.CreatedAt }), nil
}

func (r memNPCs) Update(_ context.Context, n *models.NPC) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.npcs[n.ID] = *n
	return nil
}

func (r memNPCs) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.npcs, id)
	return nil
}

// sessions

type memSessions struct{ db *memDB }

func (r memSessions) Create(_ context.Context, s *models.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s.ID, s.CreatedAt = r.db.next("ses")
	r.db.sessions[s.ID] = *s
	return nil
}

func (r memSessions) GetByID(_ context.Context, id string) (*models.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sessions[id]
	if !ok {
		return nil, notFound("session", id)
	}
	return &s, nil
}

func (r memSessions) ListByCampaign(_ context.Context, campaignID string) ([]models.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Session{}
	for _, s := range r.db.sessions {
		if s.CampaignID == campaignID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r memSessions) Update(_ context.Context, s *models.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.sessions[s.ID] = *s
	return nil
}

func (r memSessions) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, id)
	return nil
}

// directory

type memDirectory struct{ db *memDB }

func (r memDirectory) ListAllUsers(context.Context) ([]models.DirectoryUser, error) {
	if r.db.usersErr != nil {
		return nil, r.db.usersErr
	}
	return r.db.users, nil
}

func (r memDirectory) ListProfilesWithEmail(context.Context) ([]models.Profile, error) {
	return r.db.profiles, nil
}

func (r memDirectory) UpsertProfile(_ context.Context, p *models.Profile) error {
	r.db.profiles = append(r.db.profiles, *p)
	return nil
}

// passthroughTx runs fn directly; the fake repositories lock internally.
type passthroughTx struct{ calls int }

func (t *passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	t.calls++
	return fn(ctx)
}

// recordingSender records invitations and fails for addresses in failFor.
type recordingSender struct {
	mu      sync.Mutex
	sent    []models.CampaignInvitation
	failFor map[string]bool
}

var errDelivery = errors.New("smtp relay unavailable")

func (s *recordingSender) SendCampaignInvitation(_ context.Context, inv models.CampaignInvitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[inv.Email] {
		return errDelivery
	}
	s.sent = append(s.sent, inv)
	return nil
}

func (s *recordingSender) emails() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	for i, inv := range s.sent {
		out[i] = inv.Email
	}
	return out
}

// fixture wires every service over one memDB.
type fixture struct {
	db         *memDB
	tx         *passthroughTx
	sender     *recordingSender
	campaigns  services.CampaignService
	membership services.MembershipService
	scenarios  services.ScenarioService
	npcs       services.NPCService
	sessions   services.SessionService
	directory  services.DirectoryService
}

func seqIDs() content.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("el-%d", n)
	}
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := newMemDB()
	tx := &passthroughTx{}
	sender := &recordingSender{failFor: map[string]bool{}}

	campaignRepo := memCampaigns{db}
	scenarioRepo := memScenarios{db}
	npcRepo := memNPCs{db}
	authorizer := authz.NewMemberBasedAuthorizer(campaignRepo)

	scenarios := NewScenarioService(scenarioRepo, npcRepo, campaignRepo, authorizer, seqIDs(), logger)
	return &fixture{
		db:         db,
		tx:         tx,
		sender:     sender,
		campaigns:  NewCampaignService(campaignRepo, authorizer, scenarios, sender, logger),
		membership: NewMembershipService(campaignRepo, tx, sender, logger),
		scenarios:  scenarios,
		npcs:       NewNPCService(npcRepo, authorizer, templates.Default(), logger),
		sessions:   NewSessionService(memSessions{db}, scenarioRepo, authorizer, logger),
		directory:  NewDirectoryService(memDirectory{db}, logger),
	}
}

var (
	owner     = models.Actor{UserID: "user-gm", Email: "gm@example.com"}
	player    = models.Actor{UserID: "user-a", Email: "a@b.com"}
	stranger  = models.Actor{UserID: "user-x", Email: "x@example.com"}
	coMaster  = models.Actor{UserID: "user-c", Email: "co@example.com"}
	spectator = models.Actor{UserID: "user-s", Email: "watch@example.com"}
)
