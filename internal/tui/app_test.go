package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpgmanager/internal/client"
	"rpgmanager/internal/domain/models"
	"rpgmanager/internal/domain/services"
	"rpgmanager/internal/store"
)

type memBackend[T store.Entity, C any] struct {
	rows      map[string][]T
	deleteErr error
	deleted   []string
}

func (b *memBackend[T, C]) List(_ context.Context, scope string) ([]T, error) {
	return append([]T(nil), b.rows[scope]...), nil
}

func (b *memBackend[T, C]) Create(context.Context, C) (T, error) {
	var zero T
	return zero, errors.New("not supported")
}

func (b *memBackend[T, C]) Update(context.Context, string, client.Patch) (T, error) {
	var zero T
	return zero, errors.New("not supported")
}

func (b *memBackend[T, C]) Delete(_ context.Context, id string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.deleted = append(b.deleted, id)
	return nil
}

type testEnv struct {
	app       App
	campaigns *memBackend[models.Campaign, services.CreateCampaignRequest]
	scenarios *memBackend[models.Scenario, services.CreateScenarioRequest]
	sessions  *memBackend[models.Session, services.CreateSessionRequest]
}

func newTestEnv() *testEnv {
	scenarioID := "s1"
	env := &testEnv{
		campaigns: &memBackend[models.Campaign, services.CreateCampaignRequest]{rows: map[string][]models.Campaign{
			"": {
				{ID: "c1", Title: "Lost Mines", Description: "Phandelver", CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
					Members: []models.Member{{Email: "a@b.com", Role: models.RolePlayer, Status: models.StatusInvited}}},
				{ID: "c2", Title: "Curse of Strahd"},
			},
		}},
		scenarios: &memBackend[models.Scenario, services.CreateScenarioRequest]{rows: map[string][]models.Scenario{
			"c1": {{ID: "s1", Title: "Goblin Arrows"}},
		}},
		sessions: &memBackend[models.Session, services.CreateSessionRequest]{rows: map[string][]models.Session{
			"c1": {{ID: "ss1", Title: "Session one", Date: "2024-05-03", ScenarioID: &scenarioID}},
		}},
	}
	npcs := &memBackend[models.NPC, services.CreateNPCRequest]{rows: map[string][]models.NPC{}}

	env.app = NewApp(Stores{
		Campaigns: store.New[models.Campaign, services.CreateCampaignRequest, client.Patch](env.campaigns),
		Scenarios: store.New[models.Scenario, services.CreateScenarioRequest, client.Patch](env.scenarios),
		NPCs:      store.New[models.NPC, services.CreateNPCRequest, client.Patch](npcs),
		Sessions:  store.New[models.Session, services.CreateSessionRequest, client.Patch](env.sessions),
	})
	env.app.width = 100
	env.app.height = 30
	return env
}

// drain runs cmd and feeds every resulting message back into the app.
func (e *testEnv) drain(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			e.drain(t, c)
		}
		return
	}
	if _, ok := msg.(tea.QuitMsg); ok {
		return
	}
	model, next := e.app.Update(msg)
	e.app = model.(App)
	e.drain(t, next)
}

func (e *testEnv) press(t *testing.T, key string) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	model, cmd := e.app.Update(msg)
	e.app = model.(App)
	e.drain(t, cmd)
}

func TestAppListsCampaigns(t *testing.T) {
	env := newTestEnv()
	env.drain(t, env.app.Init())

	view := env.app.View()
	assert.Contains(t, view, "Lost Mines")
	assert.Contains(t, view, "Curse of Strahd")
	assert.Contains(t, view, "Phandelver")
}

func TestAppOpensDetailAndSwitchesTabs(t *testing.T) {
	env := newTestEnv()
	env.drain(t, env.app.Init())

	env.press(t, "enter")
	require.Equal(t, viewDetail, env.app.view)
	cur, ok := env.app.stores.Campaigns.Current()
	require.True(t, ok)
	assert.Equal(t, "c1", cur.ID)

	view := env.app.View()
	assert.Contains(t, view, "Goblin Arrows")
	assert.Contains(t, view, "a@b.com (invited)")

	env.press(t, "2")
	assert.Contains(t, env.app.View(), "nothing here yet")

	env.press(t, "3")
	view = env.app.View()
	assert.Contains(t, view, "Session one")
	assert.Contains(t, view, "2024-05-03 · Goblin Arrows")

	env.press(t, "esc")
	assert.Equal(t, viewCampaigns, env.app.view)
	_, ok = env.app.stores.Campaigns.Current()
	assert.False(t, ok)
}

func TestAppDeleteNeedsConfirmation(t *testing.T) {
	env := newTestEnv()
	env.drain(t, env.app.Init())

	env.press(t, "j")
	env.press(t, "d")
	assert.Contains(t, env.app.View(), "press d again to delete")
	assert.Empty(t, env.campaigns.deleted)

	env.press(t, "d")
	assert.Equal(t, []string{"c2"}, env.campaigns.deleted)
	view := env.app.View()
	assert.NotContains(t, view, "Curse of Strahd")
	assert.Equal(t, 0, env.app.campaigns.cursor)
}

func TestAppShowsPerOperationErrors(t *testing.T) {
	env := newTestEnv()
	env.drain(t, env.app.Init())
	env.campaigns.deleteErr = errors.New("HTTP 403: only the owner can manage campaign c1")

	env.press(t, "d")
	env.press(t, "d")

	view := env.app.View()
	assert.Contains(t, view, "delete failed: HTTP 403")
	assert.Contains(t, view, "Lost Mines")
	assert.False(t, strings.Contains(view, "load failed"))
}
