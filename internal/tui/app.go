// Package tui is the terminal front end: a campaign list and a campaign
// detail view with scenario, NPC and session tabs, all drawn from the
// client-side stores.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rpgmanager/internal/client"
)

type view int

const (
	viewCampaigns view = iota
	viewDetail
)

// Stores are the collections the UI renders.
type Stores struct {
	Campaigns *client.CampaignStore
	Scenarios *client.ScenarioStore
	NPCs      *client.NPCStore
	Sessions  *client.SessionStore
}

// Subscribe calls fn after any store changes. The returned func unsubscribes.
func (s Stores) Subscribe(fn func()) func() {
	cancels := []func(){
		s.Campaigns.Subscribe(fn),
		s.Scenarios.Subscribe(fn),
		s.NPCs.Subscribe(fn),
		s.Sessions.Subscribe(fn),
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

// App is the root Bubbletea model.
type App struct {
	stores    Stores
	view      view
	campaigns campaignsModel
	detail    detailModel
	width     int
	height    int
}

// NewApp creates a new TUI application.
func NewApp(stores Stores) App {
	return App{
		stores:    stores,
		campaigns: newCampaignsModel(stores.Campaigns),
		detail:    newDetailModel(stores),
	}
}

func (a App) Init() tea.Cmd {
	return a.campaigns.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + help(1)
		body := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
		a.campaigns, _ = a.campaigns.Update(body)
		a.detail, _ = a.detail.Update(body)
		return a, nil

	case openCampaignMsg:
		a.view = viewDetail
		var cmd tea.Cmd
		a.detail, cmd = a.detail.open(msg.id)
		return a, cmd

	case closeDetailMsg:
		a.view = viewCampaigns
		a.stores.Campaigns.SetCurrent(nil)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewCampaigns:
		a.campaigns, cmd = a.campaigns.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("RPG MANAGER"))
	if c, ok := a.stores.Campaigns.Current(); ok && a.view == viewDetail {
		b.WriteString(dimStyle.Render("  /  ") + selectedStyle.Render(c.Title))
	}
	b.WriteString("\n\n")

	switch a.view {
	case viewCampaigns:
		b.WriteString(a.campaigns.View())
		b.WriteString("\n " + a.campaigns.helpKeys())
	case viewDetail:
		b.WriteString(a.detail.View())
		b.WriteString("\n " + a.detail.helpKeys())
	}
	return b.String()
}

// Run starts the program in the alternate screen and redraws whenever a
// store changes. Store listeners fire while an Update may be running, so the
// send happens on its own goroutine.
func Run(stores Stores) error {
	p := tea.NewProgram(NewApp(stores), tea.WithAltScreen())
	unsubscribe := stores.Subscribe(func() {
		go p.Send(storeChangedMsg{})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
