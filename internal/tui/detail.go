package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rpgmanager/internal/store"
)

type closeDetailMsg struct{}

type tab int

const (
	tabScenarios tab = iota
	tabNPCs
	tabSessions
)

var tabNames = []string{"Scenarios", "NPCs", "Sessions"}

// row is one line of the active tab.
type row struct {
	id    string
	title string
	meta  string
}

type detailModel struct {
	stores     Stores
	campaignID string
	tab        tab
	cursor     int
	confirm    string
	width      int
	height     int
}

func newDetailModel(s Stores) detailModel {
	return detailModel{stores: s}
}

// open switches to campaign id and loads its children.
func (m detailModel) open(id string) (detailModel, tea.Cmd) {
	m.campaignID = id
	m.cursor = 0
	m.confirm = ""
	return m, m.load()
}

func (m detailModel) load() tea.Cmd {
	s, id := m.stores, m.campaignID
	return tea.Batch(
		run(store.OpFetch, func(ctx context.Context) error { return s.Scenarios.FetchAll(ctx, id) }),
		run(store.OpFetch, func(ctx context.Context) error { return s.NPCs.FetchAll(ctx, id) }),
		run(store.OpFetch, func(ctx context.Context) error { return s.Sessions.FetchAll(ctx, id) }),
	)
}

func (m detailModel) rows() []row {
	var rows []row
	switch m.tab {
	case tabScenarios:
		for _, s := range m.stores.Scenarios.Items() {
			rows = append(rows, row{id: s.ID, title: s.Title, meta: fmt.Sprintf("%d sections · %d choices", len(s.Content.Sections), len(s.Content.Choices))})
		}
	case tabNPCs:
		for _, n := range m.stores.NPCs.Items() {
			rows = append(rows, row{id: n.ID, title: n.Name, meta: fmt.Sprintf("%d traits", len(n.Traits))})
		}
	case tabSessions:
		for _, s := range m.stores.Sessions.Items() {
			meta := s.Date
			if s.ScenarioID != nil {
				if sc, ok := m.stores.Scenarios.Find(*s.ScenarioID); ok {
					meta += " · " + sc.Title
				}
			}
			rows = append(rows, row{id: s.ID, title: s.Title, meta: meta})
		}
	}
	return rows
}

func (m detailModel) status(op store.Op) store.Status {
	switch m.tab {
	case tabNPCs:
		return m.stores.NPCs.Status(op)
	case tabSessions:
		return m.stores.Sessions.Status(op)
	default:
		return m.stores.Scenarios.Status(op)
	}
}

func (m detailModel) deleteCmd(id string) tea.Cmd {
	s := m.stores
	switch m.tab {
	case tabNPCs:
		return run(store.OpDelete, func(ctx context.Context) error { return s.NPCs.Delete(ctx, id) })
	case tabSessions:
		return run(store.OpDelete, func(ctx context.Context) error { return s.Sessions.Delete(ctx, id) })
	default:
		return run(store.OpDelete, func(ctx context.Context) error { return s.Scenarios.Delete(ctx, id) })
	}
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case storeChangedMsg, opDoneMsg:
		m.cursor = clampCursor(m.cursor, len(m.rows()))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	rows := m.rows()
	key := msg.String()
	if key != "d" {
		m.confirm = ""
	}
	switch key {
	case "esc", "backspace":
		return m, func() tea.Msg { return closeDetailMsg{} }
	case "1", "2", "3":
		m.tab = tab(key[0] - '1')
		m.cursor = 0
	case "tab":
		m.tab = (m.tab + 1) % tab(len(tabNames))
		m.cursor = 0
	case "j", "down":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		return m, m.load()
	case "d":
		if m.cursor >= len(rows) {
			return m, nil
		}
		id := rows[m.cursor].id
		if m.confirm != id {
			m.confirm = id
			return m, nil
		}
		m.confirm = ""
		return m, m.deleteCmd(id)
	}
	return m, nil
}

func (m detailModel) View() string {
	var b strings.Builder

	if c, ok := m.stores.Campaigns.Current(); ok && len(c.Members) > 0 {
		parts := make([]string, 0, len(c.Members))
		for _, mem := range c.Members {
			label := mem.Email
			if mem.Status != "active" {
				label += " (" + string(mem.Status) + ")"
			}
			parts = append(parts, roleStyle(string(mem.Role)).Render(label))
		}
		b.WriteString(" " + strings.Join(parts, dimStyle.Render(" · ")) + "\n\n")
	}

	for i, name := range tabNames {
		key := fmt.Sprintf("%d", i+1)
		if tab(i) == m.tab {
			b.WriteString(" " + accentStyle.Render(key) + " " + selectedStyle.Underline(true).Render(name) + "  ")
		} else {
			b.WriteString(" " + metaStyle.Render(key) + " " + dimStyle.Render(name) + "  ")
		}
	}
	b.WriteString("\n\n")

	b.WriteString(statusLines(m.status))
	rows := m.rows()
	if len(rows) == 0 {
		if !m.status(store.OpFetch).Loading {
			b.WriteString(" " + dimStyle.Render("nothing here yet") + "\n")
		}
		return b.String()
	}

	for i, r := range rows {
		cursor := " "
		title := normalStyle.Render(truncStr(r.title, 40))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			title = selectedStyle.Render(truncStr(r.title, 40))
		}
		line := fmt.Sprintf(" %s %s  %s", cursor, title, metaStyle.Render(r.meta))
		if m.confirm == r.id {
			line += "  " + warnStyle.Render("press d again to delete")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m detailModel) helpKeys() string {
	return helpEntry("1-3", "tab") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("d", "delete") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("esc", "back") + "  " + helpEntry("q", "quit")
}
