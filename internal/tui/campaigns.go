package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rpgmanager/internal/client"
	"rpgmanager/internal/store"
)

type openCampaignMsg struct {
	id string
}

type campaignsModel struct {
	store   *client.CampaignStore
	cursor  int
	confirm string // id awaiting a second "d"
	width   int
	height  int
}

func newCampaignsModel(s *client.CampaignStore) campaignsModel {
	return campaignsModel{store: s}
}

func (m campaignsModel) Init() tea.Cmd {
	return m.load()
}

func (m campaignsModel) load() tea.Cmd {
	s := m.store
	return run(store.OpFetch, func(ctx context.Context) error { return s.FetchAll(ctx, "") })
}

func (m campaignsModel) Update(msg tea.Msg) (campaignsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case storeChangedMsg, opDoneMsg:
		m.cursor = clampCursor(m.cursor, len(m.store.Items()))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m campaignsModel) handleKey(msg tea.KeyMsg) (campaignsModel, tea.Cmd) {
	items := m.store.Items()
	key := msg.String()
	if key != "d" {
		m.confirm = ""
	}
	switch key {
	case "j", "down":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		return m, m.load()
	case "enter":
		if m.cursor < len(items) {
			c := items[m.cursor]
			m.store.SetCurrent(&c)
			return m, func() tea.Msg { return openCampaignMsg{id: c.ID} }
		}
	case "d":
		if m.cursor >= len(items) {
			return m, nil
		}
		id := items[m.cursor].ID
		if m.confirm != id {
			m.confirm = id
			return m, nil
		}
		m.confirm = ""
		s := m.store
		return m, run(store.OpDelete, func(ctx context.Context) error { return s.Delete(ctx, id) })
	}
	return m, nil
}

func (m campaignsModel) View() string {
	var b strings.Builder
	items := m.store.Items()

	b.WriteString(statusLines(m.store.Status))
	if len(items) == 0 {
		if !m.store.Status(store.OpFetch).Loading {
			b.WriteString(" " + dimStyle.Render("no campaigns yet") + "\n")
		}
		return b.String()
	}

	for i, c := range items {
		cursor := " "
		title := normalStyle.Render(truncStr(c.Title, 32))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			title = selectedStyle.Render(truncStr(c.Title, 32))
		}
		meta := metaStyle.Render(fmt.Sprintf("%d members · %s", len(c.Members), c.CreatedAt.Format("2006-01-02")))
		row := fmt.Sprintf(" %s %s  %s", cursor, title, meta)
		if m.confirm == c.ID {
			row += "  " + warnStyle.Render("press d again to delete")
		}
		b.WriteString(row + "\n")
		if i == m.cursor && c.Description != "" {
			width := m.width - 6
			if width < 20 {
				width = 60
			}
			b.WriteString("     " + dimStyle.Render(truncStr(oneLine(c.Description), width)) + "\n")
		}
	}
	return b.String()
}

func (m campaignsModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("d", "delete") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
}
