package tui

import (
	"context"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"rpgmanager/internal/store"
)

// storeChangedMsg asks the view to re-read store state. The program sends it
// from store listeners.
type storeChangedMsg struct{}

// opDoneMsg reports the end of a store call started by the UI.
type opDoneMsg struct {
	op  store.Op
	err error
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// oneLine collapses whitespace so descriptions fit a list row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var opLabels = map[store.Op]string{
	store.OpFetch:  "loading",
	store.OpCreate: "creating",
	store.OpUpdate: "saving",
	store.OpDelete: "deleting",
}

// statusLines renders the loading and error slot of each op that has one.
func statusLines(status func(store.Op) store.Status) string {
	var b strings.Builder
	for _, op := range []store.Op{store.OpFetch, store.OpCreate, store.OpUpdate, store.OpDelete} {
		st := status(op)
		switch {
		case st.Loading:
			b.WriteString(" " + dimStyle.Render(opLabels[op]+"...") + "\n")
		case st.Err != "":
			b.WriteString(" " + errorStyle.Render(string(op)+" failed: "+st.Err) + "\n")
		}
	}
	return b.String()
}

func run(op store.Op, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(context.Background())}
	}
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
