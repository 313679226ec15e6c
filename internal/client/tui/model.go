// Package tui is the full-screen console dashboard. It shows the entry
// statistics and list, opens an entry in a detail pane, and deletes entries
// after confirmation. All data goes through the store.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/kbadmin/internal/client/models"
	"github.com/dmitrijs2005/kbadmin/internal/client/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57"))

	certifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trainingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true).
			PaddingLeft(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			PaddingLeft(1)
)

// stateMsg carries a store snapshot taken after an operation settled.
type stateMsg struct {
	state store.State
	stats store.Stats
}

type Model struct {
	ctx   context.Context
	store *store.Store
	api   string

	state  store.State
	stats  store.Stats
	cursor int
	detail bool

	// confirmID is the entry awaiting delete confirmation.
	confirmID string

	width  int
	height int
}

// New returns a dashboard bound to st. api is only displayed.
func New(ctx context.Context, st *store.Store, api string) Model {
	return Model{
		ctx:   ctx,
		store: st,
		api:   api,
		state: st.State(),
		stats: st.Stats(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchAll()
}

// Snapshot wraps st as a message the dashboard renders. Feed it from
// store.Subscribe through tea.Program.Send.
func Snapshot(st store.State) tea.Msg {
	return stateMsg{state: st, stats: store.StatsOf(st.Entries)}
}

func (m Model) snapshot() tea.Msg {
	return Snapshot(m.store.State())
}

// clear runs a local store transition off the update loop, so subscribers
// that send into the program cannot block it.
func (m Model) clear(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return m.snapshot()
	}
}

func (m Model) fetchAll() tea.Cmd {
	return func() tea.Msg {
		_, _ = m.store.FetchAll(m.ctx)
		return m.snapshot()
	}
}

func (m Model) fetchOne(id string) tea.Cmd {
	return func() tea.Msg {
		_, _ = m.store.FetchOne(m.ctx, id)
		return m.snapshot()
	}
}

func (m Model) deleteEntry(id string) tea.Cmd {
	return func() tea.Msg {
		_ = m.store.Delete(m.ctx, id)
		return m.snapshot()
	}
}

// current returns the entry under the cursor.
func (m Model) current() (models.KnowledgeEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Entries) {
		return models.KnowledgeEntry{}, false
	}
	return m.state.Entries[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		m.state = msg.state
		m.stats = msg.stats
		if m.cursor >= len(m.state.Entries) {
			m.cursor = max(len(m.state.Entries)-1, 0)
		}
		if m.state.SelectedEntry == nil {
			m.detail = false
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirmID != "" {
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	m.confirmID = ""
	switch msg.String() {
	case "y", "Y":
		m.state.DeleteLoading = true
		return m, m.deleteEntry(id)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Entries)-1 {
			m.cursor++
		}
	case "r":
		m.state.Loading = true
		m.state.Error = ""
		return m, m.fetchAll()
	case "enter":
		if e, ok := m.current(); ok {
			m.detail = true
			m.state.Loading = true
			return m, m.fetchOne(e.ID)
		}
	case "esc":
		if m.detail {
			m.detail = false
			return m, m.clear(m.store.ClearSelected)
		}
	case "d":
		if m.state.DeleteLoading {
			return m, nil
		}
		if m.detail && m.state.SelectedEntry != nil {
			m.confirmID = m.state.SelectedEntry.ID
		} else if e, ok := m.current(); ok {
			m.confirmID = e.ID
		}
	case "c":
		return m, m.clear(m.store.ClearErrors)
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading…"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("  Knowledge Base Dashboard  "))
	sb.WriteString("\n")
	sb.WriteString(m.renderStats())
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")

	switch {
	case m.state.Error != "":
		sb.WriteString(errorStyle.Render("Error: " + m.state.Error))
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render(" press r to retry, c to dismiss"))
	case m.detail && m.state.SelectedEntry != nil:
		sb.WriteString(renderDetail(*m.state.SelectedEntry))
	default:
		sb.WriteString(m.renderList())
	}
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())
	return sb.String()
}

func (m Model) renderStats() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statStyle.Render(fmt.Sprintf("Total: %d", m.stats.Total)),
		statStyle.Render(certifiedStyle.Render(fmt.Sprintf("Certified: %d", m.stats.Certified))),
		statStyle.Render(trainingStyle.Render(fmt.Sprintf("Training: %d", m.stats.Training))),
	)
}

func (m Model) renderList() string {
	if len(m.state.Entries) == 0 {
		if m.state.Loading {
			return dimStyle.Render(" loading entries…")
		}
		return dimStyle.Render(" no entries yet")
	}

	const row = "%-15s %-30s %-14s %-10s %-18s %-12s %s"
	var sb strings.Builder
	sb.WriteString(headerCellStyle.Render(fmt.Sprintf(" "+row, "ID", "TITLE", "CATEGORY", "STATUS", "TECHNICIAN", "PROD TIME", "CREATED")))
	sb.WriteString("\n")

	first, last := m.visibleRange()
	for i := first; i < last; i++ {
		e := m.state.Entries[i]
		line := fmt.Sprintf(" "+row, e.ID, clip(e.Title, 30), clip(e.Category, 14), e.Status, clip(e.TechName, 18), e.ProdTime, e.CreatedAt)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		} else if e.Status == models.StatusCertified {
			line = certifiedStyle.Render(line)
		}
		sb.WriteString(line)
		if i < last-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// visibleRange keeps the cursor on screen.
func (m Model) visibleRange() (int, int) {
	rows := m.height - 7
	if rows < 1 {
		rows = 1
	}
	n := len(m.state.Entries)
	if n <= rows {
		return 0, n
	}
	first := m.cursor - rows + 1
	if first < 0 {
		first = 0
	}
	return first, min(first+rows, n)
}

func renderDetail(e models.KnowledgeEntry) string {
	fields := []struct{ k, v string }{
		{"ID", e.ID},
		{"Title", e.Title},
		{"Description", e.Description},
		{"Category", e.Category},
		{"Status", string(e.Status)},
		{"Technician", e.TechName},
		{"Production time", e.ProdTime},
		{"Created", e.CreatedAt},
		{"Views", fmt.Sprint(e.Views)},
	}
	var sb strings.Builder
	for i, f := range fields {
		sb.WriteString(headerCellStyle.Render(fmt.Sprintf(" %-16s", f.k)))
		sb.WriteString(f.v)
		if i < len(fields)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m Model) renderStatus() string {
	if m.confirmID != "" {
		return promptStyle.Render(fmt.Sprintf("Delete entry %s? [y/N]", m.confirmID))
	}

	if m.state.DeleteError != "" {
		return errorStyle.Render("Error: " + m.state.DeleteError + "  (c: dismiss)")
	}

	parts := []string{"api: " + m.api}
	switch {
	case m.state.DeleteLoading:
		parts = append(parts, "deleting…")
	case m.state.Loading:
		parts = append(parts, "refreshing…")
	}
	if m.detail {
		parts = append(parts, "esc: back  d: delete  q: quit")
	} else {
		parts = append(parts, "↑/↓: move  enter: open  d: delete  r: refresh  q: quit")
	}
	return statusBarStyle.Render(strings.Join(parts, "  |  "))
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
