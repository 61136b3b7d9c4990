package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/toast/internal/core/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// View renders the page with the toast stack composited on top.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}

	page := lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(m.renderPage(w, h))
	// Keep the help line uncovered.
	return m.toasts.Overlay(page, w, h-1)
}

func (m Model) renderPage(w, h int) string {
	var b strings.Builder

	b.WriteString(styles.PageTitleStyle.Render("toast"))
	if label := m.build.Label(); label != "" {
		b.WriteString(" " + styles.HelpStyle.Render(label))
	}
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(min(w-2, 72)).Render(
		"Notifications raised anywhere in the app land in the store and show up " +
			"in the corner of the screen. Timed ones slide away on their own; " +
			"persistent ones stay until you dismiss them.",
	)
	b.WriteString(styles.PageTextStyle.Render(body))
	b.WriteString("\n\n")

	if m.state == stateComposing {
		b.WriteString(m.renderCompose())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(styles.StatusStyle.Render(m.status))
		b.WriteString("\n")
	}

	content := b.String()
	gap := h - lipgloss.Height(content) - 1
	if gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content + m.renderHelp()
}

func (m Model) renderCompose() string {
	header := "New " + string(m.composeKind) + " toast"
	if m.persistent {
		header += " (persistent)"
	}
	return styles.PromptStyle.Render(header + "\n" + m.input.View())
}

func (m Model) renderHelp() string {
	var bindings []key.Binding
	switch {
	case m.state == stateComposing:
		bindings = m.keys.composeHelp()
	case len(m.toasts.Live()) > 0:
		bindings = append(m.keys.pageHelp(), m.toasts.Help()...)
	default:
		bindings = m.keys.pageHelp()
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.HelpStyle.Render(strings.Join(parts, " • "))
}
