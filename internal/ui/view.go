package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nealmueller/simplifi-worthbar/internal/state"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showDiag {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

func (m Model) renderMain() string {
	s := m.theme.Styles()

	header := s.Header.Render("worthbar") +
		s.Footer.Render("mode: "+m.engine.Mode().Label())

	title := m.titleStyle(s).Render(m.display.Title)
	if m.display.Title == "" {
		title = s.Status.Render("waiting for first poll...")
	}

	status := m.statusLine(s)

	body := s.Box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", status))

	footer := s.Footer.Render(m.footerHelp())

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
	}
	return content
}

func (m Model) renderDiagnostics() string {
	s := m.theme.Styles()

	header := s.Header.Render("worthbar diagnostics")

	var body string
	switch {
	case m.diagBusy:
		body = s.Status.Render("running diagnostics...")
	case m.diagErr != nil:
		body = s.StatusError.Render(fmt.Sprintf("diagnostics failed: %v", m.diagErr))
	default:
		body = strings.TrimRight(m.diagText, "\n")
	}

	footer := "c: Copy | any other key: Back"
	if m.copyNote != "" {
		footer = m.copyNote + " | " + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		s.Box.Render(body),
		s.Footer.Render(footer),
	)
}

// titleStyle picks the title color by poll outcome.
func (m Model) titleStyle(s Styles) lipgloss.Style {
	switch m.display.Phase {
	case state.PhaseSigninRequired:
		return s.TitleSignin
	case state.PhaseError:
		return s.TitleError
	default:
		return s.Title
	}
}

// statusLine renders the one-line status with a fetch indicator and the
// time of the last completed poll.
func (m Model) statusLine(s Styles) string {
	style := s.Status
	switch m.display.Phase {
	case state.PhaseRendered:
		style = s.StatusOK
	case state.PhaseError, state.PhaseSigninRequired:
		style = s.StatusError
	}

	line := m.display.Status
	if line == "" {
		line = "no status yet"
	}
	if m.display.Phase == state.PhaseFetching {
		line += "  (fetching...)"
	}

	out := style.Render(line)
	if !m.display.UpdatedAt.IsZero() {
		out += s.Status.Render("  updated " + m.display.UpdatedAt.Format("15:04:05"))
	}
	return out
}

func (m Model) footerHelp() string {
	parts := make([]string, 0, 8)
	for _, b := range m.keys.helpEntries() {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, " | ")
}
