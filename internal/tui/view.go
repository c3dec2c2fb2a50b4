package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.notice != "" {
		return overlay(m.width, m.height,
			noticeStyle.Render(m.notice)+"\n\n"+labelStyle.Render("Press any key to continue"), 0)
	}

	if m.confirmDeleteID != "" {
		name := m.confirmDeleteID
		if c, ok := m.current(); ok && c.ID == m.confirmDeleteID {
			name = c.Name
		}
		return overlay(m.width, m.height, fmt.Sprintf("Delete contact '%s'? (y/n)", name), 50)
	}

	if m.editor != nil {
		return overlay(m.width, m.height,
			m.editor.view()+labelStyle.Render(m.help.View(m.fieldKeys)), 60)
	}

	if m.formVisible {
		return overlay(m.width, m.height,
			"Create User\n\n"+m.form.view()+labelStyle.Render(m.help.View(m.fieldKeys)), 60)
	}

	listWidth := m.width / 3
	detailWidth := m.width - listWidth - 3
	paneHeight := m.height - 3

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(listWidth).Height(paneHeight).Render(m.renderList(listWidth, paneHeight)),
		borderStyle.Width(detailWidth).Height(paneHeight).Render(m.renderDetail(detailWidth)),
	)

	footer := " " + m.help.View(m.listKeys)
	if m.status != "" {
		footer = " " + statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}

// renderList renders the contact list pane
func (m Model) renderList(width, height int) string {
	var lines []string

	if m.searchMode {
		lines = append(lines, m.searchInput.View(), "")
		height -= 2
	}

	if m.loading {
		lines = append(lines, "Loading....")
		if m.loadFailed {
			lines = append(lines, labelStyle.Render("Could not reach the contact service; see the log."))
		}
		return strings.Join(lines, "\n")
	}

	header := fmt.Sprintf("Contacts (%d)", len(m.displayed))
	if m.searchQuery != "" {
		header += " [search:" + m.searchQuery + "]"
	}
	lines = append(lines, header, strings.Repeat("─", max(width-2, 0)))

	if len(m.displayed) == 0 {
		lines = append(lines, "No data available")
		return strings.Join(lines, "\n")
	}

	visibleHeight := height - 2
	startIdx := 0
	if visibleHeight > 0 && m.selected >= visibleHeight {
		startIdx = m.selected - visibleHeight + 1
	}

	for i := startIdx; i < len(m.displayed) && i < startIdx+visibleHeight; i++ {
		line := "  " + m.displayed[i].Name
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderDetail renders the selected contact
func (m Model) renderDetail(width int) string {
	c, ok := m.current()
	if !ok {
		return "No contact selected"
	}

	lines := []string{
		c.Name,
		strings.Repeat("─", max(width-2, 0)),
		"",
		fmt.Sprintf("Email: %s", c.Email),
		fmt.Sprintf("Phone: %s", c.Phone),
		"",
		labelStyle.Render("ID: " + c.ID),
	}
	return strings.Join(lines, "\n")
}
