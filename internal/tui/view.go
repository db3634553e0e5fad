package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Reverse(true)

	availableStyle = lipgloss.NewStyle().Faint(true)

	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	taskStyles = map[task.Color]lipgloss.Style{
		task.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		task.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		task.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		task.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		task.ColorPurple: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		task.ColorGrey:   lipgloss.NewStyle().Faint(true),
	}
)

// View renders the day grid.
func (m Model) View() string {
	var b strings.Builder

	cfg := m.store.EffectiveConfig(m.dayKey)
	header := fmt.Sprintf("%s  %s-%s every %dm", m.dayKey, cfg.StartTime, cfg.EndTime, cfg.Interval)
	if m.store.HasOverride(m.dayKey) {
		header += "  (override)"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	for i, row := range m.rows {
		line := m.renderRow(row)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case ModeInsert:
		b.WriteString(promptStyle.Render("New task: " + m.nameInput.View()))
	case ModeConfirmDelete:
		b.WriteString(promptStyle.Render(fmt.Sprintf("Delete %q %s-%s? (y/n)",
			m.pendingDelete.Name, m.pendingDelete.StartTime, m.pendingDelete.EndTime)))
	case ModeConfirmOverride:
		b.WriteString(promptStyle.Render(m.renderConflicts()))
	default:
		b.WriteString(statusStyle.Render(m.footer()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRow(row grid.Row) string {
	if row.Available() {
		return fmt.Sprintf("%s  %s", row.Time, availableStyle.Render("·"))
	}

	label := row.Task.Name
	if row.RowSpan > 1 {
		label = fmt.Sprintf("%s (%dm)", label, row.Task.Duration)
	}
	style, ok := taskStyles[row.Task.Color]
	if !ok {
		return fmt.Sprintf("%s  %s", row.Time, label)
	}
	return fmt.Sprintf("%s  %s", row.Time, style.Render(label))
}

func (m Model) footer() string {
	if m.status != "" {
		return m.status
	}
	return "h/l day  j/k move  a add  d delete  b breaks  t today  q quit"
}

func (m Model) renderConflicts() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q overlaps:\n", m.pendingAdd.Name)
	for _, c := range m.conflicts {
		fmt.Fprintf(&b, "  %s-%s %s\n", c.StartTime, c.EndTime, c.Name)
	}
	b.WriteString("Replace? (y/n)")
	return b.String()
}
