package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/chaoskb/internal/output"
	"github.com/marcus/chaoskb/internal/remap"
	"github.com/marcus/chaoskb/internal/scheduler"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	sampleColumns = 5
)

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	width := m.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := m.Height
	if height <= 0 {
		height = defaultHeight
	}

	header := m.renderHeader(width)
	footer := helpStyle.Render(ansi.Truncate(m.Keymap.FooterHints(), width, "…"))
	prompt := m.Input.View()

	if m.ShowHelp {
		body := panelStyle.Width(width - 2).Render(m.Keymap.GenerateHelp())
		return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	}

	mapping := m.renderMapping(width)
	used := lipgloss.Height(header) + lipgloss.Height(mapping) + lipgloss.Height(prompt) + lipgloss.Height(footer) + 3
	activity := m.renderActivity(width, max(height-used, 1))

	return lipgloss.JoinVertical(lipgloss.Left, header, mapping, activity, prompt, footer)
}

func (m Model) renderHeader(width int) string {
	parts := []string{titleStyle.Render("Chaotic Keyboard Remapper")}
	if m.Version != "" {
		parts = append(parts, subtleStyle.Render(m.Version))
	}
	parts = append(parts, stateBadge(m.Scheduler.State()))
	parts = append(parts, "Caps: "+output.CapsStatus(m.Engine.CapsInverted()))
	parts = append(parts, m.countdownText())
	parts = append(parts, subtleStyle.Render(fmt.Sprintf("timer shuffles: %d", m.Scheduler.Shuffles())))
	return ansi.Truncate(strings.Join(parts, "  "), width, "…")
}

func (m Model) countdownText() string {
	switch m.Scheduler.State() {
	case scheduler.Active:
		return fmt.Sprintf("Next shuffle in %s", m.Scheduler.Remaining().Round(time.Second))
	case scheduler.Paused:
		return "Countdown paused"
	}
	return ""
}

func stateBadge(s scheduler.State) string {
	switch s {
	case scheduler.Active:
		return activeBadge.Render("ACTIVE")
	case scheduler.Paused:
		return pausedBadge.Render("PAUSED")
	case scheduler.Stopped:
		return stoppedBadge.Render("STOPPED")
	}
	return subtleStyle.Render("IDLE")
}

func (m Model) renderMapping(width int) string {
	mapping := m.Engine.Mapping()
	sample, rest := mapping.Sample(m.SampleSize)

	var rows []string
	var row []string
	for i, e := range sample {
		row = append(row, sampleCellStyle.Render(formatEntry(e)))
		if (i+1)%sampleColumns == 0 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	if rest > 0 {
		rows = append(rows, subtleStyle.Render(fmt.Sprintf("... and %d more mappings", rest)))
	}
	if len(rows) == 0 {
		rows = append(rows, subtleStyle.Render("no mapping installed"))
	}

	title := panelTitleStyle.Render(fmt.Sprintf("Mapping (%d keys)", mapping.Len()))
	return panelStyle.Width(width - 2).Render(title + "\n" + strings.Join(rows, "\n"))
}

func formatEntry(e remap.Entry) string {
	return keyStyle.Render(e.From.Label()) + " → " + targetStyle.Render(e.To.Label())
}

func (m Model) renderActivity(width, height int) string {
	events := m.Events()
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, formatEvent(e))
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width-4, "…")
	}
	if len(lines) == 0 {
		lines = append(lines, subtleStyle.Render("Watch how your input gets chaotically remapped!"))
	}

	title := panelTitleStyle.Render("Activity")
	return panelStyle.Width(width - 2).Render(title + "\n" + strings.Join(lines, "\n"))
}

func formatEvent(e Event) string {
	ts := timestampStyle.Render(e.At.Format("15:04:05"))
	badge := eventBadges[e.Kind].Render(fmt.Sprintf("%-7s", e.Kind))
	if e.Kind == EventResult {
		return fmt.Sprintf("%s %s %s → %s  (%s)", ts, badge, e.Result.Original,
			remappedStyle.Render(e.Result.Remapped), output.FormatChaosLevel(e.Result))
	}
	return fmt.Sprintf("%s %s %s", ts, badge, e.Text)
}
