package monitor

import "github.com/charmbracelet/lipgloss"

var (
	// Base colors
	primaryColor   = lipgloss.Color("212")
	secondaryColor = lipgloss.Color("141")
	mutedColor     = lipgloss.Color("241")
	successColor   = lipgloss.Color("42")
	warningColor   = lipgloss.Color("214")
	errorColor     = lipgloss.Color("196")

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	// Text styles
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtleStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	targetStyle    = lipgloss.NewStyle().Foreground(primaryColor)
	remappedStyle  = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)

	// Fixed-width cell for the mapping sample grid
	sampleCellStyle = lipgloss.NewStyle().Width(12)

	// State badges
	activeBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(successColor).Padding(0, 1)
	pausedBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(warningColor).Padding(0, 1)
	stoppedBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(errorColor).Padding(0, 1)

	// Activity badges
	eventBadges = map[EventKind]lipgloss.Style{
		EventResult:       lipgloss.NewStyle().Foreground(successColor),
		EventShuffle:      lipgloss.NewStyle().Foreground(warningColor),
		EventTimerShuffle: lipgloss.NewStyle().Foreground(errorColor),
		EventCaps:         lipgloss.NewStyle().Foreground(secondaryColor),
		EventPause:        lipgloss.NewStyle().Foreground(mutedColor),
		EventResume:       lipgloss.NewStyle().Foreground(successColor),
	}
)
