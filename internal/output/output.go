// Package output provides styled terminal output for the remapper (banners,
// shuffle notices, mapping samples, remap results) using lipgloss.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/chaoskb/internal/remap"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	targetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	chaosStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true)
)

// DefaultSampleSize is how many mapping entries a sample shows.
const DefaultSampleSize = 15

var (
	msgMu sync.Mutex
	msgW  io.Writer = os.Stdout
)

// SetOutput redirects Success, Error, Warning and Info to w. A nil w
// restores stdout.
func SetOutput(w io.Writer) {
	msgMu.Lock()
	defer msgMu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	msgW = w
}

func writeLine(s string) {
	msgMu.Lock()
	defer msgMu.Unlock()
	fmt.Fprintln(msgW, s)
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	writeLine(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	writeLine(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	writeLine(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	writeLine(fmt.Sprintf(format, args...))
}

// FormatEntry formats one mapping entry as "from → to".
func FormatEntry(e remap.Entry) string {
	return fmt.Sprintf("%s → %s", keyStyle.Render(e.From.Label()), targetStyle.Render(e.To.Label()))
}

// FormatSample formats the first n entries of m, one per line, followed by a
// count of the entries left out.
func FormatSample(m *remap.Mapping, n int) string {
	sample, rest := m.Sample(n)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Sample Key Mappings:"))
	sb.WriteString("\n")
	for _, e := range sample {
		sb.WriteString("  " + FormatEntry(e) + "\n")
	}
	if rest > 0 {
		sb.WriteString(subtleStyle.Render(fmt.Sprintf("  ... and %d more mappings", rest)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatChaosLevel formats "affected/total keys affected".
func FormatChaosLevel(res remap.Result) string {
	return fmt.Sprintf("%d/%d keys affected", res.Affected, res.Total)
}

// FormatResult formats the original and remapped line plus the chaos level.
func FormatResult(res remap.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Original:  %s\n", res.Original))
	sb.WriteString(fmt.Sprintf("Remapped:  %s\n", chaosStyle.Render(res.Remapped)))
	sb.WriteString(fmt.Sprintf("Chaos Level: %s\n", FormatChaosLevel(res)))
	return sb.String()
}

// CapsStatus is the label shown for the caps-lock key. Inversion means the
// key reads OFF while output is upper case.
func CapsStatus(inverted bool) string {
	if inverted {
		return "OFF"
	}
	return "ON"
}

// FormatCountdown returns the countdown notice, or "" when remaining is
// further out than within.
func FormatCountdown(remaining, within time.Duration) string {
	if remaining <= 0 || remaining > within {
		return ""
	}
	return fmt.Sprintf("Next shuffle in %s", remaining.Round(time.Second))
}

// Printer writes remapper events to a terminal. It is safe for concurrent
// use; the scheduler goroutine and the prompt share one Printer.
type Printer struct {
	mu         sync.Mutex
	w          io.Writer
	sampleSize int
	warnWithin time.Duration
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, sampleSize int, warnWithin time.Duration) *Printer {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &Printer{w: w, sampleSize: sampleSize, warnWithin: warnWithin}
}

func (p *Printer) print(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.w, s)
}

// Banner prints the startup banner and warnings.
func (p *Printer) Banner() {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Chaotic Keyboard Remapper - System Level Demo") + "\n")
	sb.WriteString(warningStyle.Render("WARNING: a real build would remap ALL keyboard input system-wide!") + "\n")
	sb.WriteString(subtleStyle.Render("This demo only shows the remapping logic.") + "\n\n")
	p.print(sb.String())
}

// Instructions prints the prompt usage text.
func (p *Printer) Instructions() {
	var sb strings.Builder
	sb.WriteString("\n" + titleStyle.Render("TYPING SIMULATION DEMO") + "\n")
	sb.WriteString("Type 'quit' to exit, 'shuffle' to force reshuffle, 'caps' to toggle caps lock\n")
	sb.WriteString("Watch how your input gets chaotically remapped!\n\n")
	p.print(sb.String())
}

// Prompt prints the input prompt.
func (p *Printer) Prompt() {
	p.print("Type something: ")
}

// Shuffled reports a newly installed mapping.
func (p *Printer) Shuffled(m *remap.Mapping) {
	var sb strings.Builder
	sb.WriteString("\n" + warningStyle.Render("SHUFFLING KEYS (no warning given to user!)") + "\n")
	sb.WriteString(successStyle.Render(fmt.Sprintf("Remapped %d keys", m.Len())) + "\n\n")
	sb.WriteString(FormatSample(m, p.sampleSize))
	sb.WriteString("\n")
	p.print(sb.String())
}

// CapsToggled reports the caps-lock state after a toggle.
func (p *Printer) CapsToggled(inverted bool) {
	p.print(fmt.Sprintf("Caps Lock toggled: %s (inverted behavior)\n", CapsStatus(inverted)))
}

// Result reports one remapped line.
func (p *Printer) Result(res remap.Result) {
	p.print(FormatResult(res) + "\n")
}

// Countdown prints the countdown notice in place when the next shuffle is
// close.
func (p *Printer) Countdown(remaining time.Duration) {
	if s := FormatCountdown(remaining, p.warnWithin); s != "" {
		p.print(subtleStyle.Render(s) + "\r")
	}
}

// Stopped prints the shutdown notice and farewell.
func (p *Printer) Stopped() {
	p.print("\n" + warningStyle.Render("Chaos stopped!") + "\n")
	p.print("\nChaos ended. Your keyboard is safe... for now!\n")
}

// Interrupted prints the interrupt notice.
func (p *Printer) Interrupted() {
	p.print("\n\n" + errorStyle.Render("Chaos interrupted by user!") + "\n")
}

// Markdown prints rendered markdown, falling back to the raw text.
func (p *Printer) Markdown(text string) {
	rendered, err := RenderMarkdown(text)
	if err != nil || rendered == "" {
		rendered = text
	}
	p.print(rendered + "\n")
}
