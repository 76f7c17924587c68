package keymap

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Context represents a UI context for keybindings
type Context string

const (
	ContextGlobal Context = "global"
	ContextPrompt Context = "prompt" // Text input has focus
	ContextHelp   Context = "help"   // Help overlay is open
)

// Command represents a named command that can be triggered by key bindings
type Command string

// All available commands
const (
	CmdQuit        Command = "quit"
	CmdToggleHelp  Command = "toggle-help"
	CmdShuffle     Command = "shuffle"
	CmdToggleCaps  Command = "toggle-caps"
	CmdTogglePause Command = "toggle-pause"
	CmdSubmit      Command = "submit"
	CmdClearInput  Command = "clear-input"
	CmdClose       Command = "close"
)

// Commands returns every known command ID, sorted.
func Commands() []Command {
	cmds := []Command{
		CmdQuit, CmdToggleHelp, CmdShuffle, CmdToggleCaps,
		CmdTogglePause, CmdSubmit, CmdClearInput, CmdClose,
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i] < cmds[j] })
	return cmds
}

// IsCommand reports whether s names a known command.
func IsCommand(s string) bool {
	for _, c := range Commands() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Binding maps a key to a command in a specific context
type Binding struct {
	Key         string  // e.g., "enter", "ctrl+s"
	Command     Command // Command ID
	Context     Context // "global", "prompt", "help"
	Description string  // Human-readable description for help text
}

// Registry manages key bindings and command dispatch
type Registry struct {
	bindings      map[Context][]Binding // context -> bindings
	userOverrides map[string]Command    // "context:key" -> command
	mu            sync.RWMutex
}

// NewRegistry creates a new keymap registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context][]Binding),
		userOverrides: make(map[string]Command),
	}
}

// RegisterBinding adds a key binding
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// RegisterBindings adds multiple key bindings
func (r *Registry) RegisterBindings(bindings []Binding) {
	for _, b := range bindings {
		r.RegisterBinding(b)
	}
}

// SetUserOverride sets a user-configured key override for a specific context
func (r *Registry) SetUserOverride(context Context, key string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[string(context)+":"+key] = cmd
}

// Lookup finds the command for a given key in the specified context
// Returns the command and whether a binding was found
// Checks: user overrides -> context bindings -> global bindings
func (r *Registry) Lookup(key tea.KeyMsg, activeContext Context) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findCommand(KeyToString(key), activeContext)
}

// findCommand looks up a command for the given key in order of precedence
func (r *Registry) findCommand(key string, activeContext Context) (Command, bool) {
	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, ok := r.userOverrides[string(activeContext)+":"+key]; ok {
			return cmd, true
		}
	}
	if cmd, ok := r.userOverrides[string(ContextGlobal)+":"+key]; ok {
		return cmd, true
	}

	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, found := r.findInContext(key, activeContext); found {
			return cmd, true
		}
	}

	return r.findInContext(key, ContextGlobal)
}

// findInContext finds a command for a key in a specific context
func (r *Registry) findInContext(key string, context Context) (Command, bool) {
	for _, b := range r.bindings[context] {
		if b.Key == key {
			return b.Command, true
		}
	}
	return "", false
}

// BindingsForContext returns all bindings for a given context (including global)
func (r *Registry) BindingsForContext(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Binding
	result = append(result, r.bindings[context]...)
	if context != ContextGlobal {
		result = append(result, r.bindings[ContextGlobal]...)
	}
	return result
}

// KeysFor returns the keys bound to cmd in context or globally, overrides
// first.
func (r *Registry) KeysFor(cmd Command, context Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []string
	seen := make(map[string]bool)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	var overridden []string
	for k, c := range r.userOverrides {
		if c != cmd {
			continue
		}
		ctx, key := parseBinding(k)
		if ctx == context || ctx == ContextGlobal {
			overridden = append(overridden, key)
		}
	}
	sort.Strings(overridden)
	for _, k := range overridden {
		add(k)
	}

	for _, ctx := range []Context{context, ContextGlobal} {
		for _, b := range r.bindings[ctx] {
			if b.Command == cmd {
				add(b.Key)
			}
		}
	}
	return keys
}

// KeyToString converts a tea.KeyMsg to a string representation
func KeyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeyCtrlC:
		return "ctrl+c"
	case tea.KeyCtrlK:
		return "ctrl+k"
	case tea.KeyCtrlL:
		return "ctrl+l"
	case tea.KeyCtrlP:
		return "ctrl+p"
	case tea.KeyCtrlR:
		return "ctrl+r"
	case tea.KeyCtrlS:
		return "ctrl+s"
	case tea.KeyCtrlU:
		return "ctrl+u"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEsc:
		return "esc"
	case tea.KeySpace:
		return "space"
	case tea.KeyBackspace:
		return "backspace"
	case tea.KeyF1:
		return "f1"
	case tea.KeyRunes:
		return string(key.Runes)
	default:
		return key.String()
	}
}
