package keymap

// DefaultBindings returns the default key bindings for the chaos TUI.
// Printable keys go to the prompt, so commands use control keys.
func DefaultBindings() []Binding {
	return []Binding{
		// Global
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "ctrl+s", Command: CmdShuffle, Context: ContextGlobal, Description: "Shuffle now"},
		{Key: "ctrl+k", Command: CmdToggleCaps, Context: ContextGlobal, Description: "Toggle caps lock"},
		{Key: "ctrl+p", Command: CmdTogglePause, Context: ContextGlobal, Description: "Pause/resume chaos"},
		{Key: "f1", Command: CmdToggleHelp, Context: ContextGlobal, Description: "Toggle help"},

		// Prompt
		{Key: "enter", Command: CmdSubmit, Context: ContextPrompt, Description: "Remap line"},
		{Key: "ctrl+u", Command: CmdClearInput, Context: ContextPrompt, Description: "Clear input"},
		{Key: "esc", Command: CmdClearInput, Context: ContextPrompt, Description: "Clear input"},

		// Help overlay
		{Key: "esc", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "q", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "?", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}
