package keymap

import (
	"fmt"
	"strings"
)

// HelpBinding represents a single binding for display
type HelpBinding struct {
	Keys        string // Combined keys like "esc / ctrl+u"
	Description string
}

// GenerateHelp generates help text from the registry bindings
func (r *Registry) GenerateHelp() string {
	var sb strings.Builder
	sb.WriteString("\nCHAOS TUI - Key Bindings\n")

	sections := []struct {
		title   string
		context Context
		cmds    []Command
	}{
		{"GLOBAL", ContextGlobal, []Command{CmdShuffle, CmdToggleCaps, CmdTogglePause, CmdToggleHelp, CmdQuit}},
		{"PROMPT", ContextPrompt, []Command{CmdSubmit, CmdClearInput}},
	}
	for _, sec := range sections {
		sb.WriteString("\n" + sec.title + ":\n")
		for _, b := range r.helpBindings(sec.context, sec.cmds) {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", b.Keys, b.Description))
		}
	}

	sb.WriteString("\nTyping 'quit', 'shuffle' or 'caps' at the prompt works too.\n")
	sb.WriteString("Press esc to close help\n")
	return sb.String()
}

// FooterHints returns a compact one-line summary of the global bindings.
func (r *Registry) FooterHints() string {
	var parts []string
	for _, b := range r.helpBindings(ContextGlobal, []Command{CmdShuffle, CmdToggleCaps, CmdTogglePause, CmdToggleHelp, CmdQuit}) {
		parts = append(parts, b.Keys+" "+strings.ToLower(b.Description))
	}
	return strings.Join(parts, "  ")
}

func (r *Registry) helpBindings(context Context, cmds []Command) []HelpBinding {
	var out []HelpBinding
	for _, cmd := range cmds {
		keys := r.KeysFor(cmd, context)
		if len(keys) == 0 {
			continue
		}
		out = append(out, HelpBinding{
			Keys:        strings.Join(keys, " / "),
			Description: r.describe(cmd, context),
		})
	}
	return out
}

func (r *Registry) describe(cmd Command, context Context) string {
	for _, b := range r.BindingsForContext(context) {
		if b.Command == cmd && b.Description != "" {
			return b.Description
		}
	}
	return string(cmd)
}
