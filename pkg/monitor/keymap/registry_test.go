package keymap

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if r.bindings == nil {
		t.Error("bindings map not initialized")
	}
	if r.userOverrides == nil {
		t.Error("userOverrides map not initialized")
	}
}

func TestRegisterBinding(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "enter", Command: CmdSubmit, Context: ContextPrompt})

	bindings := r.BindingsForContext(ContextPrompt)
	if len(bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(bindings))
	}
	if bindings[0].Key != "enter" {
		t.Errorf("expected key 'enter', got '%s'", bindings[0].Key)
	}
}

func TestLookup(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	tests := []struct {
		name    string
		key     tea.KeyMsg
		context Context
		want    Command
		found   bool
	}{
		{"quit with ctrl+c in prompt", tea.KeyMsg{Type: tea.KeyCtrlC}, ContextPrompt, CmdQuit, true},
		{"shuffle with ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, ContextPrompt, CmdShuffle, true},
		{"caps with ctrl+k", tea.KeyMsg{Type: tea.KeyCtrlK}, ContextPrompt, CmdToggleCaps, true},
		{"pause with ctrl+p", tea.KeyMsg{Type: tea.KeyCtrlP}, ContextPrompt, CmdTogglePause, true},
		{"submit with enter", tea.KeyMsg{Type: tea.KeyEnter}, ContextPrompt, CmdSubmit, true},
		{"esc clears in prompt", tea.KeyMsg{Type: tea.KeyEsc}, ContextPrompt, CmdClearInput, true},
		{"esc closes in help", tea.KeyMsg{Type: tea.KeyEsc}, ContextHelp, CmdClose, true},
		{"q closes in help", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ContextHelp, CmdClose, true},
		{"global works in help", tea.KeyMsg{Type: tea.KeyCtrlS}, ContextHelp, CmdShuffle, true},
		{"printable key unbound in prompt", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ContextPrompt, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := r.Lookup(tt.key, tt.context)
			if found != tt.found {
				t.Errorf("found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("command = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserOverridePrecedence(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	r.SetUserOverride(ContextPrompt, "ctrl+s", CmdToggleCaps)
	r.SetUserOverride(ContextGlobal, "ctrl+r", CmdShuffle)

	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlS}, ContextPrompt); cmd != CmdToggleCaps {
		t.Errorf("context override ignored, got %q", cmd)
	}
	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlS}, ContextHelp); cmd != CmdShuffle {
		t.Errorf("override leaked into help context, got %q", cmd)
	}
	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlR}, ContextHelp); cmd != CmdShuffle {
		t.Errorf("global override ignored, got %q", cmd)
	}
}

func TestApplyOverrides(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if err := ApplyOverrides(r, []string{"ctrl+r=shuffle", "prompt:ctrl+l=clear-input"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlR}, ContextPrompt); cmd != CmdShuffle {
		t.Errorf("ctrl+r = %q, want shuffle", cmd)
	}
	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlL}, ContextPrompt); cmd != CmdClearInput {
		t.Errorf("ctrl+l = %q, want clear-input", cmd)
	}
}

func TestParseOverrideErrors(t *testing.T) {
	for _, in := range []string{"", "ctrl+r", "=shuffle", "ctrl+r=", "ctrl+r=explode", "prompt:=shuffle"} {
		if _, _, _, err := ParseOverride(in); err == nil {
			t.Errorf("ParseOverride(%q) expected error", in)
		}
	}
}

func TestKeysFor(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride(ContextGlobal, "ctrl+r", CmdShuffle)

	keys := r.KeysFor(CmdShuffle, ContextPrompt)
	if len(keys) != 2 || keys[0] != "ctrl+r" || keys[1] != "ctrl+s" {
		t.Errorf("KeysFor(shuffle) = %v", keys)
	}

	keys = r.KeysFor(CmdClearInput, ContextPrompt)
	if strings.Join(keys, ",") != "ctrl+u,esc" {
		t.Errorf("KeysFor(clear-input) = %v", keys)
	}
}

func TestGenerateHelp(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	help := r.GenerateHelp()

	for _, want := range []string{"GLOBAL:", "PROMPT:", "ctrl+s", "Shuffle now", "ctrl+p", "enter"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestFooterHints(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	hints := r.FooterHints()
	if !strings.HasPrefix(hints, "ctrl+s shuffle now") {
		t.Errorf("FooterHints = %q", hints)
	}
}

func TestKeyToString(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlC}, "ctrl+c"},
		{tea.KeyMsg{Type: tea.KeyEnter}, "enter"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "esc"},
		{tea.KeyMsg{Type: tea.KeyF1}, "f1"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, "x"},
	}
	for _, tt := range tests {
		if got := KeyToString(tt.key); got != tt.want {
			t.Errorf("KeyToString(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestCommands(t *testing.T) {
	if !IsCommand("shuffle") || IsCommand("explode") {
		t.Error("IsCommand mismatch")
	}
	if len(Commands()) != 8 {
		t.Errorf("expected 8 commands, got %d", len(Commands()))
	}
}
