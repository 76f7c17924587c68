package keymap

import (
	"fmt"
	"strings"
)

// ParseOverride parses "context:key=command" (context defaults to global)
// into its parts.
func ParseOverride(s string) (Context, string, Command, error) {
	binding, cmd, ok := strings.Cut(s, "=")
	if !ok || binding == "" || cmd == "" {
		return "", "", "", fmt.Errorf("invalid binding %q: want [context:]key=command", s)
	}
	if !IsCommand(cmd) {
		return "", "", "", fmt.Errorf("invalid binding %q: unknown command %q", s, cmd)
	}
	ctx, key := parseBinding(binding)
	if key == "" {
		return "", "", "", fmt.Errorf("invalid binding %q: empty key", s)
	}
	return ctx, key, Command(cmd), nil
}

// ApplyOverrides applies "context:key=command" overrides to the registry.
func ApplyOverrides(r *Registry, overrides []string) error {
	for _, o := range overrides {
		ctx, key, cmd, err := ParseOverride(o)
		if err != nil {
			return err
		}
		r.SetUserOverride(ctx, key, cmd)
	}
	return nil
}

// parseBinding parses a "context:key" string into context and key parts.
func parseBinding(s string) (Context, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			if i == 0 {
				break
			}
			return Context(s[:i]), s[i+1:]
		}
	}
	// If no colon, assume global context
	return ContextGlobal, s
}
