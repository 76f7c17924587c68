package remap

import (
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/marcus/chaoskb/internal/keyspace"
)

// Engine holds the installed Mapping and the caps-inversion flag.
//
// The Mapping is swapped as a whole through an atomic pointer, so a reader
// always sees either the previous or the next complete Mapping.
type Engine struct {
	mapping      atomic.Pointer[Mapping]
	capsInverted atomic.Bool
}

// NewEngine returns an Engine with an empty Mapping and caps inversion on.
func NewEngine() *Engine {
	e := &Engine{}
	e.mapping.Store(Empty())
	e.capsInverted.Store(true)
	return e
}

// Install replaces the current Mapping and returns the one it replaced.
// A nil Mapping installs an empty one.
func (e *Engine) Install(m *Mapping) *Mapping {
	if m == nil {
		m = Empty()
	}
	return e.mapping.Swap(m)
}

// Shuffle generates a Mapping with g and installs it.
func (e *Engine) Shuffle(g *Generator) *Mapping {
	m := g.Generate()
	e.Install(m)
	return m
}

// Mapping returns the Mapping in effect right now.
func (e *Engine) Mapping() *Mapping {
	return e.mapping.Load()
}

// CapsInverted reports whether alphabetic output is forced to upper case.
func (e *Engine) CapsInverted() bool {
	return e.capsInverted.Load()
}

// SetCapsInverted sets the caps-inversion flag.
func (e *Engine) SetCapsInverted(v bool) {
	e.capsInverted.Store(v)
}

// ToggleCaps flips the caps-inversion flag and returns the new value.
func (e *Engine) ToggleCaps() bool {
	for {
		old := e.capsInverted.Load()
		if e.capsInverted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Transform returns the character produced when r is typed under the
// current Mapping. Characters without an entry are returned unchanged.
func (e *Engine) Transform(r rune) rune {
	out, _ := apply(e.Mapping(), e.CapsInverted(), r)
	return out
}

// Result describes one transformed line.
type Result struct {
	Original string
	Remapped string
	Affected int
	Total    int
}

// Level returns Affected/Total, or 0 for an empty line.
func (r Result) Level() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Affected) / float64(r.Total)
}

// TransformLine transforms every rune of line against a single snapshot of
// the Mapping and caps flag.
func (e *Engine) TransformLine(line string) Result {
	m := e.Mapping()
	caps := e.CapsInverted()

	res := Result{Original: line, Total: utf8.RuneCountInString(line)}
	out := make([]rune, 0, res.Total)
	for _, r := range line {
		mapped, hit := apply(m, caps, r)
		if hit {
			res.Affected++
		}
		out = append(out, mapped)
	}
	res.Remapped = string(out)
	return res
}

func apply(m *Mapping, capsInverted bool, r rune) (rune, bool) {
	to, ok := m.Lookup(keyspace.FromRune(unicode.ToLower(r)))
	if !ok {
		return r, false
	}
	mapped, ok := to.Rune()
	if !ok {
		return r, false
	}
	if unicode.IsLetter(mapped) {
		if capsInverted {
			mapped = unicode.ToUpper(mapped)
		} else {
			mapped = unicode.ToLower(mapped)
		}
	}
	return mapped, true
}
