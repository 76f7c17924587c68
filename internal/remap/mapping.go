// Package remap holds the key mapping model: generating randomized mappings
// and applying the mapping currently installed in an Engine to typed text.
package remap

import "github.com/marcus/chaoskb/internal/keyspace"

// Entry is a single source -> target assignment.
type Entry struct {
	From keyspace.Key
	To   keyspace.Key
}

// Mapping is an immutable key assignment. It is never modified after
// construction; a new generation always produces a new Mapping.
type Mapping struct {
	entries []Entry
	index   map[keyspace.Key]keyspace.Key
	dropped []keyspace.Key
}

// NewMapping builds a Mapping from entries in order. A repeated source key
// keeps its first position but takes the later target.
func NewMapping(entries []Entry) *Mapping {
	m := &Mapping{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[keyspace.Key]keyspace.Key, len(entries)),
	}
	for _, e := range entries {
		if _, exists := m.index[e.From]; exists {
			for i := range m.entries {
				if m.entries[i].From == e.From {
					m.entries[i].To = e.To
				}
			}
		} else {
			m.entries = append(m.entries, e)
		}
		m.index[e.From] = e.To
	}
	return m
}

// Empty returns a Mapping with no entries.
func Empty() *Mapping {
	return NewMapping(nil)
}

// Lookup returns the target for k. A nil Mapping has no entries.
func (m *Mapping) Lookup(k keyspace.Key) (keyspace.Key, bool) {
	if m == nil {
		return "", false
	}
	to, ok := m.index[k]
	return to, ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the entries in generation order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Sample returns up to n leading entries and how many entries were left out.
func (m *Mapping) Sample(n int) ([]Entry, int) {
	entries := m.Entries()
	if n < 0 || n >= len(entries) {
		return entries, 0
	}
	return entries[:n], len(entries) - n
}

// Dropped lists the candidate keys that were left unpaired because the
// value pool ran out before them.
func (m *Mapping) Dropped() []keyspace.Key {
	if m == nil {
		return nil
	}
	out := make([]keyspace.Key, len(m.dropped))
	copy(out, m.dropped)
	return out
}

// Equal reports whether two mappings assign every key identically.
func (m *Mapping) Equal(other *Mapping) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, e := range m.Entries() {
		to, ok := other.Lookup(e.From)
		if !ok || to != e.To {
			return false
		}
	}
	return true
}
