package remap

import (
	"math/rand"
	"sync"
	"time"

	"github.com/marcus/chaoskb/internal/keyspace"
)

// DefaultInclusionProbability is the chance each special key joins the
// candidate list on a generation.
const DefaultInclusionProbability = 0.3

// Generate builds a fresh Mapping from keys to a shuffled copy of keys.
//
// Each special key is appended to the candidate list independently with
// probability p. Targets are drawn only from keys, so candidates and targets
// are paired positionally up to the shorter of the two lists and any surplus
// candidates are recorded as dropped.
func Generate(rng *rand.Rand, keys, specials []keyspace.Key, p float64) *Mapping {
	candidates := make([]keyspace.Key, 0, len(keys)+len(specials))
	candidates = append(candidates, keys...)
	for _, s := range specials {
		if rng.Float64() < p {
			candidates = append(candidates, s)
		}
	}

	values := make([]keyspace.Key, len(keys))
	copy(values, keys)
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	n := min(len(candidates), len(values))
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{From: candidates[i], To: values[i]})
	}

	m := NewMapping(entries)
	if len(candidates) > n {
		m.dropped = append(m.dropped, candidates[n:]...)
	}
	return m
}

// Generator produces mappings over the process key space with a private,
// seedable random source. It is safe for concurrent use.
type Generator struct {
	keys        []keyspace.Key
	specials    []keyspace.Key
	probability float64

	rngMu sync.Mutex
	rng   *rand.Rand
}

// GeneratorOption configures a Generator in NewGenerator.
type GeneratorOption func(*Generator)

// WithProbability sets the special-key inclusion probability, clamped to [0,1].
func WithProbability(p float64) GeneratorOption {
	return func(g *Generator) {
		switch {
		case p < 0:
			p = 0
		case p > 1:
			p = 1
		}
		g.probability = p
	}
}

// WithKeys overrides the printable and special key sets.
func WithKeys(keys, specials []keyspace.Key) GeneratorOption {
	return func(g *Generator) {
		g.keys = keys
		g.specials = specials
	}
}

// NewGenerator returns a Generator seeded with seed. A zero seed uses the
// current time.
func NewGenerator(seed int64, opts ...GeneratorOption) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGeneratorWithSource(rand.New(rand.NewSource(seed)), opts...)
}

// NewGeneratorWithSource returns a Generator drawing from rng.
func NewGeneratorWithSource(rng *rand.Rand, opts ...GeneratorOption) *Generator {
	g := &Generator{
		keys:        keyspace.KeySet(),
		specials:    keyspace.SpecialKeySet(),
		probability: DefaultInclusionProbability,
		rng:         rng,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Probability returns the special-key inclusion probability.
func (g *Generator) Probability() float64 {
	return g.probability
}

// Generate returns a new Mapping.
func (g *Generator) Generate() *Mapping {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return Generate(g.rng, g.keys, g.specials, g.probability)
}
