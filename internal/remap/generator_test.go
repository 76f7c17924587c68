package remap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/chaoskb/internal/keyspace"
)

func TestGenerateTargetsAreKeySetMembers(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		m := NewGenerator(seed, WithProbability(1)).Generate()
		for _, e := range m.Entries() {
			assert.Truef(t, keyspace.Contains(e.To), "seed %d: %q -> %q targets a non-printable key", seed, e.From, e.To)
		}
	}
}

func TestGenerateSourcesAreKnownKeys(t *testing.T) {
	m := NewGenerator(7, WithProbability(1)).Generate()
	for _, e := range m.Entries() {
		assert.True(t, keyspace.Contains(e.From) || keyspace.IsSpecial(e.From), "unexpected source %q", e.From)
	}
}

func TestGenerateSizeIsBoundedByValuePool(t *testing.T) {
	tests := []struct {
		name string
		p    float64
	}{
		{"never include specials", 0},
		{"default probability", DefaultInclusionProbability},
		{"always include specials", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			keys := keyspace.KeySet()
			specials := keyspace.SpecialKeySet()

			m := Generate(rng, keys, specials, tt.p)

			candidates := len(keys) + len(m.Dropped())
			assert.Equal(t, min(candidates, len(keys)), m.Len())
			assert.Equal(t, len(keys), m.Len())
		})
	}
}

func TestGenerateDropsSurplusSpecials(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := Generate(rng, keyspace.KeySet(), keyspace.SpecialKeySet(), 1)

	assert.Equal(t, keyspace.SpecialKeySet(), m.Dropped())
	for _, s := range keyspace.SpecialKeySet() {
		_, ok := m.Lookup(s)
		assert.False(t, ok, "special key %q should be truncated away", s)
	}
}

func TestGenerateSmallValuePoolTruncates(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	keys := []keyspace.Key{"a", "b"}
	specials := []keyspace.Key{keyspace.Space, keyspace.Enter}

	m := Generate(rng, keys, specials, 1)

	require.Equal(t, 2, m.Len())
	assert.Equal(t, specials, m.Dropped())
	for _, e := range m.Entries() {
		assert.Contains(t, keys, e.To)
	}
}

func TestGenerateIsReproducibleWithSeed(t *testing.T) {
	a := NewGenerator(1234).Generate()
	b := NewGenerator(1234).Generate()
	assert.True(t, a.Equal(b), "same seed should give the same mapping")
	assert.Equal(t, a.Entries(), b.Entries())
}

func TestGenerateSuccessiveMappingsDiffer(t *testing.T) {
	g := NewGenerator(99)
	first := g.Generate()
	second := g.Generate()
	assert.False(t, first.Equal(second), "two generations from one source should differ")
}

func TestGenerateValuesArePermutation(t *testing.T) {
	m := NewGenerator(5, WithProbability(0)).Generate()
	counts := make(map[keyspace.Key]int)
	for _, e := range m.Entries() {
		counts[e.To]++
	}
	assert.Len(t, counts, keyspace.Size())
	for k, n := range counts {
		assert.Equalf(t, 1, n, "target %q used %d times", k, n)
	}
}

func TestWithProbabilityClamps(t *testing.T) {
	assert.Equal(t, 0.0, NewGenerator(1, WithProbability(-2)).Probability())
	assert.Equal(t, 1.0, NewGenerator(1, WithProbability(3)).Probability())
	assert.Equal(t, DefaultInclusionProbability, NewGenerator(1).Probability())
}

func TestMappingSample(t *testing.T) {
	m := NewGenerator(11).Generate()

	sample, rest := m.Sample(15)
	assert.Len(t, sample, 15)
	assert.Equal(t, m.Len()-15, rest)
	assert.Equal(t, m.Entries()[:15], sample)

	all, rest := m.Sample(1000)
	assert.Len(t, all, m.Len())
	assert.Zero(t, rest)
}

func TestNewMappingRepeatedKeyKeepsPosition(t *testing.T) {
	m := NewMapping([]Entry{{"a", "x"}, {"b", "y"}, {"a", "z"}})

	require.Equal(t, 2, m.Len())
	assert.Equal(t, []Entry{{"a", "z"}, {"b", "y"}}, m.Entries())
	to, ok := m.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, keyspace.Key("z"), to)
}

func TestNilMapping(t *testing.T) {
	var m *Mapping
	assert.Zero(t, m.Len())
	assert.Nil(t, m.Entries())
	_, ok := m.Lookup("a")
	assert.False(t, ok)
}
