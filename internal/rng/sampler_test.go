package rng

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottery-odds/internal/models"
)

// fixedSource replays a scripted sequence of uniforms.
type fixedSource struct {
	vals []float64
	i    int
}

func (f *fixedSource) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func names(es []models.Entrant) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func TestDrawWithoutReplacement_Empty(t *testing.T) {
	got, err := DrawWithoutReplacement(NewSeeded(1), nil, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDrawWithoutReplacement_ZeroCount(t *testing.T) {
	got, err := DrawWithoutReplacement(NewSeeded(1), []models.Entrant{{Name: "a", Tickets: 1}}, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDrawWithoutReplacement_NegativeCount(t *testing.T) {
	_, err := DrawWithoutReplacement(NewSeeded(1), []models.Entrant{{Name: "a", Tickets: 1}}, -1)
	assert.True(t, errors.Is(err, ErrNegativeCount))
}

func TestDrawWithoutReplacement_RejectsBadEntrants(t *testing.T) {
	tests := []struct {
		name    string
		entrant models.Entrant
	}{
		{"zero tickets", models.Entrant{Name: "a", Tickets: 0}},
		{"negative tickets", models.Entrant{Name: "a", Tickets: -2}},
		{"nan tickets", models.Entrant{Name: "a", Tickets: math.NaN()}},
		{"infinite tickets", models.Entrant{Name: "a", Tickets: math.Inf(1)}},
		{"empty name", models.Entrant{Name: "", Tickets: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entrants := []models.Entrant{{Name: "ok", Tickets: 3}, tt.entrant}
			_, err := DrawWithoutReplacement(NewSeeded(1), entrants, 1)
			assert.True(t, errors.Is(err, ErrInvalidEntrant), "got %v", err)
		})
	}
}

func TestNewPool_RejectsDuplicateNames(t *testing.T) {
	_, err := NewPool([]models.Entrant{{Name: "x", Tickets: 1}, {Name: "x", Tickets: 1}, {Name: "y", Tickets: 1}})
	assert.True(t, errors.Is(err, ErrInvalidEntrant), "got %v", err)
	assert.Contains(t, err.Error(), `"x"`)
}

func TestNewPool_RejectsOverflowingTotal(t *testing.T) {
	_, err := NewPool([]models.Entrant{{Name: "a", Tickets: 1e308}, {Name: "b", Tickets: 1e308}})
	assert.True(t, errors.Is(err, ErrInvalidEntrant), "got %v", err)

	pool, err := NewPool([]models.Entrant{{Name: "a", Tickets: 1e307}, {Name: "b", Tickets: 1e307}})
	require.NoError(t, err)
	assert.False(t, math.IsInf(pool.TotalWeight(), 0))
}

func TestDrawWithoutReplacement_ExhaustsPool(t *testing.T) {
	entrants := []models.Entrant{{Name: "a", Tickets: 1}, {Name: "b", Tickets: 2}, {Name: "c", Tickets: 3}}
	got, err := DrawWithoutReplacement(NewSeeded(9), entrants, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names(got))
}

func TestDrawWithoutReplacement_DoesNotMutateInput(t *testing.T) {
	entrants := []models.Entrant{{Name: "a", Tickets: 1}, {Name: "b", Tickets: 2}, {Name: "c", Tickets: 3}}
	before := append([]models.Entrant(nil), entrants...)
	_, err := DrawWithoutReplacement(NewSeeded(3), entrants, 2)
	require.NoError(t, err)
	assert.Equal(t, before, entrants)
}

func TestPoolDraw_RemovesWholeWeight(t *testing.T) {
	// a owns [0,8), b [8,12), c [12,14), d [14,16).
	entrants := []models.Entrant{
		{Name: "a", Tickets: 8}, {Name: "b", Tickets: 4}, {Name: "c", Tickets: 2}, {Name: "d", Tickets: 2},
	}
	pool, err := NewPool(entrants)
	require.NoError(t, err)
	assert.Equal(t, 16.0, pool.TotalWeight())

	// 0.0 -> a. Remaining b [0,4) c [4,6) d [6,8); 0.0 -> b again rather than a.
	// Then c [0,2) d [2,4): 0.9*4 = 3.6 -> d. Finally c.
	src := &fixedSource{vals: []float64{0.0, 0.0, 0.9, 0.5}}
	got, err := pool.Draw(src, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "c"}, names(got))
}

func TestPoolDraw_BoundaryValues(t *testing.T) {
	entrants := []models.Entrant{{Name: "a", Tickets: 1}, {Name: "b", Tickets: 1}}
	pool, err := NewPool(entrants)
	require.NoError(t, err)

	got, err := pool.Draw(&fixedSource{vals: []float64{0.5}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names(got))

	got, err = pool.Draw(&fixedSource{vals: []float64{math.Nextafter(1, 0)}}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, names(got))
}

func TestPoolDraw_NeverRepeats(t *testing.T) {
	var entrants []models.Entrant
	for i := 0; i < 200; i++ {
		entrants = append(entrants, models.Entrant{Name: string(rune('A'+i%26)) + string(rune('a'+i/26)), Tickets: float64(1 + i%7)})
	}
	pool, err := NewPool(entrants)
	require.NoError(t, err)

	src := NewSeeded(42)
	for iter := 0; iter < 50; iter++ {
		got, err := pool.Draw(src, 150)
		require.NoError(t, err)
		require.Len(t, got, 150)
		seen := make(map[string]bool, len(got))
		for _, e := range got {
			require.False(t, seen[e.Name], "%s drawn twice", e.Name)
			seen[e.Name] = true
		}
	}
}

func TestPoolDraw_WeightedFrequency(t *testing.T) {
	pool, err := NewPool([]models.Entrant{{Name: "heavy", Tickets: 100}, {Name: "light", Tickets: 1}})
	require.NoError(t, err)

	src := NewSeeded(2024)
	const n = 20000
	heavy := 0
	for i := 0; i < n; i++ {
		got, err := pool.Draw(src, 1)
		require.NoError(t, err)
		if got[0].Name == "heavy" {
			heavy++
		}
	}
	assert.InDelta(t, 100.0/101.0, float64(heavy)/n, 0.01)
}

func TestPoolDraw_FractionalTickets(t *testing.T) {
	pool, err := NewPool([]models.Entrant{{Name: "half", Tickets: 0.5}, {Name: "whole", Tickets: 1.5}})
	require.NoError(t, err)

	src := NewSeeded(5)
	const n = 20000
	half := 0
	for i := 0; i < n; i++ {
		got, err := pool.Draw(src, 1)
		require.NoError(t, err)
		if got[0].Name == "half" {
			half++
		}
	}
	assert.InDelta(t, 0.25, float64(half)/n, 0.015)
}

func TestNewSeeded_Deterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
	assert.NotEqual(t, NewSeeded(1).Float64(), NewSeeded(2).Float64())
}

func TestNewSource(t *testing.T) {
	seed := int64(11)
	src, err := NewSource(&seed)
	require.NoError(t, err)
	assert.Equal(t, NewSeeded(11).Float64(), src.Float64())

	src, err = NewSource(nil)
	require.NoError(t, err)
	_, ok := src.(*CSPRNG)
	assert.True(t, ok)
}

func TestCSPRNG_Float64Range(t *testing.T) {
	c, err := NewCSPRNG()
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		v := c.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestWeightTree_FindAndRemove(t *testing.T) {
	tree := newWeightTree([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 15.0, tree.total)
	assert.Equal(t, 0, tree.find(0))
	assert.Equal(t, 1, tree.find(1))
	assert.Equal(t, 2, tree.find(5.5))
	assert.Equal(t, 4, tree.find(14.9))

	tree.remove(2) // weights 1,2,_,4,5
	assert.Equal(t, 12.0, tree.total)
	assert.Equal(t, 3, tree.find(3))
	assert.Equal(t, 4, tree.find(7))

	// past the end falls back to the last live entrant
	assert.Equal(t, 4, tree.find(100))
	tree.remove(4)
	assert.Equal(t, 3, tree.find(100))
}
