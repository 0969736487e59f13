// internal/rng/sampler.go

package rng

import (
	"errors"
	"math"

	"github.com/ArowuTest/lottery-odds/internal/models"
	"github.com/rotisserie/eris"
)

var (
	// ErrInvalidEntrant is returned for an entrant with no name, a repeated name, or a ticket
	// weight that is not a positive finite number.
	ErrInvalidEntrant = errors.New("invalid entrant")
	// ErrNegativeCount is returned when asked for fewer than zero winners.
	ErrNegativeCount = errors.New("draw count must be >= 0")
)

// Pool is a validated, read-only set of weighted entrants. Every Draw works on
// its own scratch copy, so a Pool can be drawn from any number of times.
type Pool struct {
	entrants []models.Entrant
	weights  []float64
	total    float64
}

// NewPool validates entrants and keeps a private copy of them in input order.
// Names identify entrants, so each name may appear only once.
func NewPool(entrants []models.Entrant) (*Pool, error) {
	p := &Pool{
		entrants: make([]models.Entrant, len(entrants)),
		weights:  make([]float64, len(entrants)),
	}
	seen := make(map[string]struct{}, len(entrants))
	for i, e := range entrants {
		if e.Name == "" {
			return nil, eris.Wrapf(ErrInvalidEntrant, "entrant #%d has an empty name", i+1)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, eris.Wrapf(ErrInvalidEntrant, "entrant %q is listed more than once", e.Name)
		}
		seen[e.Name] = struct{}{}
		if !(e.Tickets > 0) || math.IsInf(e.Tickets, 1) {
			return nil, eris.Wrapf(ErrInvalidEntrant, "entrant %q has %v tickets", e.Name, e.Tickets)
		}
		p.entrants[i] = e
		p.weights[i] = e.Tickets
		p.total += e.Tickets
	}
	if math.IsInf(p.total, 0) {
		return nil, eris.Wrap(ErrInvalidEntrant, "total tickets overflow")
	}
	return p, nil
}

// Len is the number of entrants in the pool.
func (p *Pool) Len() int { return len(p.entrants) }

// TotalWeight is the sum of all tickets in the pool.
func (p *Pool) TotalWeight() float64 { return p.total }

// Draw picks up to count distinct entrants. Each pick lands on a still-eligible
// entrant with probability tickets/remainingWeight, and the winner's whole
// weight then leaves the pool. Fewer than count are returned once the pool runs out.
func (p *Pool) Draw(src Source, count int) ([]models.Entrant, error) {
	if count < 0 {
		return nil, eris.Wrapf(ErrNegativeCount, "got %d", count)
	}
	n := min(count, len(p.entrants))
	winners := make([]models.Entrant, 0, n)
	if n == 0 {
		return winners, nil
	}

	tree := newWeightTree(p.weights)
	for len(winners) < n {
		idx := tree.find(src.Float64() * tree.total)
		winners = append(winners, p.entrants[idx])
		tree.remove(idx)
	}
	return winners, nil
}

// DrawWithoutReplacement validates entrants and draws up to count of them.
// The caller's slice is never modified.
func DrawWithoutReplacement(src Source, entrants []models.Entrant, count int) ([]models.Entrant, error) {
	pool, err := NewPool(entrants)
	if err != nil {
		return nil, err
	}
	return pool.Draw(src, count)
}
