package simulation

import (
	"github.com/rotisserie/eris"

	"github.com/ArowuTest/lottery-odds/internal/models"
	"github.com/ArowuTest/lottery-odds/internal/report"
	"github.com/ArowuTest/lottery-odds/internal/rng"
)

// ProgressInterval is how many iterations pass between progress callbacks.
const ProgressInterval = 1000

// Selection is the outcome of one simulated lottery. Main and Waitlist are in draw
// order and never share an entrant.
type Selection struct {
	Main     []models.Entrant
	Waitlist []models.Entrant
}

// Counts holds per-entrant tallies across all iterations, keyed by name.
// Every entrant has an entry, zero if never drawn.
type Counts struct {
	Iterations int
	Main       map[string]int
	Waitlist   map[string]int
}

func newCounts(entrants []models.Entrant) *Counts {
	c := &Counts{
		Main:     make(map[string]int, len(entrants)),
		Waitlist: make(map[string]int, len(entrants)),
	}
	for _, e := range entrants {
		c.Main[e.Name] = 0
		c.Waitlist[e.Name] = 0
	}
	return c
}

func (c *Counts) add(sel Selection) {
	for _, e := range sel.Main {
		c.Main[e.Name]++
	}
	for _, e := range sel.Waitlist {
		c.Waitlist[e.Name]++
	}
	c.Iterations++
}

// Result bundles the raw counts with their ticket-group summary.
type Result struct {
	Params models.Params
	Counts *Counts
	Report models.Report
}

type options struct {
	progress func(done, total int)
}

// Option tunes Aggregate.
type Option func(*options)

// WithProgress calls fn after every ProgressInterval iterations.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) { o.progress = fn }
}

func validateSpots(mainSpots, waitlistSpots int) error {
	if mainSpots < 0 {
		return eris.Wrapf(ErrInvalidConfiguration, "main spots must be >= 0, got %d", mainSpots)
	}
	if waitlistSpots < 0 {
		return eris.Wrapf(ErrInvalidConfiguration, "waitlist spots must be >= 0, got %d", waitlistSpots)
	}
	return nil
}

func validateParams(p models.Params) error {
	if p.Iterations <= 0 {
		return eris.Wrapf(ErrInvalidConfiguration, "iterations must be > 0, got %d", p.Iterations)
	}
	return validateSpots(p.MainSpots, p.WaitlistSpots)
}

// RunOneIteration simulates a single lottery. It draws mainSpots+waitlistSpots
// entrants in one pass and splits the ordered result, so the lists are disjoint.
func RunOneIteration(src rng.Source, entrants []models.Entrant, mainSpots, waitlistSpots int) (Selection, error) {
	if err := validateSpots(mainSpots, waitlistSpots); err != nil {
		return Selection{}, err
	}
	if src == nil {
		return Selection{}, eris.Wrap(ErrInvalidConfiguration, "random source is nil")
	}
	pool, err := rng.NewPool(entrants)
	if err != nil {
		return Selection{}, err
	}
	return drawSelection(src, pool, mainSpots, waitlistSpots)
}

func drawSelection(src rng.Source, pool *rng.Pool, mainSpots, waitlistSpots int) (Selection, error) {
	drawn, err := pool.Draw(src, mainSpots+waitlistSpots)
	if err != nil {
		return Selection{}, err
	}
	cut := min(mainSpots, len(drawn))
	return Selection{Main: drawn[:cut], Waitlist: drawn[cut:]}, nil
}

// Aggregate runs p.Iterations lotteries against one shared Source and tallies who
// landed in main and who on the waitlist. With a seeded Source the counts are
// fully reproducible. An empty entrant list yields empty counts, not an error.
func Aggregate(entrants []models.Entrant, p models.Params, src rng.Source, opts ...Option) (*Counts, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, eris.Wrap(ErrInvalidConfiguration, "random source is nil")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	pool, err := rng.NewPool(entrants)
	if err != nil {
		return nil, err
	}

	counts := newCounts(entrants)
	for i := 0; i < p.Iterations; i++ {
		sel, err := drawSelection(src, pool, p.MainSpots, p.WaitlistSpots)
		if err != nil {
			return nil, eris.Wrapf(err, "iteration %d", i+1)
		}
		counts.add(sel)
		if o.progress != nil && (i+1)%ProgressInterval == 0 {
			o.progress(i+1, p.Iterations)
		}
	}
	return counts, nil
}

// Run aggregates and then summarizes by ticket group.
func Run(entrants []models.Entrant, p models.Params, src rng.Source, opts ...Option) (*Result, error) {
	counts, err := Aggregate(entrants, p, src, opts...)
	if err != nil {
		return nil, err
	}
	return &Result{
		Params: p,
		Counts: counts,
		Report: report.Summarize(entrants, counts.Main, counts.Waitlist, counts.Iterations),
	}, nil
}
