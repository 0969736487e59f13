package simulation

import (
	"errors"

	"github.com/ArowuTest/lottery-odds/internal/rng"
)

// Simulation errors
var (
	// ErrInvalidConfiguration covers non-positive iteration counts and negative spot counts.
	// It is returned before any draw happens.
	ErrInvalidConfiguration = errors.New("invalid simulation configuration")

	// ErrInvalidEntrant is the sampler's rejection of an unnamed or non-positive-ticket entrant.
	ErrInvalidEntrant = rng.ErrInvalidEntrant
)
