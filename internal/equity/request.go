package equity

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/lox/equity-cli/internal/deck"
)

// ErrInvalidRequest is returned when a request fails validation; no
// trials run on invalid input.
var ErrInvalidRequest = errors.New("invalid request")

const (
	holeCards               = 2
	boardCards              = 5
	maxWorkers              = 8
	defaultProgressInterval = 10000

	// Below this the goroutine fan-out costs more than it saves.
	parallelThreshold = 500
)

// Request describes one equity calculation: two concrete hole-card
// hands, an optional partial board and an iteration count.
type Request struct {
	Hand1 []deck.Card
	Hand2 []deck.Card
	Board []deck.Card

	// Iterations is the number of Monte Carlo trials. Must be positive.
	Iterations int

	// Workers caps the parallel trial loop. 0 means one per CPU
	// (capped); 1 forces the sequential path.
	Workers int

	// TrackCategories tallies each hand's category per trial into
	// Result.Categories.
	TrackCategories bool

	// Progress, when set, is invoked roughly every ProgressInterval
	// completed trials and once at completion. It may be called from
	// multiple worker goroutines.
	Progress func(done, total int)

	// ProgressInterval is the trial count between Progress calls.
	// 0 means every 10,000 trials.
	ProgressInterval int
}

// Validate checks the request invariants: each hand exactly 2 cards,
// board at most 5, all cards pairwise distinct, positive iterations.
func (r Request) Validate() error {
	if len(r.Hand1) != holeCards {
		return fmt.Errorf("%w: hand 1 must contain exactly %d cards, got %d", ErrInvalidRequest, holeCards, len(r.Hand1))
	}
	if len(r.Hand2) != holeCards {
		return fmt.Errorf("%w: hand 2 must contain exactly %d cards, got %d", ErrInvalidRequest, holeCards, len(r.Hand2))
	}
	if len(r.Board) > boardCards {
		return fmt.Errorf("%w: board cannot have more than %d cards, got %d", ErrInvalidRequest, boardCards, len(r.Board))
	}
	if r.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidRequest, r.Iterations)
	}

	var seen deck.CardSet
	for _, card := range r.fixedCards() {
		if seen.Contains(card) {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidRequest, card)
		}
		seen.Add(card)
	}
	return nil
}

// fixedCards returns hole and board cards in one slice, the exclusion
// set for deck construction.
func (r Request) fixedCards() []deck.Card {
	fixed := make([]deck.Card, 0, 2*holeCards+len(r.Board))
	fixed = append(fixed, r.Hand1...)
	fixed = append(fixed, r.Hand2...)
	fixed = append(fixed, r.Board...)
	return fixed
}

func (r Request) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	workers := runtime.NumCPU()
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return workers
}

func (r Request) progressInterval() int {
	if r.ProgressInterval > 0 {
		return r.ProgressInterval
	}
	return defaultProgressInterval
}
