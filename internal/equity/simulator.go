package equity

import (
	"fmt"
	rand "math/rand/v2"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/lox/equity-cli/internal/deck"
	"github.com/lox/equity-cli/internal/evaluator"
	"github.com/lox/equity-cli/internal/randutil"
)

// Simulate estimates both hands' equity by Monte Carlo sampling: each
// trial completes the board from a deck excluding all fixed cards,
// evaluates both 7-card hands and tallies the outcome. Trials are
// independent, so large runs are split across workers holding their
// own RNG stream and partial sums, merged at the end. With a fixed
// rng and a pinned worker count the result is fully reproducible.
func Simulate(req Request, rng *rand.Rand) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	workers := req.workers()
	if workers > req.Iterations {
		workers = 1
	}
	if workers == 1 || req.Iterations < parallelThreshold {
		var done atomic.Int64
		return runTrials(req, req.Iterations, rng, &done)
	}

	perWorker := req.Iterations / workers
	remainder := req.Iterations % workers

	var done atomic.Int64
	results := make([]Result, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		workerRng := randutil.Stream(rng)
		g.Go(func() error {
			res, err := runTrials(req, trials, workerRng, &done)
			results[w] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, res := range results {
		total.merge(res)
	}
	return total, nil
}

// runTrials executes the trial loop. done is the shared completion
// counter driving the progress hook across workers.
func runTrials(req Request, trials int, rng *rand.Rand, done *atomic.Int64) (Result, error) {
	d, err := deck.New(req.fixedCards(), rng)
	if err != nil {
		// Unreachable after Validate; surface it rather than guess.
		return Result{}, fmt.Errorf("building deck: %w", err)
	}

	needed := boardCards - len(req.Board)
	interval := int64(req.progressInterval())
	total := req.Iterations

	// Reusable 7-card buffers: hole cards up front, fixed board behind,
	// the sampled completion written into the tail each trial.
	hand1 := make([]deck.Card, 7)
	hand2 := make([]deck.Card, 7)
	copy(hand1[:2], req.Hand1)
	copy(hand2[:2], req.Hand2)
	copy(hand1[2:], req.Board)
	copy(hand2[2:], req.Board)
	draw := make([]deck.Card, needed)

	var res Result
	for i := 0; i < trials; i++ {
		d.Reset()
		if err := d.Deal(draw); err != nil {
			return Result{}, fmt.Errorf("completing board: %w", err)
		}
		copy(hand1[2+len(req.Board):], draw)
		copy(hand2[2+len(req.Board):], draw)

		rank1, err := evaluator.Evaluate7(hand1)
		if err != nil {
			return Result{}, fmt.Errorf("evaluating hand 1: %w", err)
		}
		rank2, err := evaluator.Evaluate7(hand2)
		if err != nil {
			return Result{}, fmt.Errorf("evaluating hand 2: %w", err)
		}

		switch rank1.Compare(rank2) {
		case 1:
			res.Wins[0]++
		case -1:
			res.Wins[1]++
		default:
			res.Ties++
		}
		res.Trials++

		if req.TrackCategories {
			res.Categories[0][rank1.Category()]++
			res.Categories[1][rank2.Category()]++
		}

		if req.Progress != nil {
			if n := done.Add(1); n%interval == 0 || n == int64(total) {
				req.Progress(int(n), total)
			}
		}
	}

	return res, nil
}
