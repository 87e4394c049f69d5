// Package protocol defines the JSON messages exchanged with the
// equity service. Cards travel as two-letter notation strings
// (e.g. "As", "Kh").
package protocol

import (
	"fmt"
	"time"

	"github.com/lox/equity-cli/internal/deck"
	"github.com/lox/equity-cli/internal/equity"
)

// Message type tags
const (
	// Client -> Server
	TypeSimulate = "simulate"

	// Server -> Client
	TypeResult = "result"
	TypeError  = "error"
)

// SimulateRequest asks the service to run one equity calculation.
type SimulateRequest struct {
	Type       string `json:"type"`
	Hand1      string `json:"hand1"`
	Hand2      string `json:"hand2"`
	Board      string `json:"board,omitempty"`
	Iterations int    `json:"iterations"`
	Seed       *int64 `json:"seed,omitempty"`
}

// HandResult carries one hand's share of a SimulateResult.
type HandResult struct {
	Cards      []string `json:"cards"`
	Wins       int      `json:"wins"`
	WinPercent float64  `json:"win_percent"`
	Equity     float64  `json:"equity"`
}

// SimulateResult reports the outcome of a simulation.
type SimulateResult struct {
	Type       string        `json:"type"`
	Hands      [2]HandResult `json:"hands"`
	Ties       int           `json:"ties"`
	TiePercent float64       `json:"tie_percent"`
	Trials     int           `json:"trials"`
	ElapsedMs  int64         `json:"elapsed_ms"`
}

// Error reports a request failure.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewError builds an Error message from err.
func NewError(err error) Error {
	return Error{Type: TypeError, Message: err.Error()}
}

// ToRequest decodes the wire message into a simulator request. Card
// parsing and structural checks happen here; the simulator revalidates
// the full card-distinctness invariant.
func (m SimulateRequest) ToRequest() (equity.Request, error) {
	var req equity.Request
	var err error

	if req.Hand1, err = deck.ParseCards(m.Hand1); err != nil {
		return equity.Request{}, fmt.Errorf("hand1: %w", err)
	}
	if req.Hand2, err = deck.ParseCards(m.Hand2); err != nil {
		return equity.Request{}, fmt.Errorf("hand2: %w", err)
	}
	if m.Board != "" {
		if req.Board, err = deck.ParseCards(m.Board); err != nil {
			return equity.Request{}, fmt.Errorf("board: %w", err)
		}
	}
	req.Iterations = m.Iterations
	return req, nil
}

// NewSimulateResult builds the wire message for a completed run.
func NewSimulateResult(req equity.Request, res equity.Result, elapsed time.Duration) SimulateResult {
	msg := SimulateResult{
		Type:       TypeResult,
		Ties:       res.Ties,
		TiePercent: res.TiePercent(),
		Trials:     res.Trials,
		ElapsedMs:  elapsed.Milliseconds(),
	}
	for i, hand := range [2][]deck.Card{req.Hand1, req.Hand2} {
		hr := HandResult{
			Wins:       res.Wins[i],
			WinPercent: res.WinPercent(i),
			Equity:     res.Equity(i),
		}
		for _, card := range hand {
			hr.Cards = append(hr.Cards, card.Notation())
		}
		msg.Hands[i] = hr
	}
	return msg
}
