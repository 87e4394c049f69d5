package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

var (
	// ErrDuplicateCard is returned when the same card appears twice
	// among the excluded (hole + board) inputs.
	ErrDuplicateCard = errors.New("duplicate card")

	// ErrDeckExhausted is returned when a deal requests more cards than
	// remain. With valid inputs the deck always holds at least 43 cards,
	// so hitting this indicates a logic defect rather than user error.
	ErrDeckExhausted = errors.New("deck exhausted")
)

// Deck holds the cards not already fixed as hole or board cards.
// Deals are uniform draws without replacement: a partial Fisher-Yates
// shuffle swaps each selected card behind the live region. Reset
// restores the full deck for the next trial without reallocating.
type Deck struct {
	cards []Card
	live  int // cards[:live] are still drawable this trial
	rng   *rand.Rand
}

// New builds a deck containing every card not present in excluded.
// A card appearing twice in excluded is an input error.
func New(excluded []Card, rng *rand.Rand) (*Deck, error) {
	var seen CardSet
	for _, card := range excluded {
		if seen.Contains(card) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, card)
		}
		seen.Add(card)
	}

	d := &Deck{
		cards: make([]Card, 0, 52-len(excluded)),
		rng:   rng,
	}
	for _, card := range AllCards() {
		if !seen.Contains(card) {
			d.cards = append(d.cards, card)
		}
	}
	d.live = len(d.cards)
	return d, nil
}

// Deal fills dst with distinct cards drawn uniformly at random from
// the live region of the deck.
func (d *Deck) Deal(dst []Card) error {
	if len(dst) > d.live {
		return fmt.Errorf("%w: need %d, have %d", ErrDeckExhausted, len(dst), d.live)
	}

	for i := range dst {
		j := d.rng.IntN(d.live)
		d.live--
		d.cards[j], d.cards[d.live] = d.cards[d.live], d.cards[j]
		dst[i] = d.cards[d.live]
	}
	return nil
}

// Reset makes every card drawable again for the next trial.
func (d *Deck) Reset() {
	d.live = len(d.cards)
}

// Remaining returns the number of cards still drawable this trial.
func (d *Deck) Remaining() int {
	return d.live
}

// Size returns the total number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}
