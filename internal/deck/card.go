package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the display form of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single-letter notation form of a suit (s, h, d, c)
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character form of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents one of the 52 physical playing cards
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display form of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Notation returns the two-letter notation form of a card (e.g., "As")
func (c Card) Notation() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Index returns the packed identity of a card (0-51), used for
// set membership and deduplication.
func (c Card) Index() int {
	return int(c.Rank-Two)*4 + int(c.Suit)
}

// AllCards returns the 52-card universe in a fixed order.
func AllCards() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// CardSet represents a set of cards as a bitset, one bit per Index.
type CardSet uint64

// Add adds a card to the set
func (cs *CardSet) Add(card Card) {
	*cs |= 1 << card.Index()
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(card Card) bool {
	return cs&(1<<card.Index()) != 0
}

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards []Card) CardSet {
	var cs CardSet
	for _, card := range cards {
		cs.Add(card)
	}
	return cs
}
