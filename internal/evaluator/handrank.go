package evaluator

import "github.com/lox/equity-cli/internal/deck"

// Category enumerates poker hand categories from weakest to strongest
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the totally ordered strength of the best 5-card hand
// derivable from 7 cards. The category occupies bits 20+ and the five
// deciding ranks sit below it at 4 bits each in descending
// significance, so plain integer comparison is exactly poker order and
// equal values are exact ties.
//
//	bits 20-23: category
//	bits 16-19: first tie-break rank
//	bits 12-15: second tie-break rank
//	...
//	bits  0-3:  fifth tie-break rank
type HandRank uint32

// Category returns the hand category encoded in the rank
func (h HandRank) Category() Category {
	return Category(h >> 20)
}

// TieBreak returns the deciding ranks in descending significance.
// Unused slots are zero (e.g. a straight carries only its high card).
func (h HandRank) TieBreak() [5]deck.Rank {
	var key [5]deck.Rank
	for i := range key {
		key[i] = deck.Rank(h >> (16 - 4*i) & 0xF)
	}
	return key
}

// Compare returns 1 if h beats other, -1 if other beats h, 0 for an
// exact tie.
func (h HandRank) Compare(other HandRank) int {
	switch {
	case h > other:
		return 1
	case h < other:
		return -1
	default:
		return 0
	}
}

// String returns the category name of the rank
func (h HandRank) String() string {
	return h.Category().String()
}

func pack(cat Category, key ...deck.Rank) HandRank {
	h := HandRank(cat) << 20
	shift := 16
	for _, r := range key {
		h |= HandRank(r) << shift
		shift -= 4
	}
	return h
}
