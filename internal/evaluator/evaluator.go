package evaluator

// 7-card hand evaluator built on per-suit rank bitmasks. Quads, trips
// and pairs fall out of bitwise intersections of the four suit masks,
// straights out of a shift cascade, so no 5-of-7 subset enumeration is
// needed.

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/lox/equity-cli/internal/deck"
)

// ErrInvalidHand is returned for inputs that are not exactly 7
// distinct cards.
var ErrInvalidHand = errors.New("invalid hand")

const handSize = 7

// Evaluate7 returns the rank of the best 5-card hand within the given
// 7 cards.
func Evaluate7(cards []deck.Card) (HandRank, error) {
	if len(cards) != handSize {
		return 0, fmt.Errorf("%w: want %d cards, got %d", ErrInvalidHand, handSize, len(cards))
	}

	var suits [4]uint16
	var seen deck.CardSet
	for _, card := range cards {
		if seen.Contains(card) {
			return 0, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, card)
		}
		seen.Add(card)
		suits[card.Suit] |= 1 << uint(card.Rank-deck.Two)
	}

	return rankFromMasks(suits), nil
}

func rankFromMasks(suits [4]uint16) HandRank {
	s0, s1, s2, s3 := suits[0], suits[1], suits[2], suits[3]
	rankMask := s0 | s1 | s2 | s3

	// At most one suit can hold five of seven cards.
	var flushMask uint16
	for _, sm := range suits {
		if bits.OnesCount16(sm) >= 5 {
			flushMask = sm
			break
		}
	}

	if flushMask != 0 {
		if high := straightHigh(flushMask); high > 0 {
			return pack(StraightFlush, high)
		}
	}

	quads := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	trips := tripCandidates &^ quads
	pairs := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quads != 0 {
		quad := topRank(quads)
		kicker := topRank(rankMask &^ rankBit(quad))
		return pack(FourOfAKind, quad, kicker)
	}

	if trips != 0 {
		trip := topRank(trips)
		// A second set of trips supplies the pair in a 3+3 board.
		if pairCandidates := pairs | (trips &^ rankBit(trip)); pairCandidates != 0 {
			return pack(FullHouse, trip, topRank(pairCandidates))
		}
	}

	if flushMask != 0 {
		k := topRanks(flushMask, 5)
		return pack(Flush, k[0], k[1], k[2], k[3], k[4])
	}

	if high := straightHigh(rankMask); high > 0 {
		return pack(Straight, high)
	}

	if trips != 0 {
		trip := topRank(trips)
		k := topRanks(rankMask&^rankBit(trip), 2)
		return pack(ThreeOfAKind, trip, k[0], k[1])
	}

	if pairs != 0 {
		highPair := topRank(pairs)
		if rest := pairs &^ rankBit(highPair); rest != 0 {
			lowPair := topRank(rest)
			// A third pair's rank stays eligible as the kicker.
			kicker := topRank(rankMask &^ (rankBit(highPair) | rankBit(lowPair)))
			return pack(TwoPair, highPair, lowPair, kicker)
		}
		k := topRanks(rankMask&^rankBit(highPair), 3)
		return pack(Pair, highPair, k[0], k[1], k[2])
	}

	k := topRanks(rankMask, 5)
	return pack(HighCard, k[0], k[1], k[2], k[3], k[4])
}

// straightHigh returns the high card of the best straight in the rank
// mask, or 0 if none. The wheel (A-2-3-4-5) reports Five, keeping it
// below the 6-high straight.
func straightHigh(mask uint16) deck.Rank {
	const wheelMask = 0x100F // Ace + 2-3-4-5

	// The cascade leaves a bit set wherever five consecutive ranks start.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		low := bits.Len16(seq) - 1
		return deck.Rank(low) + deck.Six
	}

	if mask&wheelMask == wheelMask {
		return deck.Five
	}

	return 0
}

// topRank returns the highest rank present in a non-empty rank mask.
func topRank(mask uint16) deck.Rank {
	return deck.Rank(bits.Len16(mask)-1) + deck.Two
}

// topRanks returns the n highest ranks in the mask in descending order.
// The mask must contain at least n ranks.
func topRanks(mask uint16, n int) []deck.Rank {
	ranks := make([]deck.Rank, 0, n)
	for len(ranks) < n {
		top := topRank(mask)
		ranks = append(ranks, top)
		mask &^= rankBit(top)
	}
	return ranks
}

func rankBit(r deck.Rank) uint16 {
	return 1 << uint(r-deck.Two)
}
