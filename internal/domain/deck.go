package domain

import "sort"

// NewDeck returns the full 52-card deck ordered by ascending power.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for r := Three; r <= Two; r++ {
		for s := Diamonds; s <= Spades; s++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// SortCards orders cards in place by ascending power.
func SortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Power() < cards[j].Power()
	})
}

// SortedCopy returns a new slice with the cards sorted by ascending power.
func SortedCopy(cards []Card) []Card {
	out := append([]Card(nil), cards...)
	SortCards(out)
	return out
}

// HighestCard returns the card with the greatest power. The input must be
// non-empty.
func HighestCard(cards []Card) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Power() > best.Power() {
			best = c
		}
	}
	return best
}

// LowestCard returns the card with the least power. The input must be
// non-empty.
func LowestCard(cards []Card) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Power() < best.Power() {
			best = c
		}
	}
	return best
}

// ContainsAll reports whether every card in subset appears in cards.
// A single deck holds no duplicates, so set semantics suffice.
func ContainsAll(cards []Card, subset []Card) bool {
	have := make(map[Card]bool, len(cards))
	for _, c := range cards {
		have[c] = true
	}
	for _, c := range subset {
		if !have[c] {
			return false
		}
	}
	return true
}

// RemoveCards returns hand with the specified cards removed.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	drop := make(map[Card]bool, len(toRemove))
	for _, c := range toRemove {
		drop[c] = true
	}

	updated := make([]Card, 0, len(hand))
	for _, c := range hand {
		if drop[c] {
			delete(drop, c)
			continue
		}
		updated = append(updated, c)
	}
	return updated
}
