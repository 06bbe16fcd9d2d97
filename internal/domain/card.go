package domain

import "fmt"

// Rank is a Big Two card rank. Ordering is low to high with 2 on top:
// 3 < 4 < ... < K < A < 2.
type Rank int

const (
	Three Rank = iota
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
	Two
)

// Suit ordering is Diamonds < Clubs < Hearts < Spades.
type Suit int

const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
)

var rankLabels = [...]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}

var suitLetters = [...]string{"D", "C", "H", "S"}

// Card is an immutable playing card value.
type Card struct {
	Rank Rank
	Suit Suit
}

// Power is the card's total-order key: rank primary, suit secondary.
// It is used to pick the highest card in a set and to break ties between
// equal-rank plays.
func (c Card) Power() int {
	return int(c.Rank)*10 + int(c.Suit)
}

// ID returns the canonical 2-3 character identity key, rank then suit,
// e.g. "3D", "10H", "KS". Clients and server must agree on this format
// for equality and lookups.
func (c Card) ID() string {
	return rankLabels[c.Rank] + suitLetters[c.Suit]
}

func (c Card) String() string {
	return c.ID()
}

// ParseCardID decodes a canonical card id back into a Card.
func ParseCardID(id string) (Card, error) {
	if len(id) < 2 || len(id) > 3 {
		return Card{}, fmt.Errorf("malformed card id %q", id)
	}
	rankLabel := id[:len(id)-1]
	suitLetter := id[len(id)-1:]

	rank := Rank(-1)
	for r, label := range rankLabels {
		if label == rankLabel {
			rank = Rank(r)
			break
		}
	}
	if rank < 0 {
		return Card{}, fmt.Errorf("unknown rank in card id %q", id)
	}

	for s, letter := range suitLetters {
		if letter == suitLetter {
			return Card{Rank: rank, Suit: Suit(s)}, nil
		}
	}
	return Card{}, fmt.Errorf("unknown suit in card id %q", id)
}

// ParseCardIDs decodes a list of card ids, failing on the first malformed id.
func ParseCardIDs(ids []string) ([]Card, error) {
	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		c, err := ParseCardID(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// CardIDs encodes cards into their canonical ids.
func CardIDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	return ids
}
