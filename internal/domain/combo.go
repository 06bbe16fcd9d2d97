package domain

// ComboType is the closed enumeration of Big Two combination types.
type ComboType int

const (
	ComboInvalid ComboType = iota
	ComboSingle
	ComboPair
	ComboTriple
	ComboStraight
	ComboFlush
	ComboFullHouse
	ComboFourOfAKind
	ComboStraightFlush
)

// Strength returns the cross-type ordering rank 1-8 (Single weakest,
// StraightFlush strongest). Invalid is 0.
func (t ComboType) Strength() int {
	return int(t)
}

func (t ComboType) String() string {
	switch t {
	case ComboSingle:
		return "single"
	case ComboPair:
		return "pair"
	case ComboTriple:
		return "triple"
	case ComboStraight:
		return "straight"
	case ComboFlush:
		return "flush"
	case ComboFullHouse:
		return "full_house"
	case ComboFourOfAKind:
		return "four_of_a_kind"
	case ComboStraightFlush:
		return "straight_flush"
	default:
		return "invalid"
	}
}

// Combo is a classified group of cards. It is recomputed from its cards on
// demand and never stored independently of them.
type Combo struct {
	Type  ComboType
	Cards []Card // sorted ascending by power
	// Value is the same-type comparison key: the power of the determining
	// card for most types, the triple rank for full houses and the quad
	// rank for four of a kind (suits never break those ties).
	Value int
}

// straightWindows is the whitelist of the 10 legal five-rank straight
// sequences, ordered weakest to strongest. The last rank of each window is
// the top of the sequence, which carries the combo's comparison value.
// A 2 may only terminate 23456; wraparounds like JQKA2 do not exist.
var straightWindows = [10][5]Rank{
	{Ace, Two, Three, Four, Five},
	{Two, Three, Four, Five, Six},
	{Three, Four, Five, Six, Seven},
	{Four, Five, Six, Seven, Eight},
	{Five, Six, Seven, Eight, Nine},
	{Six, Seven, Eight, Nine, Ten},
	{Seven, Eight, Nine, Ten, Jack},
	{Eight, Nine, Ten, Jack, Queen},
	{Nine, Ten, Jack, Queen, King},
	{Ten, Jack, Queen, King, Ace},
}

// matchStraightWindow compares the five ranks, as an unordered set, against
// the whitelist and returns the matching window index.
func matchStraightWindow(cards []Card) (int, bool) {
	if len(cards) != 5 {
		return 0, false
	}
	have := make(map[Rank]bool, 5)
	for _, c := range cards {
		if have[c.Rank] {
			return 0, false
		}
		have[c.Rank] = true
	}
	for w, window := range straightWindows {
		all := true
		for _, r := range window {
			if !have[r] {
				all = false
				break
			}
		}
		if all {
			return w, true
		}
	}
	return 0, false
}

// windowTopCard returns the card holding the top rank of the given window.
func windowTopCard(cards []Card, window int) Card {
	top := straightWindows[window][4]
	for _, c := range cards {
		if c.Rank == top {
			return c
		}
	}
	// Unreachable for a matched window.
	return HighestCard(cards)
}

func allSameSuit(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

func rankCounts(cards []Card) map[Rank]int {
	counts := make(map[Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

// Classify determines the combo type of 1, 2, 3 or 5 cards. Any other size,
// or a group matching no type, classifies Invalid; classification never
// fails harder than that.
func Classify(cards []Card) Combo {
	sorted := SortedCopy(cards)

	switch len(sorted) {
	case 1:
		return Combo{Type: ComboSingle, Cards: sorted, Value: sorted[0].Power()}
	case 2:
		if sorted[0].Rank == sorted[1].Rank {
			return Combo{Type: ComboPair, Cards: sorted, Value: sorted[1].Power()}
		}
	case 3:
		if sorted[0].Rank == sorted[1].Rank && sorted[1].Rank == sorted[2].Rank {
			return Combo{Type: ComboTriple, Cards: sorted, Value: sorted[2].Power()}
		}
	case 5:
		return classifyFive(sorted)
	}
	return Combo{Type: ComboInvalid, Cards: sorted}
}

// classifyFive evaluates the five-card families in precedence order, first
// match wins: straight flush > four of a kind > full house > flush > straight.
func classifyFive(sorted []Card) Combo {
	window, isStraight := matchStraightWindow(sorted)
	flush := allSameSuit(sorted)

	if isStraight && flush {
		return Combo{Type: ComboStraightFlush, Cards: sorted, Value: windowTopCard(sorted, window).Power()}
	}

	counts := rankCounts(sorted)
	var quadRank, tripleRank, pairRank Rank
	quadRank, tripleRank, pairRank = -1, -1, -1
	for r, n := range counts {
		switch n {
		case 4:
			quadRank = r
		case 3:
			tripleRank = r
		case 2:
			pairRank = r
		}
	}

	if quadRank >= 0 {
		return Combo{Type: ComboFourOfAKind, Cards: sorted, Value: int(quadRank)}
	}
	if tripleRank >= 0 && pairRank >= 0 {
		return Combo{Type: ComboFullHouse, Cards: sorted, Value: int(tripleRank)}
	}
	if flush {
		return Combo{Type: ComboFlush, Cards: sorted, Value: sorted[4].Power()}
	}
	if isStraight {
		return Combo{Type: ComboStraight, Cards: sorted, Value: windowTopCard(sorted, window).Power()}
	}
	return Combo{Type: ComboInvalid, Cards: sorted}
}
