package domain

// IsHighestPossiblePlay reports whether, at the moment a play is made, no
// future play by anyone can beat it using the cards not yet played. The
// played ledger must not yet include the candidate play itself: the same
// physical card (say 2S) is highest-remaining the moment it is first played,
// while a later 2H only becomes highest-remaining once 2S is in the ledger.
func IsHighestPossiblePlay(play []Card, played []Card) bool {
	combo := Classify(play)
	switch combo.Type {
	case ComboSingle:
		return isHighestSingle(combo.Cards[0], played)
	case ComboPair:
		return isHighestPair(combo.Cards, played)
	case ComboTriple:
		return isHighestTriple(combo.Cards, played)
	case ComboStraight, ComboFlush, ComboFullHouse, ComboFourOfAKind, ComboStraightFlush:
		return isHighestFiveCard(combo, played)
	default:
		return false
	}
}

// remainingCards returns the full deck minus the played ledger minus any
// explicitly excluded cards.
func remainingCards(played []Card, exclude []Card) []Card {
	gone := make(map[Card]bool, len(played)+len(exclude))
	for _, c := range played {
		gone[c] = true
	}
	for _, c := range exclude {
		gone[c] = true
	}

	remaining := make([]Card, 0, 52-len(gone))
	for _, c := range NewDeck() {
		if !gone[c] {
			remaining = append(remaining, c)
		}
	}
	return remaining
}

func isHighestSingle(card Card, played []Card) bool {
	remaining := remainingCards(played, nil)
	if len(remaining) == 0 {
		return false
	}
	return card.Power() == HighestCard(remaining).Power()
}

// isHighestPair checks every pair formable from the remainder (the candidate
// pair's own cards excluded). A rival pair wins on rank, or on top suit at
// equal rank.
func isHighestPair(pair []Card, played []Card) bool {
	pool := remainingCards(played, pair)
	candRank := pair[0].Rank
	candTopSuit := pair[1].Suit // pair is power-sorted, so [1] carries the top suit

	bySuit := make(map[Rank][]Suit)
	for _, c := range pool {
		bySuit[c.Rank] = append(bySuit[c.Rank], c.Suit)
	}
	for rank, suits := range bySuit {
		if len(suits) < 2 {
			continue
		}
		if rank > candRank {
			return false
		}
		if rank == candRank {
			for _, s := range suits {
				if s > candTopSuit {
					return false
				}
			}
		}
	}
	return true
}

// isHighestTriple checks rank only; suits never decide between triples.
func isHighestTriple(triple []Card, played []Card) bool {
	pool := remainingCards(played, triple)
	candRank := triple[0].Rank
	for rank, n := range rankCounts(pool) {
		if n >= 3 && rank > candRank {
			return false
		}
	}
	return true
}

// isHighestFiveCard performs the two-phase check for five-card combos.
//
// Phase 1 asks whether any strictly stronger combo type is still assemblable
// from the full played-cards-excluded pool. The candidate's own cards are
// deliberately NOT removed from that pool: a stronger type could reuse the
// same ranks through different physical cards, and the stronger-type check
// must see them. Phase 2, reached only when nothing stronger can form, asks
// whether a same-type play could still outrank the candidate; there the
// candidate's own cards ARE excluded. The asymmetry is intentional.
func isHighestFiveCard(combo Combo, played []Card) bool {
	strongerPool := remainingCards(played, nil)
	sameTypePool := remainingCards(played, combo.Cards)

	strength := combo.Type.Strength()
	if strength < ComboStraightFlush.Strength() && canFormStraightFlush(strongerPool) {
		return false
	}
	if strength < ComboFourOfAKind.Strength() && canFormFourOfAKind(strongerPool) {
		return false
	}
	if strength < ComboFullHouse.Strength() && canFormFullHouse(strongerPool) {
		return false
	}
	if strength < ComboFlush.Strength() && canFormFlush(strongerPool) {
		return false
	}

	switch combo.Type {
	case ComboStraightFlush:
		return isHighestStraightFlush(combo, sameTypePool)
	case ComboFourOfAKind:
		return isHighestFourOfAKind(combo, sameTypePool)
	case ComboFullHouse:
		return isHighestFullHouse(combo, sameTypePool)
	case ComboFlush:
		return isHighestFlush(combo, sameTypePool)
	default:
		return isHighestStraight(combo, sameTypePool)
	}
}

func canFormStraight(pool []Card) bool {
	have := make(map[Rank]bool, len(pool))
	for _, c := range pool {
		have[c.Rank] = true
	}
	for _, window := range straightWindows {
		all := true
		for _, r := range window {
			if !have[r] {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func canFormFlush(pool []Card) bool {
	suitCounts := make(map[Suit]int, 4)
	for _, c := range pool {
		suitCounts[c.Suit]++
		if suitCounts[c.Suit] >= 5 {
			return true
		}
	}
	return false
}

func canFormFullHouse(pool []Card) bool {
	counts := rankCounts(pool)
	for tripleRank, n := range counts {
		if n < 3 {
			continue
		}
		for pairRank, m := range counts {
			if pairRank != tripleRank && m >= 2 {
				return true
			}
		}
	}
	return false
}

func canFormFourOfAKind(pool []Card) bool {
	for _, n := range rankCounts(pool) {
		if n >= 4 {
			return true
		}
	}
	return false
}

// straightFlushFormable reports whether every card of the window exists in
// the pool in the given suit.
func straightFlushFormable(pool []Card, window int, suit Suit) bool {
	have := make(map[Card]bool, len(pool))
	for _, c := range pool {
		have[c] = true
	}
	for _, r := range straightWindows[window] {
		if !have[Card{Rank: r, Suit: suit}] {
			return false
		}
	}
	return true
}

func canFormStraightFlush(pool []Card) bool {
	for w := range straightWindows {
		for s := Diamonds; s <= Spades; s++ {
			if straightFlushFormable(pool, w, s) {
				return true
			}
		}
	}
	return false
}

// isHighestStraightFlush fails when a same-suit higher-window straight flush
// remains assemblable, or, for a non-royal candidate, when the same window
// remains assemblable in a higher suit. A royal (10-J-Q-K-A) flush in spades
// is unconditionally supreme.
func isHighestStraightFlush(combo Combo, pool []Card) bool {
	window, _ := matchStraightWindow(combo.Cards)
	suit := combo.Cards[0].Suit
	royal := window == len(straightWindows)-1

	if royal && suit == Spades {
		return true
	}
	for w := window + 1; w < len(straightWindows); w++ {
		if straightFlushFormable(pool, w, suit) {
			return false
		}
	}
	if !royal {
		for s := suit + 1; s <= Spades; s++ {
			if straightFlushFormable(pool, window, s) {
				return false
			}
		}
	}
	return true
}

// isHighestFourOfAKind compares quad ranks only; only the highest assemblable
// quad rank counts against the candidate.
func isHighestFourOfAKind(combo Combo, pool []Card) bool {
	candRank := Rank(combo.Value)
	for rank, n := range rankCounts(pool) {
		if n >= 4 && rank > candRank {
			return false
		}
	}
	return true
}

// fullHousePairRank returns the rank of the kicker pair in a classified full
// house.
func fullHousePairRank(cards []Card) Rank {
	for r, n := range rankCounts(cards) {
		if n == 2 {
			return r
		}
	}
	return -1
}

// isHighestFullHouse finds the highest triple rank still assemblable (with a
// compatible pair available) and compares. A tie on the triple rank falls
// through to the highest compatible pair rank.
func isHighestFullHouse(combo Combo, pool []Card) bool {
	candTriple := Rank(combo.Value)
	candPair := fullHousePairRank(combo.Cards)

	counts := rankCounts(pool)
	bestTriple := Rank(-1)
	for tripleRank, n := range counts {
		if n < 3 || tripleRank <= bestTriple {
			continue
		}
		for pairRank, m := range counts {
			if pairRank != tripleRank && m >= 2 {
				bestTriple = tripleRank
				break
			}
		}
	}

	if bestTriple < 0 || candTriple > bestTriple {
		return true
	}
	if candTriple < bestTriple {
		return false
	}

	bestPair := Rank(-1)
	for pairRank, m := range counts {
		if pairRank != bestTriple && m >= 2 && pairRank > bestPair {
			bestPair = pairRank
		}
	}
	return candPair >= bestPair
}

// isHighestFlush compares the candidate, within its own suit, against the
// best five-card subset of that suit's remaining cards, position by position
// from the top.
func isHighestFlush(combo Combo, pool []Card) bool {
	suit := combo.Cards[0].Suit
	var suited []Card
	for _, c := range pool {
		if c.Suit == suit {
			suited = append(suited, c)
		}
	}
	if len(suited) < 5 {
		return true
	}

	SortCards(suited)
	best := suited[len(suited)-5:]
	// Both sides ascending; compare from the high end down.
	for i := 4; i >= 0; i-- {
		if best[i].Rank > combo.Cards[i].Rank {
			return false
		}
		if best[i].Rank < combo.Cards[i].Rank {
			return true
		}
	}
	return true
}

// isHighestStraight fails when any higher window is assemblable in any suit
// mix. Otherwise rivals assembling the same window are compared by the suit
// available for the window's top rank.
func isHighestStraight(combo Combo, pool []Card) bool {
	window, _ := matchStraightWindow(combo.Cards)

	have := make(map[Rank]bool, len(pool))
	for _, c := range pool {
		have[c.Rank] = true
	}
	formable := func(w int) bool {
		for _, r := range straightWindows[w] {
			if !have[r] {
				return false
			}
		}
		return true
	}

	for w := window + 1; w < len(straightWindows); w++ {
		if formable(w) {
			return false
		}
	}
	if !formable(window) {
		return true
	}

	topRank := straightWindows[window][4]
	bestAltSuit := Suit(-1)
	for _, c := range pool {
		if c.Rank == topRank && c.Suit > bestAltSuit {
			bestAltSuit = c.Suit
		}
	}
	return windowTopCard(combo.Cards, window).Suit >= bestAltSuit
}
