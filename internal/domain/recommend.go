package domain

import "sort"

// ThreeOfDiamonds must be part of the very first play of a fresh game.
var ThreeOfDiamonds = Card{Rank: Three, Suit: Diamonds}

// FindRecommendedPlay returns the weakest legal play for the hand against
// the table, or nil when no legal play exists and the caller should pass.
//
// On the first play of a game it returns the 3 of Diamonds as a single (nil
// if the hand somehow lacks it). When leading it returns the lowest single.
// When following it searches for the weakest beating play of the table's
// cardinality. Callers (hints, bots) may substitute stronger plays; this is
// the engine's minimum contract.
func FindRecommendedPlay(hand []Card, last *LastPlay, firstPlay bool) []Card {
	if len(hand) == 0 {
		return nil
	}

	if firstPlay {
		for _, c := range hand {
			if c == ThreeOfDiamonds {
				return []Card{c}
			}
		}
		return nil
	}

	if last == nil || len(last.Cards) == 0 {
		return []Card{LowestCard(hand)}
	}

	sorted := SortedCopy(hand)
	switch len(last.Cards) {
	case 1:
		return findWeakestBeatingSingle(sorted, last)
	case 2:
		return findWeakestBeatingPair(sorted, last)
	case 3:
		return findWeakestBeatingTriple(sorted, last)
	case 5:
		return findWeakestBeatingFive(sorted, last)
	}
	return nil
}

func findWeakestBeatingSingle(sorted []Card, last *LastPlay) []Card {
	for _, c := range sorted {
		if CanBeat([]Card{c}, last) {
			return []Card{c}
		}
	}
	return nil
}

// rankGroups splits a power-sorted hand into per-rank groups, returned in
// ascending rank order with each group's cards in ascending suit order.
func rankGroups(sorted []Card) ([]Rank, map[Rank][]Card) {
	groups := make(map[Rank][]Card)
	var ranks []Rank
	for _, c := range sorted {
		if _, ok := groups[c.Rank]; !ok {
			ranks = append(ranks, c.Rank)
		}
		groups[c.Rank] = append(groups[c.Rank], c)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
	return ranks, groups
}

func findWeakestBeatingPair(sorted []Card, last *LastPlay) []Card {
	ranks, groups := rankGroups(sorted)
	for _, r := range ranks {
		group := groups[r]
		if len(group) < 2 {
			continue
		}
		// Pair strength is the higher card's power, so iterate the top card
		// ascending to find the weakest beating pair first.
		for j := 1; j < len(group); j++ {
			pair := []Card{group[0], group[j]}
			if CanBeat(pair, last) {
				return pair
			}
		}
	}
	return nil
}

func findWeakestBeatingTriple(sorted []Card, last *LastPlay) []Card {
	ranks, groups := rankGroups(sorted)
	for _, r := range ranks {
		group := groups[r]
		if len(group) < 3 {
			continue
		}
		triple := []Card{group[0], group[1], group[2]}
		if CanBeat(triple, last) {
			return triple
		}
	}
	return nil
}

// findWeakestBeatingFive searches the five-card sub-families weakest type
// first. Each family search already returns its own weakest beating play, so
// the first hit overall is the weakest legal answer. Straight flushes need no
// dedicated search: the straight and flush scans surface them naturally.
func findWeakestBeatingFive(sorted []Card, last *LastPlay) []Card {
	if play := findWeakestBeatingStraight(sorted, last); play != nil {
		return play
	}
	if play := findWeakestBeatingFlush(sorted, last); play != nil {
		return play
	}
	if play := findWeakestBeatingFullHouse(sorted, last); play != nil {
		return play
	}
	if play := findWeakestBeatingQuad(sorted, last); play != nil {
		return play
	}
	return nil
}

func findWeakestBeatingStraight(sorted []Card, last *LastPlay) []Card {
	ranks, groups := rankGroups(sorted)
	have := make(map[Rank]bool, len(ranks))
	for _, r := range ranks {
		have[r] = true
	}

	for w, window := range straightWindows {
		all := true
		for _, r := range window {
			if !have[r] {
				all = false
				break
			}
		}
		if !all {
			continue
		}

		top := straightWindows[w][4]
		// Lowest suits for the body; the top-of-window card decides the
		// comparison, so walk its suits ascending.
		for _, topCard := range groups[top] {
			play := make([]Card, 0, 5)
			for _, r := range window {
				if r == top {
					play = append(play, topCard)
				} else {
					play = append(play, groups[r][0])
				}
			}
			if CanBeat(play, last) {
				return play
			}
		}
	}
	return nil
}

func findWeakestBeatingFlush(sorted []Card, last *LastPlay) []Card {
	for s := Diamonds; s <= Spades; s++ {
		var suited []Card
		for _, c := range sorted {
			if c.Suit == s {
				suited = append(suited, c)
			}
		}
		if len(suited) < 5 {
			continue
		}
		// Keep the four lowest cards fixed and raise only the top card until
		// the flush beats the table.
		for k := 4; k < len(suited); k++ {
			play := append(append([]Card(nil), suited[:4]...), suited[k])
			if CanBeat(play, last) {
				return play
			}
		}
	}
	return nil
}

func findWeakestBeatingFullHouse(sorted []Card, last *LastPlay) []Card {
	ranks, groups := rankGroups(sorted)
	for _, tripleRank := range ranks {
		if len(groups[tripleRank]) < 3 {
			continue
		}
		for _, pairRank := range ranks {
			if pairRank == tripleRank || len(groups[pairRank]) < 2 {
				continue
			}
			play := make([]Card, 0, 5)
			play = append(play, groups[tripleRank][:3]...)
			play = append(play, groups[pairRank][:2]...)
			if CanBeat(play, last) {
				return play
			}
			// Full houses compare on the triple alone; the cheapest kicker
			// pair is as good as any.
			break
		}
	}
	return nil
}

func findWeakestBeatingQuad(sorted []Card, last *LastPlay) []Card {
	ranks, groups := rankGroups(sorted)
	for _, quadRank := range ranks {
		if len(groups[quadRank]) < 4 {
			continue
		}
		for _, kicker := range sorted {
			if kicker.Rank == quadRank {
				continue
			}
			play := append(append([]Card(nil), groups[quadRank]...), kicker)
			if CanBeat(play, last) {
				return play
			}
			break
		}
	}
	return nil
}
