package domain

import "fmt"

// RuleViolation is a recoverable rule-level rejection surfaced to the acting
// player with a human-readable reason and, where applicable, the specific
// card the rule demands.
type RuleViolation struct {
	Reason       string
	RequiredCard string // canonical card id, empty when no single card is demanded
}

func (v *RuleViolation) Error() string {
	return v.Reason
}

// FindHighestBeatingSingle returns the highest-ranked single in the hand
// that legally beats the table, or simply the highest card when leading.
// Returns nil when no such single exists.
func FindHighestBeatingSingle(hand []Card, last *LastPlay) *Card {
	if len(hand) == 0 {
		return nil
	}
	if last == nil || len(last.Cards) == 0 {
		top := HighestCard(hand)
		return &top
	}

	var best *Card
	for _, c := range hand {
		c := c
		if !CanBeat([]Card{c}, last) {
			continue
		}
		if best == nil || c.Power() > best.Power() {
			best = &c
		}
	}
	return best
}

// ValidatePlayAgainstRule enforces the one-card-left constraint on a play:
// when the next player holds exactly one card and the actor plays a single,
// it must be the actor's highest single that beats the table. Plays of other
// sizes, and situations where no beating single exists, are unaffected.
func ValidatePlayAgainstRule(selected []Card, hand []Card, nextPlayerCardCount int, last *LastPlay) error {
	if nextPlayerCardCount != 1 || len(selected) != 1 {
		return nil
	}
	required := FindHighestBeatingSingle(hand, last)
	if required == nil {
		return nil
	}
	if selected[0] == *required {
		return nil
	}
	return &RuleViolation{
		Reason:       fmt.Sprintf("must play highest single (%s) when next player has 1 card left", required.ID()),
		RequiredCard: required.ID(),
	}
}

// ValidatePassAgainstRule enforces pass legality. Passing while leading is
// unconditionally invalid. When the next player holds exactly one card and a
// single is on the table, the actor must block with their highest beating
// single if they hold one.
func ValidatePassAgainstRule(hand []Card, nextPlayerCardCount int, last *LastPlay) error {
	if last == nil || len(last.Cards) == 0 {
		return &RuleViolation{Reason: "cannot pass while leading"}
	}
	if nextPlayerCardCount != 1 || len(last.Cards) != 1 {
		return nil
	}
	if required := FindHighestBeatingSingle(hand, last); required != nil {
		return &RuleViolation{
			Reason:       fmt.Sprintf("must play highest single (%s) when next player has 1 card left", required.ID()),
			RequiredCard: required.ID(),
		}
	}
	return nil
}
