package domain

// LastPlay is the combo currently on the table that a following player must
// beat. A nil LastPlay means the acting player is leading and may play any
// valid combo (and, by rule, may never pass).
type LastPlay struct {
	Cards []Card
	Type  ComboType
	Seat  int // seat index of the player who made the play
}

// NewLastPlay captures a played combo as table state.
func NewLastPlay(cards []Card, seat int) *LastPlay {
	sorted := SortedCopy(cards)
	return &LastPlay{Cards: sorted, Type: Classify(sorted).Type, Seat: seat}
}

// CanBeat decides whether the candidate cards legally beat the play on the
// table. Leading (nil or empty last) is always legal. Otherwise the candidate
// must match the table's card count, classify to a valid combo, and win
// either on combo strength (across types) or on the type-specific tie-break
// (within a type). Equality never wins.
func CanBeat(candidate []Card, last *LastPlay) bool {
	if last == nil || len(last.Cards) == 0 {
		return true
	}
	if len(candidate) != len(last.Cards) {
		return false
	}

	cand := Classify(candidate)
	if cand.Type == ComboInvalid {
		return false
	}
	prev := Classify(last.Cards)
	if prev.Type == ComboInvalid {
		return false
	}

	if cand.Type != prev.Type {
		return cand.Type.Strength() > prev.Type.Strength()
	}
	return cand.Value > prev.Value
}
