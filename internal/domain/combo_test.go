package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want ComboType
	}{
		{name: "single", ids: []string{"3D"}, want: ComboSingle},
		{name: "pair", ids: []string{"7D", "7S"}, want: ComboPair},
		{name: "mismatched pair", ids: []string{"7D", "8S"}, want: ComboInvalid},
		{name: "triple", ids: []string{"QD", "QH", "QS"}, want: ComboTriple},
		{name: "mismatched triple", ids: []string{"QD", "QH", "KS"}, want: ComboInvalid},
		{name: "straight mixed suits", ids: []string{"4D", "5H", "6C", "7S", "8D"}, want: ComboStraight},
		{name: "low straight A2345", ids: []string{"AD", "2H", "3C", "4S", "5D"}, want: ComboStraight},
		{name: "straight 23456", ids: []string{"2D", "3H", "4C", "5S", "6D"}, want: ComboStraight},
		{name: "top straight 10JQKA", ids: []string{"10D", "JH", "QC", "KS", "AD"}, want: ComboStraight},
		{name: "no wraparound JQKA2", ids: []string{"JD", "QH", "KC", "AS", "2D"}, want: ComboInvalid},
		{name: "flush", ids: []string{"3H", "6H", "9H", "JH", "KH"}, want: ComboFlush},
		{name: "full house", ids: []string{"9D", "9H", "9S", "4C", "4D"}, want: ComboFullHouse},
		{name: "four of a kind", ids: []string{"6D", "6C", "6H", "6S", "JD"}, want: ComboFourOfAKind},
		{name: "straight flush", ids: []string{"4H", "5H", "6H", "7H", "8H"}, want: ComboStraightFlush},
		{name: "royal straight flush", ids: []string{"10S", "JS", "QS", "KS", "AS"}, want: ComboStraightFlush},
		{name: "five random cards", ids: []string{"3D", "6H", "9C", "JS", "KD"}, want: ComboInvalid},
		{name: "four cards", ids: []string{"6D", "6C", "6H", "6S"}, want: ComboInvalid},
		{name: "empty", ids: nil, want: ComboInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo := Classify(mustCards(t, tt.ids...))
			if combo.Type != tt.want {
				t.Errorf("Classify(%v).Type = %v, want %v", tt.ids, combo.Type, tt.want)
			}
		})
	}
}

// Every 5-card group must classify to exactly one tag, flush-straight
// overlaps resolving to straight flush.
func TestClassifyFivePrecedence(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want ComboType
	}{
		{name: "straight flush wins over flush", ids: []string{"5C", "6C", "7C", "8C", "9C"}, want: ComboStraightFlush},
		{name: "flush that is not a straight", ids: []string{"5C", "6C", "7C", "8C", "10C"}, want: ComboFlush},
		{name: "straight that is not a flush", ids: []string{"5C", "6D", "7C", "8C", "9C"}, want: ComboStraight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(mustCards(t, tt.ids...)).Type; got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyValueUsesWindowTop(t *testing.T) {
	// A2345's comparison card is the 5, not the 2, so it sits below every
	// other straight.
	low := Classify(mustCards(t, "AD", "2H", "3C", "4S", "5D"))
	mid := Classify(mustCards(t, "2D", "3H", "4C", "5S", "6D"))
	top := Classify(mustCards(t, "10D", "JH", "QC", "KS", "AH"))
	if low.Value >= mid.Value {
		t.Errorf("A2345 value %d should be below 23456 value %d", low.Value, mid.Value)
	}
	if mid.Value >= top.Value {
		t.Errorf("23456 value %d should be below 10JQKA value %d", mid.Value, top.Value)
	}
}

func TestComboStrengthOrdering(t *testing.T) {
	order := []ComboType{
		ComboSingle, ComboPair, ComboTriple, ComboStraight,
		ComboFlush, ComboFullHouse, ComboFourOfAKind, ComboStraightFlush,
	}
	for i, typ := range order {
		if typ.Strength() != i+1 {
			t.Errorf("%v strength = %d, want %d", typ, typ.Strength(), i+1)
		}
	}
	if ComboInvalid.Strength() != 0 {
		t.Errorf("invalid strength = %d, want 0", ComboInvalid.Strength())
	}
}
