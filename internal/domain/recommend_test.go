package domain

import (
	"reflect"
	"testing"
)

func TestFindRecommendedPlayFirstPlay(t *testing.T) {
	hand := mustCards(t, "7H", "3D", "KS")
	got := FindRecommendedPlay(hand, nil, true)
	if !reflect.DeepEqual(got, mustCards(t, "3D")) {
		t.Errorf("first play = %v, want [3D]", got)
	}

	// No 3 of diamonds in hand: the caller is responsible, return nil.
	if got := FindRecommendedPlay(mustCards(t, "7H", "KS"), nil, true); got != nil {
		t.Errorf("first play without 3D = %v, want nil", got)
	}
}

func TestFindRecommendedPlayLeading(t *testing.T) {
	hand := mustCards(t, "KS", "7H", "4C", "9D")
	got := FindRecommendedPlay(hand, nil, false)
	if !reflect.DeepEqual(got, mustCards(t, "4C")) {
		t.Errorf("leading play = %v, want lowest single [4C]", got)
	}
}

func TestFindRecommendedPlaySingles(t *testing.T) {
	tests := []struct {
		name string
		hand []string
		last []string
		want []string // nil means pass
	}{
		{name: "lowest beating single", hand: []string{"3D", "8H", "9C", "2S"}, last: []string{"8D"}, want: []string{"8H"}},
		{name: "skips non-beating cards", hand: []string{"3D", "4H", "JC"}, last: []string{"10S"}, want: []string{"JC"}},
		{name: "no beating single", hand: []string{"3D", "4H", "5C"}, last: []string{"2S"}, want: nil},
		{name: "empty hand", hand: nil, last: []string{"4D"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := lastPlayOf(t, 0, tt.last...)
			got := FindRecommendedPlay(mustCards(t, tt.hand...), last, false)
			var want []Card
			if tt.want != nil {
				want = mustCards(t, tt.want...)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("recommended = %v, want %v", got, want)
			}
		})
	}
}

// When several beating singles exist the weakest one is always returned.
func TestFindRecommendedPlayMinimality(t *testing.T) {
	hand := mustCards(t, "9H", "JD", "QS", "2C")
	last := lastPlayOf(t, 0, "9D")
	got := FindRecommendedPlay(hand, last, false)
	if !reflect.DeepEqual(got, mustCards(t, "9H")) {
		t.Errorf("recommended = %v, want weakest beating single [9H]", got)
	}
}

func TestFindRecommendedPlayPairsAndTriples(t *testing.T) {
	tests := []struct {
		name string
		hand []string
		last []string
		want []string
	}{
		{
			name: "weakest beating pair",
			hand: []string{"6D", "6H", "10C", "10S", "2D", "2H"},
			last: []string{"9C", "9S"},
			want: []string{"10C", "10S"},
		},
		{
			name: "pair beaten on suit alone",
			hand: []string{"9C", "9S"},
			last: []string{"9D", "9H"},
			want: []string{"9C", "9S"},
		},
		{
			name: "no pair available",
			hand: []string{"6D", "7H", "8C"},
			last: []string{"5C", "5S"},
			want: nil,
		},
		{
			name: "weakest beating triple",
			hand: []string{"8D", "8C", "8H", "QD", "QC", "QH"},
			last: []string{"7D", "7C", "7H"},
			want: []string{"8D", "8C", "8H"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := lastPlayOf(t, 0, tt.last...)
			got := FindRecommendedPlay(mustCards(t, tt.hand...), last, false)
			var want []Card
			if tt.want != nil {
				want = mustCards(t, tt.want...)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("recommended = %v, want %v", got, want)
			}
		})
	}
}

func TestFindRecommendedPlayFiveCard(t *testing.T) {
	t.Run("weakest straight that beats", func(t *testing.T) {
		hand := mustCards(t, "5D", "6H", "7C", "8S", "9D", "10H", "JC")
		last := lastPlayOf(t, 0, "4D", "5H", "6C", "7S", "8H")
		got := FindRecommendedPlay(hand, last, false)
		combo := Classify(got)
		if combo.Type != ComboStraight {
			t.Fatalf("recommended %v classifies %v, want straight", got, combo.Type)
		}
		if !CanBeat(got, last) {
			t.Fatalf("recommended straight %v does not beat the table", got)
		}
		if top := windowTop(t, got); top != mustCard(t, "9D") {
			t.Errorf("straight top = %s, want weakest window top 9D", top)
		}
	})

	t.Run("flush when no straight beats", func(t *testing.T) {
		hand := mustCards(t, "3H", "6H", "9H", "JH", "KH", "4D")
		last := lastPlayOf(t, 0, "9D", "10H", "JC", "QS", "KD")
		got := FindRecommendedPlay(hand, last, false)
		if Classify(got).Type != ComboFlush {
			t.Fatalf("recommended %v, want a flush", got)
		}
		if !CanBeat(got, last) {
			t.Fatalf("recommended flush %v does not beat the table", got)
		}
	})

	t.Run("full house over a flush table", func(t *testing.T) {
		hand := mustCards(t, "5D", "5C", "5H", "9C", "9D")
		last := lastPlayOf(t, 0, "3H", "6H", "9H", "JH", "KH")
		got := FindRecommendedPlay(hand, last, false)
		if Classify(got).Type != ComboFullHouse {
			t.Fatalf("recommended %v, want a full house", got)
		}
	})

	t.Run("quad over a full house table", func(t *testing.T) {
		hand := mustCards(t, "6D", "6C", "6H", "6S", "3D")
		last := lastPlayOf(t, 0, "AD", "AH", "AS", "KC", "KD")
		got := FindRecommendedPlay(hand, last, false)
		if Classify(got).Type != ComboFourOfAKind {
			t.Fatalf("recommended %v, want four of a kind", got)
		}
	})

	t.Run("pass when nothing beats", func(t *testing.T) {
		hand := mustCards(t, "3D", "4H", "6C", "8S", "10D")
		last := lastPlayOf(t, 0, "4H", "5H", "6H", "7H", "8H")
		if got := FindRecommendedPlay(hand, last, false); got != nil {
			t.Errorf("recommended = %v, want nil (pass)", got)
		}
	})
}

func windowTop(t *testing.T, cards []Card) Card {
	t.Helper()
	w, ok := matchStraightWindow(cards)
	if !ok {
		t.Fatalf("%v is not a straight", cards)
	}
	return windowTopCard(cards, w)
}
