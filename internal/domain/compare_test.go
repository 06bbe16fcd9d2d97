package domain

import "testing"

func lastPlayOf(t *testing.T, seat int, ids ...string) *LastPlay {
	t.Helper()
	return NewLastPlay(mustCards(t, ids...), seat)
}

func TestCanBeatLeading(t *testing.T) {
	combos := [][]string{
		{"3D"},
		{"5D", "5H"},
		{"8C", "8H", "8S"},
		{"4D", "5H", "6C", "7S", "8D"},
		{"3H", "6H", "9H", "JH", "KH"},
		{"9D", "9H", "9S", "4C", "4D"},
		{"6D", "6C", "6H", "6S", "JD"},
		{"4H", "5H", "6H", "7H", "8H"},
	}
	for _, ids := range combos {
		if !CanBeat(mustCards(t, ids...), nil) {
			t.Errorf("CanBeat(%v, nil) = false, want true", ids)
		}
	}
}

func TestCanBeat(t *testing.T) {
	tests := []struct {
		name string
		cand []string
		last []string
		want bool
	}{
		{name: "higher rank single", cand: []string{"5D"}, last: []string{"4S"}, want: true},
		{name: "higher suit single", cand: []string{"9S"}, last: []string{"9H"}, want: true},
		{name: "lower single", cand: []string{"4D"}, last: []string{"4S"}, want: false},
		{name: "two beats ace", cand: []string{"2D"}, last: []string{"AS"}, want: true},
		{name: "size mismatch", cand: []string{"2D", "2H"}, last: []string{"AS"}, want: false},
		{name: "invalid candidate", cand: []string{"2D", "AH"}, last: []string{"9D", "9H"}, want: false},
		{name: "higher pair by rank", cand: []string{"10D", "10C"}, last: []string{"9H", "9S"}, want: true},
		{name: "higher pair by suit", cand: []string{"9C", "9S"}, last: []string{"9D", "9H"}, want: true},
		{name: "lower pair by suit", cand: []string{"9D", "9C"}, last: []string{"9H", "9S"}, want: false},
		{name: "higher triple", cand: []string{"JD", "JC", "JH"}, last: []string{"10D", "10C", "10H"}, want: true},
		{
			name: "higher straight window",
			cand: []string{"5D", "6H", "7C", "8S", "9D"},
			last: []string{"4D", "5H", "6C", "7S", "8H"},
			want: true,
		},
		{
			name: "same window higher top suit",
			cand: []string{"4D", "5H", "6C", "7S", "8S"},
			last: []string{"4C", "5D", "6H", "7H", "8H"},
			want: true,
		},
		{
			name: "A2345 loses to 23456",
			cand: []string{"AD", "2H", "3C", "4S", "5D"},
			last: []string{"2D", "3H", "4C", "5S", "6D"},
			want: false,
		},
		{
			name: "flush beats straight cross type",
			cand: []string{"3H", "6H", "9H", "JH", "KH"},
			last: []string{"10D", "JC", "QC", "KS", "AD"},
			want: true,
		},
		{
			name: "straight cannot beat flush",
			cand: []string{"10D", "JD", "QC", "KS", "AD"},
			last: []string{"3H", "6H", "9H", "JH", "KH"},
			want: false,
		},
		{
			name: "full house beats flush",
			cand: []string{"4D", "4H", "4S", "9C", "9D"},
			last: []string{"3H", "6H", "9H", "JH", "KH"},
			want: true,
		},
		{
			name: "full house compares triple only",
			cand: []string{"10D", "10H", "10S", "3C", "3D"},
			last: []string{"9D", "9H", "9S", "AC", "AD"},
			want: true,
		},
		{
			name: "quad beats full house",
			cand: []string{"5D", "5C", "5H", "5S", "3D"},
			last: []string{"AD", "AH", "AS", "KC", "KD"},
			want: true,
		},
		{
			name: "quad compares quad rank ignoring kicker",
			cand: []string{"8D", "8C", "8H", "8S", "3D"},
			last: []string{"7D", "7C", "7H", "7S", "2S"},
			want: true,
		},
		{
			name: "straight flush beats quad",
			cand: []string{"4H", "5H", "6H", "7H", "8H"},
			last: []string{"AD", "AC", "AH", "AS", "KD"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := lastPlayOf(t, 0, tt.last...)
			if got := CanBeat(mustCards(t, tt.cand...), last); got != tt.want {
				t.Errorf("CanBeat(%v, %v) = %v, want %v", tt.cand, tt.last, got, tt.want)
			}
		})
	}
}

// For disjoint same-type, same-size combos exactly one direction of the
// beats relation holds.
func TestCanBeatAntisymmetry(t *testing.T) {
	pairs := [][2][]string{
		{{"4D"}, {"9S"}},
		{{"5D", "5H"}, {"JC", "JS"}},
		{{"6D", "6C", "6H"}, {"KD", "KC", "KH"}},
		{{"4D", "5H", "6C", "7S", "8D"}, {"9D", "10H", "JC", "QS", "KD"}},
		{{"3H", "5H", "7H", "9H", "JH"}, {"4S", "6S", "8S", "10S", "QS"}},
	}
	for _, pair := range pairs {
		a, b := mustCards(t, pair[0]...), mustCards(t, pair[1]...)
		ab := CanBeat(a, NewLastPlay(b, 0))
		ba := CanBeat(b, NewLastPlay(a, 0))
		if ab == ba {
			t.Errorf("beats relation not antisymmetric for %v / %v: %v, %v", pair[0], pair[1], ab, ba)
		}
	}
}
