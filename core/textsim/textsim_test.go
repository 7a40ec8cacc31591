package textsim

import (
	"math"
	"testing"
)

func TestEditSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "apple", "apple", 1.0},
		{"both empty", "", "", 1.0},
		{"left empty", "", "apple", 0.0},
		{"right empty", "apple", "", 0.0},
		{"one substitution", "cat", "bat", 1.0 - 1.0/3.0},
		{"disjoint", "abc", "xyz", 0.0},
		{"prefix", "cats", "cat", 1.0 - 1.0/4.0},
		{"multibyte runes", "müde", "mude", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EditSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EditSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEditSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"pome", "apple"},
		{"fruit", "fruits"},
		{"дом", "дома"},
	}
	for _, p := range pairs {
		if EditSimilarity(p[0], p[1]) != EditSimilarity(p[1], p[0]) {
			t.Errorf("EditSimilarity not symmetric for %q, %q", p[0], p[1])
		}
	}
}

func TestIsSingleWord(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"apple", true},
		{"apple pie", false},
		{"  apple  ", true},
		{"", true},
	}

	for _, tt := range tests {
		if got := IsSingleWord(tt.text); got != tt.want {
			t.Errorf("IsSingleWord(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
