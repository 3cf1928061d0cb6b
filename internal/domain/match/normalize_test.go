package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercase", "Mona Lisa", "mona lisa"},
		{"leading article", "The Starry Night", "starry night"},
		{"inner article", "Portrait of a Lady", "portrait of lady"},
		{"article an", "An Allegory", "allegory"},
		{"article not substring", "Theater of Anatomy", "theater of anatomy"},
		{"punctuation", "Saint-Germain-des-Prés, Paris", "saint germain des prés paris"},
		{"collapse whitespace", "  Water   Lilies  ", "water lilies"},
		{"only articles", "The A An", ""},
		{"digits kept", "Composition No. 10", "composition no 10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", "The Mona Lisa!", "  a  ", "L'Arlésienne", "No. 5, 1948",
		"An Experiment on a Bird in the Air Pump",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
