package match

import "testing"

func TestRatio_Identical(t *testing.T) {
	if got := Ratio("mona lisa", "mona lisa"); got != 100 {
		t.Errorf("Ratio of identical strings = %d, want 100", got)
	}
}

func TestRatio_BothEmpty(t *testing.T) {
	if got := Ratio("", ""); got != 100 {
		t.Errorf("Ratio(\"\", \"\") = %d, want 100", got)
	}
}

func TestRatio_OneEmpty(t *testing.T) {
	if got := Ratio("starry night", ""); got != 0 {
		t.Errorf("Ratio against empty = %d, want 0", got)
	}
}

func TestRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"leonardo davinci", "leonardo da vinci"},
		{"water lilies", "waterloo"},
		{"mona lisa", "monna lisa"},
		{"", "x"},
		{"café terrace", "cafe terrace"},
	}
	for _, p := range pairs {
		ab, ba := Ratio(p[0], p[1]), Ratio(p[1], p[0])
		if ab != ba {
			t.Errorf("Ratio(%q, %q) = %d but Ratio(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestRatio_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"}, {"abc", "xyz"}, {"short", "a much longer string entirely"},
		{"same", "same"}, {"", ""},
	}
	for _, p := range pairs {
		got := Ratio(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Ratio(%q, %q) = %d, out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestRatio_TypoStillScoresHigh(t *testing.T) {
	// Missing space: one edit across 33 runes.
	got := Ratio("leonardo davinci", "leonardo da vinci")
	if got <= 80 {
		t.Errorf("Ratio for near-identical names = %d, want > 80", got)
	}
}

func TestRatio_KnownValues(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		// distance 8, combined length 10
		{"ab", "zzzzzzzz", 20},
		// distance 3, combined length 6
		{"abc", "xyz", 50},
		// distance 3, combined length 13, 76.9 rounds to 77
		{"kitten", "sitting", 77},
	}
	for _, tc := range tests {
		if got := Ratio(tc.a, tc.b); got != tc.want {
			t.Errorf("Ratio(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
