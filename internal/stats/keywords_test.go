package stats

import "testing"

func TestIsValidKeyword(t *testing.T) {
	cases := []struct {
		keyword string
		want    bool
	}{
		{"가족", true},
		{"운동", true},
		{"coffee", true},
		{"", false},
		{"   ", false},
		{"12345", false},
		{"!!!", false},
		{"12 34!", false},
		{"아주아주아주긴키워드임", false}, // 11 runes
		{"일상", false},         // blacklisted
		{"일상생활", false},       // blacklist by containment
		{"Today", false},      // blacklist is case-insensitive
		{"김민수", false},        // Korean surname-led name
		{"박지훈", false},        // Korean surname-led name
		{"James", false},      // Capitalized English name form
		{"james", false},      // common given name, lowercased
		{"iPhone", true},      // capital not at the start
		{"공원", true},
	}
	for _, tc := range cases {
		if got := IsValidKeyword(tc.keyword); got != tc.want {
			t.Errorf("IsValidKeyword(%q) = %v, want %v", tc.keyword, got, tc.want)
		}
	}
}

func TestLooksLikePersonalName(t *testing.T) {
	cases := []struct {
		s    string
		want bool
	}{
		{"김민수", true},
		{"이", false},    // single Hangul rune, too short for a full name
		{"가족", false},   // no known surname prefix
		{"Sarah", true}, // Capitalized form
		{"SARAH", false},
		{"emma", true}, // exact given-name match
		{"운동하기", false},
	}
	for _, tc := range cases {
		if got := looksLikePersonalName(tc.s); got != tc.want {
			t.Errorf("looksLikePersonalName(%q) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestOccursIn(t *testing.T) {
	cases := []struct {
		keyword string
		source  string
		want    bool
	}{
		{"가족", "오늘 가족과 저녁을 먹었다", true},
		{"가족", "가족들이랑 놀러갔다", true}, // particle glued on, token containment
		{"운동", "오늘 가족과 저녁을 먹었다", false},
		{"coffee", "Had some COFFEE this morning", true}, // case-insensitive
		{"", "anything", false},
		{"가족", "", false},
		{"a", "b c d", false}, // single-rune keyword, no token match allowed
	}
	for _, tc := range cases {
		if got := OccursIn(tc.keyword, tc.source); got != tc.want {
			t.Errorf("OccursIn(%q, %q) = %v, want %v", tc.keyword, tc.source, got, tc.want)
		}
	}
}
