package stats

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		current, previous int
		want              ChangeType
	}{
		{0, 0, ChangeSame},
		{5, 0, ChangeNew},
		{10, 10, ChangeStable},
		{12, 10, ChangeStable},  // +20% exactly stays STABLE
		{8, 10, ChangeStable},   // -20% exactly stays STABLE
		{13, 10, ChangeIncrease},
		{7, 10, ChangeDecrease},
		{0, 10, ChangeDecrease},
	}
	for _, tc := range cases {
		if got := Classify(tc.current, tc.previous); got != tc.want {
			t.Errorf("Classify(%d, %d) = %v, want %v", tc.current, tc.previous, got, tc.want)
		}
	}
}

func TestPercentDelta(t *testing.T) {
	cases := []struct {
		current, previous int
		want              float64
	}{
		{5, 0, 100.0},
		{0, 0, 0.0},
		{15, 10, 50.0},
		{5, 10, -50.0},
		{30, 10, 200.0}, // unbounded above 100
	}
	for _, tc := range cases {
		if got := PercentDelta(tc.current, tc.previous); got != tc.want {
			t.Errorf("PercentDelta(%d, %d) = %v, want %v", tc.current, tc.previous, got, tc.want)
		}
	}
}

func TestCompareMonthsDisplayOrder(t *testing.T) {
	current := map[EmotionType]int{EmotionGreat: 6, EmotionOkay: 4}
	previous := map[EmotionType]int{EmotionGreat: 4}

	changes := CompareMonths(current, previous)
	if len(changes) != 5 {
		t.Fatalf("expected 5 changes, got %d", len(changes))
	}
	for i, e := range AllEmotions {
		if changes[i].Emotion != e {
			t.Errorf("position %d: got %v, want %v", i, changes[i].Emotion, e)
		}
	}

	if changes[0].Change != ChangeIncrease {
		t.Errorf("GREAT 4 -> 6: got %v, want INCREASE", changes[0].Change)
	}
	if changes[2].Change != ChangeNew {
		t.Errorf("OKAY 0 -> 4: got %v, want NEW", changes[2].Change)
	}
	if changes[4].Change != ChangeSame {
		t.Errorf("ANGRY 0 -> 0: got %v, want SAME", changes[4].Change)
	}
}

func TestDescribeChangeWording(t *testing.T) {
	if s := DescribeChange(EmotionGreat, 4, 0, 100); !strings.Contains(s, "newly appeared") {
		t.Errorf("NEW description = %q", s)
	}
	if s := DescribeChange(EmotionAngry, 0, 0, 0); !strings.Contains(s, "absent in both") {
		t.Errorf("SAME description = %q", s)
	}
	if s := DescribeChange(EmotionGood, 15, 10, 50); !strings.Contains(s, "increased by 50.0%") {
		t.Errorf("INCREASE description = %q", s)
	}
	if s := DescribeChange(EmotionDown, 5, 10, -50); !strings.Contains(s, "decreased by 50.0%") {
		t.Errorf("DECREASE description = %q", s)
	}
	if s := DescribeChange(EmotionOkay, 11, 10, 10); !strings.Contains(s, "similar level") {
		t.Errorf("STABLE description = %q", s)
	}
}
