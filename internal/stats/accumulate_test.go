package stats

import (
	"reflect"
	"testing"
)

func TestMergeKeywordsAccumulates(t *testing.T) {
	counts := map[string]int{}
	counts = MergeKeywords(counts, []string{"가족", "운동"}, "가족과 운동을 했다")
	counts = MergeKeywords(counts, []string{"가족"}, "가족 저녁 식사")

	if counts["가족"] != 2 {
		t.Errorf("가족 = %d, want 2", counts["가족"])
	}
	if counts["운동"] != 1 {
		t.Errorf("운동 = %d, want 1", counts["운동"])
	}
}

func TestMergeKeywordsDedupsWithinEntry(t *testing.T) {
	counts := MergeKeywords(nil, []string{"가족", "가족", " 가족 "}, "가족 여행")
	if counts["가족"] != 1 {
		t.Errorf("duplicate candidates in one entry counted %d times, want 1", counts["가족"])
	}
}

func TestMergeKeywordsRejectsInvalidAndAbsent(t *testing.T) {
	counts := MergeKeywords(nil, []string{"일상", "12345", "운동", "바다"}, "오늘은 운동을 했다")
	if len(counts) != 1 || counts["운동"] != 1 {
		t.Errorf("expected only 운동 to survive, got %v", counts)
	}
}

func TestMergeKeywordsDoesNotMutateInput(t *testing.T) {
	existing := map[string]int{"가족": 3}
	_ = MergeKeywords(existing, []string{"가족"}, "가족 모임")
	if existing["가족"] != 3 {
		t.Errorf("input map mutated: %v", existing)
	}
}

func TestTopKeywordsOrderAndTieBreak(t *testing.T) {
	counts := map[string]int{"나": 2, "가": 2, "다": 5, "라": 1}
	got := TopKeywords(counts, 3)

	want := []KeywordCount{
		{Keyword: "다", Count: 5},
		{Keyword: "가", Count: 2},
		{Keyword: "나", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords = %v, want %v", got, want)
	}
}

func TestTopKeywordsFewerThanN(t *testing.T) {
	got := TopKeywords(map[string]int{"가족": 1}, 5)
	if len(got) != 1 {
		t.Errorf("expected 1 keyword, got %d", len(got))
	}
}

func TestDecodeKeywordCountsTolerance(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    map[string]int
	}{
		{"plain object", `{"가족":3,"운동":1}`, map[string]int{"가족": 3, "운동": 1}},
		{"double encoded", `"{\"가족\":2}"`, map[string]int{"가족": 2}},
		{"corrupt", `{{{not json`, map[string]int{}},
		{"array legacy", `["가족","운동"]`, map[string]int{}},
		{"empty payload", ``, map[string]int{}},
		{"null", `null`, map[string]int{}},
	}
	for _, tc := range cases {
		got := DecodeKeywordCounts([]byte(tc.payload))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: DecodeKeywordCounts = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEmotionCountsRoundTrip(t *testing.T) {
	counts := map[EmotionType]int{EmotionGreat: 6, EmotionOkay: 4}
	decoded := DecodeEmotionCounts(EncodeEmotionCounts(counts))

	if len(decoded) != 5 {
		t.Fatalf("expected all 5 categories after decode, got %d", len(decoded))
	}
	if decoded[EmotionGreat] != 6 || decoded[EmotionOkay] != 4 {
		t.Errorf("decoded = %v", decoded)
	}
	if decoded[EmotionGood] != 0 || decoded[EmotionDown] != 0 || decoded[EmotionAngry] != 0 {
		t.Errorf("missing categories not zero-filled: %v", decoded)
	}
}

func TestDecodeEmotionCountsLegacyVocabulary(t *testing.T) {
	decoded := DecodeEmotionCounts([]byte(`{"EXCELLENT":2,"SAD":1}`))
	if decoded[EmotionGreat] != 2 {
		t.Errorf("EXCELLENT not mapped to GREAT: %v", decoded)
	}
	if decoded[EmotionDown] != 1 {
		t.Errorf("SAD not mapped to DOWN: %v", decoded)
	}
}
