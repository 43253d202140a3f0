package stats

import (
	"encoding/json"
	"sort"
	"strings"
)

// MergeKeywords folds newly extracted candidates into an existing
// per-user frequency table. A single entry contributes at most +1 per
// distinct keyword, and only keywords that pass validation AND occur
// in the source text are counted. The input map is not mutated.
func MergeKeywords(existing map[string]int, candidates []string, source string) map[string]int {
	merged := make(map[string]int, len(existing)+len(candidates))
	for k, v := range existing {
		merged[k] = v
	}

	seen := make(map[string]bool, len(candidates))
	for _, raw := range candidates {
		kw := normalizeKeyword(raw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		if !IsValidKeyword(kw) || !OccursIn(kw, source) {
			continue
		}
		merged[kw]++
	}
	return merged
}

// Case is preserved as first seen; only surrounding space is cut.
func normalizeKeyword(s string) string {
	return strings.TrimSpace(s)
}

// KeywordCount is one ranked keyword with its accumulated count.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// TopKeywords ranks the frequency table by count descending, breaking
// ties by keyword ascending, and returns the first n. The tie-break is
// user-visible: for equal counts the alphabetically-first keyword must
// rank higher on every call.
func TopKeywords(counts map[string]int, n int) []KeywordCount {
	ranked := make([]KeywordCount, 0, len(counts))
	for k, v := range counts {
		ranked = append(ranked, KeywordCount{Keyword: k, Count: v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Keyword < ranked[j].Keyword
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DecodeKeywordCounts parses a persisted keyword blob. Legacy rows may
// be double-encoded (a JSON string holding the object) or hold an
// array-of-strings from an old format; anything unparseable yields an
// empty map, never an error, because malformed rows are expected
// during format migrations and must not break the read path.
func DecodeKeywordCounts(payload []byte) map[string]int {
	if len(payload) == 0 {
		return map[string]int{}
	}

	var counts map[string]int
	if err := json.Unmarshal(payload, &counts); err == nil && counts != nil {
		return counts
	}

	// One level of unquoting for the double-encoded legacy format.
	var quoted string
	if err := json.Unmarshal(payload, &quoted); err == nil {
		if err := json.Unmarshal([]byte(quoted), &counts); err == nil && counts != nil {
			return counts
		}
	}

	return map[string]int{}
}

// EncodeKeywordCounts serializes the frequency table for storage.
func EncodeKeywordCounts(counts map[string]int) []byte {
	if counts == nil {
		counts = map[string]int{}
	}
	b, err := json.Marshal(counts)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// DecodeEmotionCounts parses a persisted emotion-count blob with the
// same tolerance as DecodeKeywordCounts, then fills in any missing
// categories so consumers always see all five keys.
func DecodeEmotionCounts(payload []byte) map[EmotionType]int {
	counts := make(map[EmotionType]int, len(AllEmotions))
	for _, e := range AllEmotions {
		counts[e] = 0
	}

	raw := DecodeKeywordCounts(payload)
	for k, v := range raw {
		e := FromDiaryEmotion(k)
		if v > 0 {
			counts[e] += v
		}
	}
	return counts
}

// EncodeEmotionCounts serializes per-category counts for storage.
func EncodeEmotionCounts(counts map[EmotionType]int) []byte {
	out := make(map[string]int, len(counts))
	for k, v := range counts {
		out[string(k)] = v
	}
	b, err := json.Marshal(out)
	if err != nil {
		return []byte("{}")
	}
	return b
}
