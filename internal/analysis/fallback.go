package analysis

import "strings"

// Dictionary-based fallback used when no analysis provider is
// reachable: fixed domain words checked via substring containment,
// plus a crude positive/negative word balance for the score.

var fallbackKeywords = []string{
	"가족", "친구", "학교", "회사", "운동", "음식", "여행", "영화",
	"음악", "공부", "산책", "게임", "병원", "요리", "쇼핑", "날씨",
	"family", "friend", "school", "work", "exercise", "food",
	"travel", "movie", "music", "study", "walk", "game",
}

var positiveWords = []string{
	"좋았", "행복", "즐거", "기뻤", "재밌", "뿌듯", "감사",
	"happy", "great", "fun", "glad", "proud", "thankful",
}

var negativeWords = []string{
	"힘들", "슬펐", "짜증", "화났", "우울", "피곤", "걱정",
	"sad", "angry", "tired", "upset", "worried", "stressed",
}

// FallbackAnalyze extracts keywords and a rough emotion score from the
// fixed dictionaries. Deterministic and always available.
func FallbackAnalyze(text string) *Result {
	lower := strings.ToLower(text)

	keywords := make([]string, 0, 5)
	for _, word := range fallbackKeywords {
		if strings.Contains(lower, strings.ToLower(word)) {
			keywords = append(keywords, word)
			if len(keywords) == 5 {
				break
			}
		}
	}

	balance := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			balance++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			balance--
		}
	}

	score := float64(balance)
	if score > 2 {
		score = 2
	}
	if score < -2 {
		score = -2
	}

	return &Result{EmotionScore: score, Keywords: keywords}
}
