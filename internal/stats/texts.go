package stats

import (
	"fmt"
	"math"
)

// Narrative strings stored on the snapshot. Regenerated whenever the
// counts change so the text never drifts from the numbers.

var guardianAdviceByEmotion = map[EmotionType]string{
	EmotionGreat: "This month was full of great days. Celebrate the wins together and ask what made them special.",
	EmotionGood:  "Mostly positive days this month. Keep encouraging the routines that are working.",
	EmotionOkay:  "An emotionally steady month. A small new activity together could add some spark.",
	EmotionDown:  "Low moods came up often this month. Check in gently and make time for a relaxed conversation.",
	EmotionAngry: "Anger showed up a lot this month. Help find what triggered it and talk it through calmly.",
}

// generateStatisticsText summarizes the month's distribution.
func generateStatisticsText(counts map[EmotionType]int) string {
	total := 0
	for _, v := range counts {
		total += v
	}
	if total == 0 {
		return "No diary entries were written this month yet."
	}

	dominant := dominantEmotion(counts)
	pct := roundToOneDecimal(float64(counts[dominant]) / float64(total) * 100)
	return fmt.Sprintf("You wrote %d entries this month. Your most frequent emotion was %s %s at %.1f%%.",
		total, dominant.Label(), dominant.Emoji(), pct)
}

// generateGuardianAdvice picks the advice line for the month's
// dominant emotion.
func generateGuardianAdvice(counts map[EmotionType]int) string {
	total := 0
	for _, v := range counts {
		total += v
	}
	if total == 0 {
		return "No entries yet this month. A gentle nudge to write a first one could help."
	}
	return guardianAdviceByEmotion[dominantEmotion(counts)]
}

// dominantEmotion returns the most frequent category, preferring the
// better emotion (lower order index) on ties so output stays stable.
func dominantEmotion(counts map[EmotionType]int) EmotionType {
	best := EmotionOkay
	bestCount := -1
	for _, e := range AllEmotions {
		if counts[e] > bestCount {
			best = e
			bestCount = counts[e]
		}
	}
	return best
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
