package stats

import (
	"log/slog"
	"time"
)

// EmotionType is one of the five fixed emotion categories used for
// monthly statistics. The set and its order never change: histograms,
// banding and display ordering all key off these five values.
type EmotionType string

const (
	EmotionGreat EmotionType = "GREAT"
	EmotionGood  EmotionType = "GOOD"
	EmotionOkay  EmotionType = "OKAY"
	EmotionDown  EmotionType = "DOWN"
	EmotionAngry EmotionType = "ANGRY"
)

// AllEmotions lists every category in display order (best first).
var AllEmotions = []EmotionType{
	EmotionGreat,
	EmotionGood,
	EmotionOkay,
	EmotionDown,
	EmotionAngry,
}

// Score returns the numeric value of the category on the -2..2 scale.
func (e EmotionType) Score() float64 {
	switch e {
	case EmotionGreat:
		return 2
	case EmotionGood:
		return 1
	case EmotionOkay:
		return 0
	case EmotionDown:
		return -1
	case EmotionAngry:
		return -2
	}
	return 0
}

// Label returns the human-readable name of the category.
func (e EmotionType) Label() string {
	switch e {
	case EmotionGreat:
		return "Great"
	case EmotionGood:
		return "Good"
	case EmotionOkay:
		return "Okay"
	case EmotionDown:
		return "Down"
	case EmotionAngry:
		return "Angry"
	}
	return "Okay"
}

// Emoji returns the emoji shown next to the category.
func (e EmotionType) Emoji() string {
	switch e {
	case EmotionGreat:
		return "😄"
	case EmotionGood:
		return "🙂"
	case EmotionOkay:
		return "😐"
	case EmotionDown:
		return "😞"
	case EmotionAngry:
		return "😡"
	}
	return "😐"
}

// OrderIndex returns the stable display position (GREAT first).
func (e EmotionType) OrderIndex() int {
	for i, v := range AllEmotions {
		if v == e {
			return i
		}
	}
	return len(AllEmotions)
}

// CategoryFromScore bands a continuous score back into a category.
// Bands: >=1.5 GREAT, >=0.5 GOOD, >=-0.5 OKAY, >=-1.5 DOWN, else ANGRY.
func CategoryFromScore(score float64) EmotionType {
	switch {
	case score >= 1.5:
		return EmotionGreat
	case score >= 0.5:
		return EmotionGood
	case score >= -0.5:
		return EmotionOkay
	case score >= -1.5:
		return EmotionDown
	default:
		return EmotionAngry
	}
}

// FromDiaryEmotion maps the diary domain's emotion vocabulary onto the
// stats scale. Already-migrated rows may carry stats names directly;
// those pass through. Anything unrecognized defaults to OKAY with a
// logged warning so a bad row never breaks aggregation.
func FromDiaryEmotion(raw string) EmotionType {
	switch raw {
	case "EXCELLENT":
		return EmotionGreat
	case "JOY":
		return EmotionGood
	case "NEUTRAL":
		return EmotionOkay
	case "SAD":
		return EmotionDown
	case "ANGER":
		return EmotionAngry
	case string(EmotionGreat), string(EmotionGood), string(EmotionOkay), string(EmotionDown), string(EmotionAngry):
		return EmotionType(raw)
	}
	slog.Warn("unrecognized diary emotion, defaulting to OKAY", "emotion", raw)
	return EmotionOkay
}

// EntryRecord is the slice of a diary entry the aggregation engine
// needs. The diary package adapts its rows into this shape.
type EntryRecord struct {
	Emotion   string
	Content   string
	CreatedAt time.Time
}

// CountEmotions aggregates entries within [monthStart, monthEnd] into
// counts per category. The result always contains all five keys, even
// for an empty month.
func CountEmotions(entries []EntryRecord, monthStart, monthEnd time.Time) map[EmotionType]int {
	counts := make(map[EmotionType]int, len(AllEmotions))
	for _, e := range AllEmotions {
		counts[e] = 0
	}
	for _, entry := range entries {
		if entry.CreatedAt.Before(monthStart) || entry.CreatedAt.After(monthEnd) {
			continue
		}
		counts[FromDiaryEmotion(entry.Emotion)]++
	}
	return counts
}
