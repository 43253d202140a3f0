package stats

import (
	"fmt"
	"sort"
	"time"
)

// EmotionTrendPoint summarizes one calendar day that had at least one
// entry. Days without entries are omitted, not zero-filled.
type EmotionTrendPoint struct {
	Date            string      `json:"date"`
	DominantEmotion EmotionType `json:"dominant_emotion"`
	AverageScore    float64     `json:"average_score"`
	Trend           string      `json:"trend"`
	Description     string      `json:"description"`
}

// SummarizeTrends averages each day's emotion scores, bands the
// average back into a dominant category and labels the day's trend.
// Output is ordered by date ascending.
func SummarizeTrends(entries []EntryRecord, monthStart, monthEnd time.Time) []EmotionTrendPoint {
	byDay := make(map[string][]float64)
	for _, entry := range entries {
		if entry.CreatedAt.Before(monthStart) || entry.CreatedAt.After(monthEnd) {
			continue
		}
		day := entry.CreatedAt.Format("2006-01-02")
		byDay[day] = append(byDay[day], FromDiaryEmotion(entry.Emotion).Score())
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]EmotionTrendPoint, 0, len(days))
	for _, day := range days {
		scores := byDay[day]
		var sum float64
		for _, s := range scores {
			sum += s
		}
		avg := sum / float64(len(scores))
		points = append(points, EmotionTrendPoint{
			Date:            day,
			DominantEmotion: CategoryFromScore(avg),
			AverageScore:    avg,
			Trend:           trendLabel(avg),
			Description:     trendDescription(avg),
		})
	}
	return points
}

func trendLabel(avg float64) string {
	switch {
	case avg >= 1.0:
		return "rising"
	case avg >= 0.0:
		return "stable"
	default:
		return "falling"
	}
}

// trendDescription uses the finer five-way banding for wording.
func trendDescription(avg float64) string {
	switch {
	case avg >= 1.5:
		return "A really great day full of positive emotions."
	case avg >= 0.5:
		return "A good day with mostly positive feelings."
	case avg >= -0.5:
		return "An ordinary day, emotionally steady."
	case avg >= -1.5:
		return "A low day. Some gloomy feelings came up."
	default:
		return fmt.Sprintf("A hard day (average %.1f). Anger or frustration dominated.", avg)
	}
}
