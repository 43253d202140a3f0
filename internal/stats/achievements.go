package stats

import (
	"fmt"
	"log/slog"
	"time"
)

// Achievement is one unlocked milestone shown on the stats screen.
type Achievement struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at"`
}

// AchievementResult is the gamification summary computed on every
// read. It is never persisted; counts, streak and keywords are the
// only inputs.
type AchievementResult struct {
	TotalPoints   int           `json:"total_points"`
	Level         int           `json:"level"`
	LevelTitle    string        `json:"level_title"`
	Achievements  []Achievement `json:"achievements"`
	CurrentStreak int           `json:"current_streak"`
	NextMilestone string        `json:"next_milestone"`
}

var levelTitles = map[int]string{
	1: "Seedling",
	2: "Sprout",
	3: "Sapling",
	4: "Tree",
	5: "Forest",
}

// achievementRule is one row of the fixed point table. Every rule
// whose condition holds fires; streak tiers stack rather than replace
// each other.
type achievementRule struct {
	name        string
	description string
	points      int
	icon        string
	qualifies   func(diaryCount, streak, emotionVariety, keywordCount int) bool
}

var achievementRules = []achievementRule{
	{
		name:        "First Entry",
		description: "Wrote your very first diary entry.",
		points:      10,
		icon:        "✏️",
		// Exactly the first entry, not "at least one".
		qualifies: func(d, _, _, _ int) bool { return d == 1 },
	},
	{
		name:        "Three Day Run",
		description: "Kept a 3-entry run going this month.",
		points:      20,
		icon:        "🔥",
		qualifies:   func(_, s, _, _ int) bool { return s >= 3 },
	},
	{
		name:        "One Week Run",
		description: "Kept a 7-entry run going this month.",
		points:      50,
		icon:        "🏃",
		qualifies:   func(_, s, _, _ int) bool { return s >= 7 },
	},
	{
		name:        "Monthly Marathon",
		description: "Kept a 30-entry run going this month.",
		points:      100,
		icon:        "🏆",
		qualifies:   func(_, s, _, _ int) bool { return s >= 30 },
	},
	{
		name:        "Emotion Explorer",
		description: "Recorded 4 or more different emotions.",
		points:      30,
		icon:        "🎨",
		qualifies:   func(_, _, v, _ int) bool { return v >= 4 },
	},
	{
		name:        "Keyword Collector",
		description: "Accumulated 5 or more keywords.",
		points:      25,
		icon:        "🔑",
		qualifies:   func(_, _, _, k int) bool { return k >= 5 },
	},
}

// CalculateAchievements evaluates the fixed rule table and derives the
// level from the summed points. A panic anywhere inside degrades to
// the zero-point default: achievement scoring must never take down
// statistics generation.
func CalculateAchievements(diaryCount, streakCount int, distinctEmotions []EmotionType, keywordCount int) (result AchievementResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("achievement calculation failed", "panic", r)
			result = defaultAchievementResult()
		}
	}()

	now := time.Now().UTC()
	variety := len(distinctEmotions)

	earned := make([]Achievement, 0, len(achievementRules))
	total := 0
	for _, rule := range achievementRules {
		if !rule.qualifies(diaryCount, streakCount, variety, keywordCount) {
			continue
		}
		total += rule.points
		earned = append(earned, Achievement{
			Name:        rule.name,
			Description: rule.description,
			Points:      rule.points,
			Icon:        rule.icon,
			EarnedAt:    now,
		})
	}

	level := levelForPoints(total)
	return AchievementResult{
		TotalPoints:   total,
		Level:         level,
		LevelTitle:    levelTitles[level],
		Achievements:  earned,
		CurrentStreak: streakCount,
		NextMilestone: nextMilestone(total, level),
	}
}

func levelForPoints(points int) int {
	switch {
	case points >= 500:
		return 5
	case points >= 300:
		return 4
	case points >= 150:
		return 3
	case points >= 50:
		return 2
	default:
		return 1
	}
}

var levelBreakpoints = map[int]int{1: 50, 2: 150, 3: 300, 4: 500}

func nextMilestone(points, level int) string {
	target, ok := levelBreakpoints[level]
	if !ok {
		return "You reached the highest level. Keep writing!"
	}
	return fmt.Sprintf("%d more points to reach level %d (%s).",
		target-points, level+1, levelTitles[level+1])
}

func defaultAchievementResult() AchievementResult {
	return AchievementResult{
		TotalPoints:   0,
		Level:         1,
		LevelTitle:    levelTitles[1],
		Achievements:  []Achievement{},
		CurrentStreak: 0,
		NextMilestone: "Write your first entry to start earning points.",
	}
}
