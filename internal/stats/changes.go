package stats

import (
	"fmt"
	"math"
)

// ChangeType classifies how a category's count moved month over month.
type ChangeType string

const (
	ChangeNew      ChangeType = "NEW"
	ChangeSame     ChangeType = "SAME"
	ChangeIncrease ChangeType = "INCREASE"
	ChangeDecrease ChangeType = "DECREASE"
	ChangeStable   ChangeType = "STABLE"
)

// changeThreshold is the percentage band outside which a move counts
// as a real increase or decrease. 20% exactly is still STABLE.
const changeThreshold = 20.0

// Classify compares this month's count against last month's.
// previous == 0 is a special case: the emotion is NEW if it appeared
// at all, SAME if both months are empty.
func Classify(current, previous int) ChangeType {
	if previous == 0 {
		if current > 0 {
			return ChangeNew
		}
		return ChangeSame
	}

	pct := float64(current-previous) / float64(previous) * 100
	switch {
	case pct > changeThreshold:
		return ChangeIncrease
	case pct < -changeThreshold:
		return ChangeDecrease
	default:
		return ChangeStable
	}
}

// PercentDelta returns the month-over-month change as a percentage.
// Unbounded: may exceed 100 or drop below -100. A zero previous month
// maps to 100 when anything appeared and 0 otherwise.
func PercentDelta(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(current-previous) / float64(previous) * 100
}

// DescribeChange renders the classification as a sentence for the
// monthly report.
func DescribeChange(emotion EmotionType, current, previous int, pct float64) string {
	label := emotion.Label()
	switch Classify(current, previous) {
	case ChangeNew:
		return fmt.Sprintf("%s newly appeared this month (%d times).", label, current)
	case ChangeSame:
		return fmt.Sprintf("%s was absent in both months.", label)
	case ChangeIncrease:
		return fmt.Sprintf("%s increased by %.1f%% compared to last month.", label, math.Abs(pct))
	case ChangeDecrease:
		return fmt.Sprintf("%s decreased by %.1f%% compared to last month.", label, math.Abs(pct))
	default:
		return fmt.Sprintf("%s stayed at a similar level to last month.", label)
	}
}

// MonthlyChange is the per-category comparison against the previous
// month's snapshot. Recomputed on every read, never persisted.
type MonthlyChange struct {
	Emotion       EmotionType `json:"emotion"`
	Current       int         `json:"current"`
	Previous      int         `json:"previous"`
	PercentChange float64     `json:"percent_change"`
	Change        ChangeType  `json:"change"`
	Description   string      `json:"description"`
}

// CompareMonths builds the per-category change list in display order.
// Missing categories in either month default to zero.
func CompareMonths(current, previous map[EmotionType]int) []MonthlyChange {
	changes := make([]MonthlyChange, 0, len(AllEmotions))
	for _, e := range AllEmotions {
		cur := current[e]
		prev := previous[e]
		pct := PercentDelta(cur, prev)
		changes = append(changes, MonthlyChange{
			Emotion:       e,
			Current:       cur,
			Previous:      prev,
			PercentChange: pct,
			Change:        Classify(cur, prev),
			Description:   DescribeChange(e, cur, prev, pct),
		})
	}
	return changes
}
