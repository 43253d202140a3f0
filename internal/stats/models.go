package stats

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MonthlyStat is the persisted per-(user, month) aggregate. Several
// rows may exist for the same pair historically; readers always take
// the most recent by creation time. Count and keyword payloads are
// stored as JSON blobs and decoded tolerantly (see accumulate.go).
type MonthlyStat struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_monthly_stats_user_month" json:"user_id"`
	Month          time.Time      `gorm:"type:date;not null;index:idx_monthly_stats_user_month" json:"month"`
	EmotionCounts  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"emotion_counts"`
	TopKeywords    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"top_keywords"`
	StatisticsText string         `gorm:"type:text" json:"statistics_text"`
	GuardianAdvice string         `gorm:"type:text" json:"guardian_advice"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// EmotionRatio is one row of the emotion distribution list, ordered
// GREAT through ANGRY.
type EmotionRatio struct {
	Emotion    EmotionType `json:"emotion"`
	Label      string      `json:"label"`
	Emoji      string      `json:"emoji"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

// ProfileInfo echoes the user profile on the stats response.
type ProfileInfo struct {
	Nickname       string `json:"nickname"`
	JoinDate       string `json:"join_date"`
	ConnectionCode string `json:"connection_code"`
	TotalEntries   int64  `json:"total_entries"`
}

// MonthlyStatisticsResponse is the composed statistics payload. It is
// a flat value object; a read never fails, worst case Generating is
// true and every list is empty.
type MonthlyStatisticsResponse struct {
	Month          string              `json:"month"`
	Generating     bool                `json:"generating"`
	EmotionRatios  []EmotionRatio      `json:"emotion_ratios"`
	TopKeywords    []KeywordCount      `json:"top_keywords"`
	MonthlyChanges []MonthlyChange     `json:"monthly_changes"`
	Achievements   AchievementResult   `json:"achievements"`
	DailyTrends    []EmotionTrendPoint `json:"daily_trends"`
	StatisticsText string              `json:"statistics_text"`
	GuardianAdvice string              `json:"guardian_advice"`
	Profile        ProfileInfo         `json:"profile"`
}
