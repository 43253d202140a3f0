package diary

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Emotion is the diary domain's five-value emotion vocabulary, as
// picked by the user when writing an entry. The stats engine maps it
// onto its own scale.
type Emotion string

const (
	EmotionExcellent Emotion = "EXCELLENT"
	EmotionJoy       Emotion = "JOY"
	EmotionNeutral   Emotion = "NEUTRAL"
	EmotionSad       Emotion = "SAD"
	EmotionAnger     Emotion = "ANGER"
)

// Emotions lists the valid values for request validation.
var Emotions = []Emotion{
	EmotionExcellent,
	EmotionJoy,
	EmotionNeutral,
	EmotionSad,
	EmotionAnger,
}

// DiaryEntry is one journal entry. Soft-deleted rows are excluded from
// every aggregation.
type DiaryEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Emotion   string         `gorm:"size:20;not null" json:"emotion"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type CreateEntryRequest struct {
	Content string `json:"content"`
	Emotion string `json:"emotion"`
}

type UpdateEntryRequest struct {
	Content *string `json:"content"`
	Emotion *string `json:"emotion"`
}

type EntryListResponse struct {
	Entries []DiaryEntry `json:"entries"`
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}
