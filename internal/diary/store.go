package diary

import (
	"time"

	"github.com/google/uuid"
	"github.com/haruapp/haru-backend/internal/stats"
	"gorm.io/gorm"
)

// EntryStore adapts diary rows into the stats engine's EntrySource.
// Soft-deleted entries are excluded by GORM's default scope.
type EntryStore struct {
	db *gorm.DB
}

// NewEntryStore creates an EntryStore.
func NewEntryStore(db *gorm.DB) *EntryStore {
	return &EntryStore{db: db}
}

func (s *EntryStore) ListEntries(userID uuid.UUID, from, to time.Time) ([]stats.EntryRecord, error) {
	var entries []DiaryEntry
	err := s.db.Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, from, to).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	records := make([]stats.EntryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, stats.EntryRecord{
			Emotion:   e.Emotion,
			Content:   e.Content,
			CreatedAt: e.CreatedAt,
		})
	}
	return records, nil
}

func (s *EntryStore) CountEntries(userID uuid.UUID) (int64, error) {
	var total int64
	err := s.db.Model(&DiaryEntry{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

func (s *EntryStore) ListUserIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.Model(&DiaryEntry{}).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}
