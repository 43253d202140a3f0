package stats

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSnapshotStore is the Postgres-backed SnapshotStore. The month
// column is a date truncated to the first of the month; "most recent
// created_at wins" resolves historical duplicates.
type GormSnapshotStore struct {
	db *gorm.DB
}

// NewGormSnapshotStore creates a GormSnapshotStore.
func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{db: db}
}

func (s *GormSnapshotStore) Latest(userID uuid.UUID, month time.Time) (*MonthlyStat, error) {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

	var snap MonthlyStat
	err := s.db.Where("user_id = ? AND month = ?", userID, monthStart).
		Order("created_at DESC").
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *GormSnapshotStore) Create(snap *MonthlyStat) error {
	return s.db.Create(snap).Error
}

func (s *GormSnapshotStore) Save(snap *MonthlyStat) error {
	return s.db.Save(snap).Error
}
