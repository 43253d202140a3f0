package diary

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/haruapp/haru-backend/internal/stats"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmotion = errors.New("invalid emotion value")
	ErrEmptyContent   = errors.New("content is required")
	ErrEntryNotFound  = errors.New("diary entry not found")
	ErrNotOwner       = errors.New("you do not own this diary entry")
)

// Service handles diary entry business logic. Writing an entry also
// feeds the month's keyword accumulation in the background.
type Service struct {
	db    *gorm.DB
	stats *stats.Service
}

// NewService creates a diary Service.
func NewService(db *gorm.DB, statsService *stats.Service) *Service {
	return &Service{db: db, stats: statsService}
}

// CreateEntry validates and stores a new entry, then merges its
// keywords into the monthly snapshot asynchronously.
func (s *Service) CreateEntry(userID uuid.UUID, req CreateEntryRequest) (*DiaryEntry, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if !isValidEmotion(req.Emotion) {
		return nil, ErrInvalidEmotion
	}

	entry := DiaryEntry{
		ID:      uuid.New(),
		UserID:  userID,
		Content: content,
		Emotion: req.Emotion,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	if s.stats != nil {
		go func(userID uuid.UUID, content string, at time.Time) {
			if err := s.stats.AccumulateEntryKeywords(userID, content, at); err != nil {
				slog.Warn("keyword accumulation failed", "user_id", userID, "error", err)
			}
		}(userID, content, entry.CreatedAt)
	}

	return &entry, nil
}

// GetEntries returns the user's entries newest first.
func (s *Service) GetEntries(userID uuid.UUID, limit, offset int) ([]DiaryEntry, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var entries []DiaryEntry
	var total int64

	s.db.Model(&DiaryEntry{}).Where("user_id = ?", userID).Count(&total)

	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error

	return entries, total, err
}

// GetEntry returns one entry, enforcing ownership.
func (s *Service) GetEntry(userID, entryID uuid.UUID) (*DiaryEntry, error) {
	var entry DiaryEntry
	if err := s.db.First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrNotOwner
	}
	return &entry, nil
}

// UpdateEntry edits content and/or emotion. Statistics reconcile the
// change on the next read; no eager recompute here.
func (s *Service) UpdateEntry(userID, entryID uuid.UUID, req UpdateEntryRequest) (*DiaryEntry, error) {
	entry, err := s.GetEntry(userID, entryID)
	if err != nil {
		return nil, err
	}

	if req.Emotion != nil {
		if !isValidEmotion(*req.Emotion) {
			return nil, ErrInvalidEmotion
		}
		entry.Emotion = *req.Emotion
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, ErrEmptyContent
		}
		entry.Content = content
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry soft-deletes an entry the user owns.
func (s *Service) DeleteEntry(userID, entryID uuid.UUID) error {
	entry, err := s.GetEntry(userID, entryID)
	if err != nil {
		return err
	}
	return s.db.Delete(entry).Error
}

func isValidEmotion(emotion string) bool {
	for _, valid := range Emotions {
		if Emotion(emotion) == valid {
			return true
		}
	}
	return false
}
