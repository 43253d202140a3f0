package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/haruapp/haru-backend/internal/models"
	"github.com/haruapp/haru-backend/internal/stats"
	"gorm.io/gorm"
)

// ProfileService implements the stats engine's ProfileSource over the
// users table.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the profile metadata echoed on the statistics
// response. Callers fall back to the fixed default identity on error.
func (s *ProfileService) GetProfile(userID uuid.UUID) (stats.ProfileInfo, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return stats.ProfileInfo{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	nickname := user.Nickname
	if nickname == "" {
		nickname = "BIF_" + user.ID.String()[:8]
	}

	return stats.ProfileInfo{
		Nickname:       nickname,
		JoinDate:       user.CreatedAt.Format("2006-01-02"),
		ConnectionCode: user.ConnectionCode,
	}, nil
}
