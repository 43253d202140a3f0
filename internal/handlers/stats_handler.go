package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/haruapp/haru-backend/internal/middleware"
	"github.com/haruapp/haru-backend/internal/stats"
)

// StatsHandler handles HTTP requests for monthly statistics.
type StatsHandler struct {
	service *stats.Service
}

func NewStatsHandler(service *stats.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetMonthlyStatistics handles GET /api/stats/monthly?year=2026&month=7
// Defaults to the current month. The stats read path never returns an
// error; worst case is the "still generating" placeholder.
func (h *StatsHandler) GetMonthlyStatistics(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	now := time.Now().UTC()
	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 || year > 2100 {
		year = now.Year()
	}
	monthNum, err := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
	if err != nil || monthNum < 1 || monthNum > 12 {
		monthNum = int(now.Month())
	}

	return c.JSON(h.service.GetMonthlyStatistics(userID, year, time.Month(monthNum)))
}
