package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/haruapp/haru-backend/internal/diary"
	"github.com/haruapp/haru-backend/internal/dto"
	"github.com/haruapp/haru-backend/internal/middleware"
)

// DiaryHandler handles HTTP requests for diary entries.
type DiaryHandler struct {
	service *diary.Service
}

func NewDiaryHandler(service *diary.Service) *DiaryHandler {
	return &DiaryHandler{service: service}
}

// CreateEntry handles POST /api/diaries
func (h *DiaryHandler) CreateEntry(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req diary.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	entry, err := h.service.CreateEntry(userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListEntries handles GET /api/diaries
func (h *DiaryHandler) ListEntries(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	entries, total, err := h.service.GetEntries(userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch entries",
		})
	}

	return c.JSON(diary.EntryListResponse{
		Entries: entries, Total: total, Limit: limit, Offset: offset,
	})
}

// GetEntry handles GET /api/diaries/:id
func (h *DiaryHandler) GetEntry(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid entry id",
		})
	}

	entry, err := h.service.GetEntry(userID, entryID)
	if err != nil {
		return diaryError(c, err)
	}

	return c.JSON(entry)
}

// UpdateEntry handles PUT /api/diaries/:id
func (h *DiaryHandler) UpdateEntry(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid entry id",
		})
	}

	var req diary.UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	entry, err := h.service.UpdateEntry(userID, entryID, req)
	if err != nil {
		return diaryError(c, err)
	}

	return c.JSON(entry)
}

// DeleteEntry handles DELETE /api/diaries/:id
func (h *DiaryHandler) DeleteEntry(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid entry id",
		})
	}

	if err := h.service.DeleteEntry(userID, entryID); err != nil {
		return diaryError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Entry deleted"})
}

func diaryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, diary.ErrEntryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, diary.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, diary.ErrInvalidEmotion), errors.Is(err, diary.ErrEmptyContent):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
