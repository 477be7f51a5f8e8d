package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/socialnet-io/socialnet-backend/internal/dto"
	"github.com/socialnet-io/socialnet-backend/internal/middleware"
	"github.com/socialnet-io/socialnet-backend/internal/models"
	"github.com/socialnet-io/socialnet-backend/internal/services"
)

type ModerationHandler struct {
	moderation *services.ModerationService
}

func NewModerationHandler(moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	reporterID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	reporter := services.ReporterSnapshot{
		ID:          reporterID,
		Username:    middleware.StringClaim(c, "username"),
		DisplayName: middleware.StringClaim(c, "name"),
		Avatar:      middleware.StringClaim(c, "avatar"),
	}

	report, err := h.moderation.CreateReport(c.Context(), reporter, &req)
	if err != nil {
		return respondModerationError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := models.ReportStatus(c.Query("status", ""))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	if limit > 100 {
		limit = 100
	}

	reports, total, err := h.moderation.ListReports(c.Context(), status, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *ModerationHandler) UpdateReportStatus(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}
	adminID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	res, err := h.moderation.UpdateStatus(c.Context(), reportID, adminID, models.ReportStatus(req.Status), req.AdminNote)
	if err != nil {
		return respondModerationError(c, err)
	}
	return c.JSON(res)
}

func (h *ModerationHandler) ResolveAppeal(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}
	adminID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ResolveAppealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Accepted == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "accepted is required",
		})
	}

	res, err := h.moderation.ResolveAppeal(c.Context(), reportID, adminID, *req.Accepted, req.AdminNote)
	if err != nil {
		return respondModerationError(c, err)
	}
	return c.JSON(res)
}

func (h *ModerationHandler) ReverseDecision(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}
	adminID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ReverseDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	res, err := h.moderation.ReverseDecision(c.Context(), reportID, adminID, req.Reason)
	if err != nil {
		return respondModerationError(c, err)
	}
	return c.JSON(res)
}

func (h *ModerationHandler) GetReportTarget(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	res, err := h.moderation.GetTarget(c.Context(), reportID)
	if err != nil {
		return respondModerationError(c, err)
	}
	return c.JSON(res)
}

func respondModerationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrReportNotFound), errors.Is(err, services.ErrTargetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrWindowExpired),
		errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrStaleReport):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	slog.Error("moderation operation failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
