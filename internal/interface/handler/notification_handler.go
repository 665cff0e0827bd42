package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// NotificationHandler serves preference updates and notification status
type NotificationHandler struct {
	accounts   *usecase.AccountService
	dispatcher *usecase.CycleDispatcher
	history    repository.DeliveryHistoryRepository
	async      bool
	logger     logger.Logger
}

// NewNotificationHandler creates a new notification handler.
// With async set, preference updates queue the cycle instead of waiting for it.
func NewNotificationHandler(
	accounts *usecase.AccountService,
	dispatcher *usecase.CycleDispatcher,
	history repository.DeliveryHistoryRepository,
	async bool,
	logger logger.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		accounts:   accounts,
		dispatcher: dispatcher,
		history:    history,
		async:      async,
		logger:     logger,
	}
}

type preferenceReq struct {
	Email      string `json:"email"`
	Preference string `json:"preference"`
}

// UpdatePreference handles POST /update-notification-preference and POST /update-notification
func (h *NotificationHandler) UpdatePreference(c echo.Context) error {
	var req preferenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}

	ctx := c.Request().Context()
	pref, err := h.accounts.UpdatePreference(ctx, email, req.Preference)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		h.logger.Error("Failed to update preference", "email", email, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error updating notification preference"})
	}

	if h.async {
		job, err := h.dispatcher.Submit(ctx, email)
		if err != nil {
			h.logger.Error("Failed to queue notification cycle", "email", email, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error sending notifications"})
		}
		return c.JSON(http.StatusAccepted, echo.Map{
			"message":    "Notification preference updated",
			"preference": pref.String(),
			"job_id":     job.ID,
			"status":     job.Status,
		})
	}

	notified, err := h.dispatcher.Run(ctx, email)
	if err != nil {
		h.logger.Error("Notification cycle failed", "email", email, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error sending notifications"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Notification preference updated and notifications sent successfully",
		"preference": pref.String(),
		"notified":   notified,
	})
}

// CycleJob handles GET /cycle-jobs/:id
func (h *NotificationHandler) CycleJob(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job, err := h.dispatcher.Job(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Job not found"})
		}
		h.logger.Error("Failed to load cycle job", "jobID", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error fetching job"})
	}
	return c.JSON(http.StatusOK, job)
}

// History handles GET /notification-history?email=&limit=
func (h *NotificationHandler) History(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}
	limit := defaultHistoryLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		limit = min(n, maxHistoryLimit)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	records, err := h.history.FindByUserEmail(ctx, email, limit)
	if err != nil {
		h.logger.Error("Failed to load notification history", "email", email, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error fetching notification history"})
	}
	return c.JSON(http.StatusOK, records)
}
