package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UserHandler serves signup and login
type UserHandler struct {
	accounts *usecase.AccountService
	logger   logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(accounts *usecase.AccountService, logger logger.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, logger: logger}
}

type submitFormReq struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	PhoneNumber            string `json:"phoneNumber"`
	Password               string `json:"password"`
	NotificationPreference string `json:"notificationPreference"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmitForm handles POST /submit-form
func (h *UserHandler) SubmitForm(c echo.Context) error {
	var req submitFormReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err := h.accounts.Register(ctx, usecase.RegisterInput{
		Name:                   req.Name,
		Email:                  req.Email,
		PhoneNumber:            req.PhoneNumber,
		Password:               req.Password,
		NotificationPreference: req.NotificationPreference,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name, email and password are required"})
		}
		h.logger.Error("Failed to add user", "email", req.Email, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error adding data"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Data added successfully"})
}

// Login handles POST /login-user
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.accounts.Login(ctx, req.Email, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"email": user.Email})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	default:
		h.logger.Error("Failed to log in", "email", req.Email, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error logging in"})
	}
}
