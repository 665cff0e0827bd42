package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// FlightHandler serves flight search and per-user flight status
type FlightHandler struct {
	flights *usecase.FlightQuery
	logger  logger.Logger
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(flights *usecase.FlightQuery, logger logger.Logger) *FlightHandler {
	return &FlightHandler{flights: flights, logger: logger}
}

type flightResponse struct {
	FlightNumber string `json:"flight_number"`
	Airline      string `json:"airline"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Gate         string `json:"gate"`
	Delay        string `json:"delay"`
	Cancellation bool   `json:"cancellation"`
}

type flightStatusReq struct {
	Email string `json:"email"`
}

// FlightDetails handles GET /flight-details?flightNumber=&airline=&date=
func (h *FlightHandler) FlightDetails(c echo.Context) error {
	return h.search(c, usecase.SearchInput{
		Date:         c.QueryParam("date"),
		FlightNumber: c.QueryParam("flightNumber"),
		Airline:      c.QueryParam("airline"),
	})
}

// MoreOptionFlightDetails handles GET /more-option-flight-details?departure=&arrival=&airline=&date=
func (h *FlightHandler) MoreOptionFlightDetails(c echo.Context) error {
	return h.search(c, usecase.SearchInput{
		Date:      c.QueryParam("date"),
		Departure: c.QueryParam("departure"),
		Arrival:   c.QueryParam("arrival"),
		Airline:   c.QueryParam("airline"),
	})
}

func (h *FlightHandler) search(c echo.Context, in usecase.SearchInput) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	flights, err := h.flights.Search(ctx, in)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			if in.Date == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Date is required"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Date must be in YYYY-MM-DD format"})
		}
		h.logger.Error("Failed to search flights", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while fetching flight details"})
	}
	if len(flights) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No flights found matching the criteria"})
	}

	out := make([]flightResponse, 0, len(flights))
	for _, f := range flights {
		out = append(out, toFlightResponse(f))
	}
	return c.JSON(http.StatusOK, out)
}

// FlightStatus handles POST /get-flight-status
func (h *FlightHandler) FlightStatus(c echo.Context) error {
	var req flightStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.flights.UserFlights(ctx, req.Email)
	if err != nil {
		h.logger.Error("Failed to fetch flight status", "email", req.Email, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error fetching flight status"})
	}
	return c.JSON(http.StatusOK, views)
}

func toFlightResponse(f *entity.Flight) flightResponse {
	return flightResponse{
		FlightNumber: f.FlightNumber,
		Airline:      f.Airline,
		Departure:    f.Departure,
		Arrival:      f.Arrival,
		Date:         f.Date.Format(entity.DateLayout),
		Status:       f.Status,
		Gate:         f.Gate,
		Delay:        f.Delay,
		Cancellation: f.Cancellation,
	}
}
