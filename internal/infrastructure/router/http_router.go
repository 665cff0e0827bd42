package router

import (
	"flightwatch-service/internal/interface/handler"
	"flightwatch-service/pkg/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewEcho creates the server with panic recovery, CORS for browser clients and request logging
func NewEcho(log logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Debug("HTTP request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String())
			return nil
		},
	}))
	return e
}

// Handlers groups the HTTP handlers mounted by RegisterRoutes
type Handlers struct {
	Flights       *handler.FlightHandler
	Users         *handler.UserHandler
	Notifications *handler.NotificationHandler
}

// RegisterRoutes mounts the public API on e.
// cache wraps the flight search endpoints.
func RegisterRoutes(e *echo.Echo, h Handlers, cache echo.MiddlewareFunc) {
	e.GET("/health", handler.Health)

	e.GET("/flight-details", h.Flights.FlightDetails, cache)
	e.GET("/more-option-flight-details", h.Flights.MoreOptionFlightDetails, cache)
	e.POST("/get-flight-status", h.Flights.FlightStatus)

	e.POST("/submit-form", h.Users.SubmitForm)
	e.POST("/login-user", h.Users.Login)

	e.POST("/update-notification-preference", h.Notifications.UpdatePreference)
	e.POST("/update-notification", h.Notifications.UpdatePreference)
	e.GET("/cycle-jobs/:id", h.Notifications.CycleJob)
	e.GET("/notification-history", h.Notifications.History)
}
