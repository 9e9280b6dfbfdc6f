package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/railway-seat-reservation/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/railway-seat-reservation/internal/middleware" // operator token enforcement
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterSeats registers the public seat endpoints: availability
// projection, lock acquisition/release and seat suggestion.  Callers
// identify their holds with an opaque holder token, so none of these
// routes require authentication; abuse is kept in check by the
// rate-limit middleware installed globally in main.
func RegisterSeats(e *echo.Echo, h *handler.SeatHandler) {
	g := e.Group("/v1/trips/:id/seats")
	// Availability projection for a stop segment.  Seat status is
	// derived from reservations and live holds; values can be
	// available, held or booked.
	g.GET("", h.GetAvailability)
	// Best contiguous seat group for a party of ?count= travellers.
	g.GET("/suggest", h.SuggestSeats)
	// Place a five-minute exclusive hold on specific seats.
	g.POST("/lock", h.LockSeats)
	// Release previously held seats before the hold expires.
	g.POST("/unlock", h.UnlockSeats)
}

// RegisterOperator registers inventory provisioning and maintenance
// endpoints under /v1.  All routes require a valid operator bearer
// token signed with the shared secret.
func RegisterOperator(e *echo.Echo, t *handler.TrainHandler, m *handler.MaintenanceHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.OperatorAuth(jwtSecret),
	)
	// Idempotent carriage and seat provisioning for a train.
	g.POST("/trains/:id/carriages", t.GenerateCarriages)
	g.POST("/trains/:id/seats", t.GenerateSeats)
	// On-demand reclamation of expired holds.  The same routine runs
	// lazily on every availability read, so this only exists for
	// promptness and operational tooling.
	g.POST("/maintenance/release-expired", m.ReleaseExpired)
}
