package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/railway-seat-reservation/internal/repository"
)

// Provisioning defaults matching the standard rolling stock layout:
// four carriages of forty seats (ten rows, letters A-D).
const (
	defaultCarriageCount    = 4
	defaultSeatsPerCarriage = 40
)

// TrainHandler exposes the operator-facing inventory provisioning
// endpoints.  Provisioning is idempotent: repeating a call against a
// train that already has carriages or seats creates nothing.
type TrainHandler struct {
	TrainRepo *repository.TrainRepo // access to trains, carriages and seats
}

// NewTrainHandler constructs a TrainHandler.  The repository must be
// non-nil.
func NewTrainHandler(trainRepo *repository.TrainRepo) *TrainHandler {
	if trainRepo == nil {
		panic("nil repository passed to NewTrainHandler")
	}
	return &TrainHandler{TrainRepo: trainRepo}
}

// GenerateCarriages handles POST /v1/trains/:id/carriages.  The body
// may set "count"; it defaults to the standard four carriages.
func (h *TrainHandler) GenerateCarriages(c echo.Context) error {
	trainID := c.Param("id")
	if trainID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Count <= 0 {
		body.Count = defaultCarriageCount
	}
	created, err := h.TrainRepo.GenerateCarriages(c.Request().Context(), trainID, body.Count)
	if err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"created": created,
	})
}

// GenerateSeats handles POST /v1/trains/:id/seats.  The body may set
// "seats_per_carriage"; it defaults to forty.  Seats are labeled
// <Letter><Row> with rows derived from the per-carriage count.
func (h *TrainHandler) GenerateSeats(c echo.Context) error {
	trainID := c.Param("id")
	if trainID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}
	var body struct {
		SeatsPerCarriage int `json:"seats_per_carriage"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.SeatsPerCarriage <= 0 {
		body.SeatsPerCarriage = defaultSeatsPerCarriage
	}
	created, err := h.TrainRepo.GenerateSeats(c.Request().Context(), trainID, body.SeatsPerCarriage)
	if err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"created": created,
	})
}
