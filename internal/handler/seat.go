package handler

import (
	"errors"   // for errors.Is comparisons
	"net/http" // HTTP status codes
	"strconv"  // parsing query parameters
	"time"     // formatting event timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/railway-seat-reservation/internal/allocation"
	"github.com/iliyamo/railway-seat-reservation/internal/queue"
	queue_publisher "github.com/iliyamo/railway-seat-reservation/internal/service"
)

// SeatHandler exposes the allocation engine over HTTP: availability
// projection, lock acquisition and release, and seat suggestion.
// All heavy lifting lives in the allocation service; the handler only
// parses parameters and maps engine errors to status codes.
type SeatHandler struct {
	Alloc *allocation.Service // the seat allocation engine
}

// NewSeatHandler constructs a SeatHandler.  The service must be non-nil.
func NewSeatHandler(alloc *allocation.Service) *SeatHandler {
	if alloc == nil {
		panic("nil allocation service passed to NewSeatHandler")
	}
	return &SeatHandler{Alloc: alloc}
}

// segmentParams reads the from/to stop orders from the query string.
func segmentParams(c echo.Context) (uint32, uint32, bool) {
	from, err := strconv.ParseUint(c.QueryParam("from"), 10, 32)
	if err != nil {
		return 0, 0, false
	}
	to, err := strconv.ParseUint(c.QueryParam("to"), 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return uint32(from), uint32(to), true
}

// engineError maps allocation sentinel errors to JSON responses.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, allocation.ErrTripNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
	case errors.Is(err, allocation.ErrInvalidSegment):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stop segment"})
	case errors.Is(err, allocation.ErrNoSeats):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids is required"})
	case errors.Is(err, allocation.ErrInvalidSeatCount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be at least 1"})
	case errors.Is(err, allocation.ErrSeatConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "some seats are already held or booked for this segment"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// GetAvailability handles GET /v1/trips/:id/seats?from=&to=.  It
// returns the per-carriage availability projection for the requested
// segment.  Expired holds are reclaimed before projecting, so the
// response never shows stale holds as held.
func (h *SeatHandler) GetAvailability(c echo.Context) error {
	tripID := c.Param("id")
	if tripID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	from, to, ok := segmentParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to query parameters are required"})
	}
	availability, err := h.Alloc.GetAvailableSeats(c.Request().Context(), tripID, from, to)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"trip_id":   tripID,
		"from":      from,
		"to":        to,
		"carriages": availability,
	})
}

// LockSeats handles POST /v1/trips/:id/seats/lock.  The body must
// contain seat_ids, from_stop, to_stop and a holder_token.  On
// success it returns 201 with the created reservations and the hold
// expiry; a seat already taken for an overlapping segment yields 409
// and nothing is persisted.
func (h *SeatHandler) LockSeats(c echo.Context) error {
	tripID := c.Param("id")
	if tripID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	var body struct {
		SeatIDs     []string `json:"seat_ids"`
		FromStop    uint32   `json:"from_stop"`
		ToStop      uint32   `json:"to_stop"`
		HolderToken string   `json:"holder_token"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.SeatIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids is required"})
	}
	if body.HolderToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "holder_token is required"})
	}

	ctx := c.Request().Context()
	reservations, err := h.Alloc.LockSeats(ctx, tripID, body.SeatIDs, body.FromStop, body.ToStop, body.HolderToken)
	if err != nil {
		return engineError(c, err)
	}

	seatIDs := make([]string, 0, len(reservations))
	for _, r := range reservations {
		seatIDs = append(seatIDs, r.SeatID)
	}
	expiresAt := reservations[0].LockExpiresAt

	// Fire-and-forget: a broker outage must not fail the lock.
	_ = queue_publisher.PublishSeatsLocked(ctx, queue.SeatsLockedEvent{
		BookingID:     reservations[0].BookingID,
		TripID:        tripID,
		HolderToken:   body.HolderToken,
		SeatIDs:       seatIDs,
		FromStopOrder: body.FromStop,
		ToStopOrder:   body.ToStop,
		ExpiresAt:     expiresAt.Format(time.RFC3339),
		LockedAt:      time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id": reservations[0].BookingID,
		"seat_ids":   seatIDs,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// UnlockSeats handles POST /v1/trips/:id/seats/unlock.  It releases
// pending holds on the named seats.  When nothing matched the call
// still succeeds with released=0 and success=false, so "already
// released" is distinguishable without being an error.
func (h *SeatHandler) UnlockSeats(c echo.Context) error {
	tripID := c.Param("id")
	if tripID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	var body struct {
		SeatIDs []string `json:"seat_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.SeatIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids is required"})
	}
	released, err := h.Alloc.UnlockSeats(c.Request().Context(), tripID, body.SeatIDs)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  released > 0,
		"released": released,
	})
}

// SuggestSeats handles GET /v1/trips/:id/seats/suggest?from=&to=&count=.
// It runs the contiguous-block search over the current availability
// and returns the best group; "no seats" conditions come back as an
// empty list with a reason rather than an error.
func (h *SeatHandler) SuggestSeats(c echo.Context) error {
	tripID := c.Param("id")
	if tripID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	from, to, ok := segmentParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to query parameters are required"})
	}
	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count query parameter is required"})
	}
	result, err := h.Alloc.SuggestSeats(c.Request().Context(), tripID, from, to, count)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
