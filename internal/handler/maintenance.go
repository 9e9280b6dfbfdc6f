package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/railway-seat-reservation/internal/allocation"
	"github.com/iliyamo/railway-seat-reservation/internal/queue"
	queue_publisher "github.com/iliyamo/railway-seat-reservation/internal/service"
)

// MaintenanceHandler exposes the idempotent reclamation entry point.
// It shares the exact code path with the projector's lazy sweep and
// the background sweeper, so calling it at any time is always safe.
type MaintenanceHandler struct {
	Alloc *allocation.Service
}

// NewMaintenanceHandler constructs a MaintenanceHandler.
func NewMaintenanceHandler(alloc *allocation.Service) *MaintenanceHandler {
	if alloc == nil {
		panic("nil allocation service passed to NewMaintenanceHandler")
	}
	return &MaintenanceHandler{Alloc: alloc}
}

// ReleaseExpired handles POST /v1/maintenance/release-expired.  It
// reclaims every lapsed pending hold and reports how many bookings
// were expired.
func (h *MaintenanceHandler) ReleaseExpired(c echo.Context) error {
	ctx := c.Request().Context()
	reclaimed, err := h.Alloc.ReleaseExpiredLocks(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release expired locks"})
	}
	if reclaimed > 0 {
		// Broker failures are logged by the publisher and ignored here.
		_ = queue_publisher.PublishLocksReclaimed(ctx, queue.LocksReclaimedEvent{
			Reclaimed:   reclaimed,
			ReclaimedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reclaimed": reclaimed,
	})
}
