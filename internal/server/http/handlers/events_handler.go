package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/server/http/stream"
)

// ConnectedEvent is the first event written on a new live channel.
const ConnectedEvent = "connected"

// EventsHandler keeps the seller live channel open.
type EventsHandler struct {
	facade    StreamFacade
	buffer    int
	keepAlive time.Duration
	logger    *slog.Logger
}

// NewEventsHandler constructs EventsHandler.
func NewEventsHandler(facade StreamFacade, buffer int, keepAlive time.Duration, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{facade: facade, buffer: buffer, keepAlive: keepAlive, logger: logger}
}

// Stream handles GET /api/seller/events. The authenticated seller is
// registered for the lifetime of the request.
func (h *EventsHandler) Stream(c *gin.Context) {
	sellerID := CurrentIdentity(c).UserID

	conn := stream.NewConn(h.buffer)
	h.facade.Connect(sellerID, conn)
	defer h.facade.Disconnect(conn)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	_ = conn.Send(ConnectedEvent, gin.H{"seller": sellerID})

	h.logger.Info("seller connected", slog.String("seller", sellerID))
	if err := conn.Serve(c.Request.Context(), c.Writer, h.keepAlive); err != nil {
		h.logger.Debug("live channel write failed", slog.String("seller", sellerID), slog.String("error", err.Error()))
	}
	h.logger.Info("seller disconnected", slog.String("seller", sellerID))
}
