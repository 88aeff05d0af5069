package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SellerHandler serves the seller dashboard.
type SellerHandler struct {
	facade SellerFacade
}

// NewSellerHandler constructs SellerHandler.
func NewSellerHandler(facade SellerFacade) *SellerHandler {
	return &SellerHandler{facade: facade}
}

// Stats handles GET /api/seller/stats.
func (h *SellerHandler) Stats(c *gin.Context) {
	stats, err := h.facade.SellerStats(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Orders handles GET /api/seller/orders.
func (h *SellerHandler) Orders(c *gin.Context) {
	orders, err := h.facade.SellerOrders(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
