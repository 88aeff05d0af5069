package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentIdentity(c), usecase.CreateOrderInput{
		Items:       req.ToLines(),
		TotalAmount: req.TotalAmount,
		Customer:    req.Customer,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// MyOrders handles GET /api/orders/my-orders.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.facade.BuyerOrders(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Cancel handles PATCH /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.facade.CancelOrder(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/:id/status and its seller alias.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentIdentity(c), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Invoice handles GET /api/orders/:id/invoice and its seller alias.
func (h *OrderHandler) Invoice(c *gin.Context) {
	file, err := h.facade.Invoice(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
