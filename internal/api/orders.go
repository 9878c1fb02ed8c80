package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pizzabot/internal/models"
)

const invalidStatusLabel = "invalid"

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders returns every order, newest first.
func (s *Server) ListOrders(c *gin.Context) {
	orders, err := s.orders.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// SearchOrders returns the orders whose customer name contains ?name=,
// newest first. An empty name returns every order.
func (s *Server) SearchOrders(c *gin.Context) {
	orders, err := s.orders.FindByNameFuzzy(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order. Returns 404 if the order does not exist.
func (s *Server) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := s.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order to a new status and returns the updated order.
func (s *Server) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "status"})
		return
	}

	// unknown statuses share one label so clients cannot mint series
	label := invalidStatusLabel
	status, known := models.ParseOrderStatus(req.Status)
	if known {
		label = string(status)
	} else {
		status = models.OrderStatus(req.Status)
	}

	ctx := c.Request.Context()
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		result := "error"
		if models.IsValidation(err) || errors.Is(err, models.ErrInvalidTransition) || errors.Is(err, models.ErrNotFound) {
			result = "rejected"
		}
		s.metrics.ObserveStatusUpdate(label, result)
		respondError(c, err)
		return
	}
	s.metrics.ObserveStatusUpdate(label, "ok")

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "field": "id"})
		return 0, false
	}
	return uint(id), true
}
