package api

import (
	"admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listOrders(c *gin.Context) {
	page, limit, offset := h.pagination(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orders, page, limit, total)
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, detail)
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	order, err := h.orderService.Transition(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}
