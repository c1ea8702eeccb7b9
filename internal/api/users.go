package api

import (
	"admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listUsers(c *gin.Context) {
	page, limit, offset := h.pagination(c)

	users, total, err := h.userService.ListUsers(
		c.Request.Context(), c.Query("search"), c.Query("role"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, users, page, limit, total)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

func (h *Handler) toggleUserStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

func (h *Handler) listNotifications(c *gin.Context) {
	page, limit, offset := h.pagination(c)

	notifications, total, err := h.notificationService.ListNotifications(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, notifications, page, limit, total)
}

func (h *Handler) createNotification(c *gin.Context) {
	var req service.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	notification, err := h.notificationService.CreateNotification(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, notification)
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, notification)
}
