package api

import (
	"admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listCoupons(c *gin.Context) {
	page, limit, offset := h.pagination(c)

	coupons, total, err := h.couponService.ListCoupons(
		c.Request.Context(), c.Query("search"), boolQuery(c, "isActive"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, coupons, page, limit, total)
}

func (h *Handler) getCoupon(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	coupon, err := h.couponService.GetCoupon(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, coupon)
}

func (h *Handler) createCoupon(c *gin.Context) {
	var req service.UpsertCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, coupon)
}

func (h *Handler) updateCoupon(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpsertCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, coupon)
}

func (h *Handler) deleteCoupon(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *Handler) validateCoupon(c *gin.Context) {
	var req service.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.couponService.Validate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *Handler) redeemCoupon(c *gin.Context) {
	var req service.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.couponService.Redeem(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}
