package api

import (
	"admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listBanners(c *gin.Context) {
	banners, err := h.bannerService.ListBanners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, banners)
}

func (h *Handler) getBanner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	banner, err := h.bannerService.GetBanner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, banner)
}

func (h *Handler) createBanner(c *gin.Context) {
	var req service.UpsertBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	banner, err := h.bannerService.CreateBanner(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, banner)
}

func (h *Handler) updateBanner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpsertBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	banner, err := h.bannerService.UpdateBanner(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, banner)
}

func (h *Handler) deleteBanner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.bannerService.DeleteBanner(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *Handler) toggleBannerStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	banner, err := h.bannerService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, banner)
}
