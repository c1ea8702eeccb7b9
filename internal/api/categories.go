package api

import (
	"admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, categories)
}

func (h *Handler) getCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req service.UpsertCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, category)
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpsertCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *Handler) toggleCategoryStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}
