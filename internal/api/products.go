package api

import (
	"strconv"

	"admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listProducts(c *gin.Context) {
	page, limit, offset := h.pagination(c)
	categoryID, _ := strconv.ParseInt(c.Query("categoryId"), 10, 64)

	products, total, err := h.productService.ListProducts(
		c.Request.Context(), c.Query("search"), categoryID, boolQuery(c, "isActive"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products, page, limit, total)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	var req service.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
