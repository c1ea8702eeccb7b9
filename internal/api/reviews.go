package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listReviews(c *gin.Context) {
	page, limit, offset := h.pagination(c)
	productID, _ := strconv.ParseInt(c.Query("productId"), 10, 64)

	reviews, total, err := h.reviewService.ListReviews(
		c.Request.Context(), productID, boolQuery(c, "approved"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, reviews, page, limit, total)
}

func (h *Handler) approveReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, review)
}

func (h *Handler) rejectReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Reject(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"rejected": true})
}

func (h *Handler) deleteReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
