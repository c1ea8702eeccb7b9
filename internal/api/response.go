package api

import (
	"net/http"
	"strconv"

	"admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Envelope shapes every response
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// Meta carries offset pagination info for list responses
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ErrorBody is the typed error payload
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var statusByCode = map[string]int{
	service.CodeUnauthorized:    http.StatusUnauthorized,
	service.CodeForbidden:       http.StatusForbidden,
	service.CodeNotFound:        http.StatusNotFound,
	service.CodeBadRequest:      http.StatusBadRequest,
	service.CodeConflict:        http.StatusConflict,
	service.CodeValidationError: http.StatusUnprocessableEntity,
	service.CodeServerError:     http.StatusInternalServerError,
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func respondList(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Meta:    &Meta{Page: page, Limit: limit, Total: total},
	})
}

// respondError maps a domain error code to its HTTP status; anything without
// a code is a SERVER_ERROR and the raw message stays out of the envelope.
func respondError(c *gin.Context, err error) {
	if de, ok := service.AsDomainError(err); ok {
		status, known := statusByCode[de.Code]
		if !known {
			status = http.StatusInternalServerError
		}
		c.JSON(status, Envelope{Success: false, Error: &ErrorBody{Code: de.Code, Message: de.Message}})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: service.CodeServerError, Message: "internal server error"},
	})
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: service.CodeValidationError, Message: err.Error()},
	})
}

// pagination parses page and limit query params with defaults and a cap
func (h *Handler) pagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultLimit)))
	if limit < 1 {
		limit = h.defaultLimit
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	return page, limit, (page - 1) * limit
}

// pathID parses the :id path param
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, service.NewError(service.CodeValidationError, "invalid id: %s", c.Param("id")))
		return 0, false
	}
	return id, true
}

// boolQuery parses an optional true/false query param
func boolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &val
}
