package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"admin-api/internal/models"
	"admin-api/internal/service"
	"admin-api/internal/util"

	"github.com/gin-gonic/gin"
)

const adminContextKey = "admin"

// authMiddleware verifies the bearer token and stores the resolved admin
// identity in the request context. Handlers read it via adminFromContext and
// never mutate it.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		admin, err := h.authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			respondAbort(c, err)
			return
		}

		c.Set(adminContextKey, admin)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: service.CodeUnauthorized, Message: message},
	})
}

func respondAbort(c *gin.Context, err error) {
	if de, ok := service.AsDomainError(err); ok {
		status, known := statusByCode[de.Code]
		if !known {
			status = http.StatusInternalServerError
		}
		c.AbortWithStatusJSON(status, Envelope{
			Success: false,
			Error:   &ErrorBody{Code: de.Code, Message: de.Message},
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: service.CodeServerError, Message: "internal server error"},
	})
}

// adminFromContext returns the authenticated admin for this request
func adminFromContext(c *gin.Context) *models.User {
	if v, ok := c.Get(adminContextKey); ok {
		if admin, ok := v.(*models.User); ok {
			return admin
		}
	}
	return nil
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}

// corsMiddleware lets the browser console talk to the API from another origin
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
