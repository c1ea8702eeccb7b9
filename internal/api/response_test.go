package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestPaginationDefaults(t *testing.T) {
	h := &Handler{defaultLimit: 20, maxLimit: 100}

	page, limit, offset := h.pagination(testContext(t, "/admin/products"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
}

func TestPaginationClampsLimit(t *testing.T) {
	h := &Handler{defaultLimit: 20, maxLimit: 100}

	_, limit, _ := h.pagination(testContext(t, "/admin/products?limit=500"))
	assert.Equal(t, 100, limit)

	_, limit, _ = h.pagination(testContext(t, "/admin/products?limit=0"))
	assert.Equal(t, 20, limit)

	_, limit, _ = h.pagination(testContext(t, "/admin/products?limit=-3"))
	assert.Equal(t, 20, limit)
}

func TestPaginationOffset(t *testing.T) {
	h := &Handler{defaultLimit: 20, maxLimit: 100}

	page, limit, offset := h.pagination(testContext(t, "/admin/products?page=3&limit=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)

	page, _, offset = h.pagination(testContext(t, "/admin/products?page=-1"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, offset)
}

func TestBoolQuery(t *testing.T) {
	assert.Nil(t, boolQuery(testContext(t, "/admin/products"), "is_active"))

	val := boolQuery(testContext(t, "/admin/products?is_active=true"), "is_active")
	if assert.NotNil(t, val) {
		assert.True(t, *val)
	}

	val = boolQuery(testContext(t, "/admin/products?is_active=false"), "is_active")
	if assert.NotNil(t, val) {
		assert.False(t, *val)
	}

	assert.Nil(t, boolQuery(testContext(t, "/admin/products?is_active=banana"), "is_active"))
}
