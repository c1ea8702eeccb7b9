package service

import (
	"database/sql"
	"testing"
	"time"

	"admin-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func save10() *models.Coupon {
	return &models.Coupon{
		Code:              "SAVE10",
		DiscountType:      models.DiscountTypePercentage,
		Value:             10,
		MinOrderAmount:    sql.NullFloat64{Float64: 50, Valid: true},
		MaxDiscountAmount: sql.NullFloat64{Float64: 20, Valid: true},
		UserLimit:         1,
		IsActive:          true,
		StartDate:         time.Now().Add(-24 * time.Hour),
		ExpiryDate:        time.Now().Add(24 * time.Hour),
	}
}

func TestComputeDiscountPercentageClamped(t *testing.T) {
	c := save10()

	assert.Equal(t, 20.0, ComputeDiscount(c, 300), "10 percent of 300 clamps to the 20 cap")
	assert.Equal(t, 10.0, ComputeDiscount(c, 100))
}

func TestComputeDiscountPercentageNoCap(t *testing.T) {
	c := save10()
	c.MaxDiscountAmount = sql.NullFloat64{}

	assert.Equal(t, 30.0, ComputeDiscount(c, 300))
}

func TestComputeDiscountFixedNeverExceedsOrder(t *testing.T) {
	c := &models.Coupon{DiscountType: models.DiscountTypeFixed, Value: 25}

	assert.Equal(t, 25.0, ComputeDiscount(c, 100))
	assert.Equal(t, 15.0, ComputeDiscount(c, 15))
}

func TestCheckCouponMinOrderAmount(t *testing.T) {
	c := save10()

	err := checkCoupon(c, 40, time.Now())
	assert.Error(t, err)

	err = checkCoupon(c, 50, time.Now())
	assert.NoError(t, err)
}

func TestCheckCouponWindow(t *testing.T) {
	c := save10()

	err := checkCoupon(c, 100, c.StartDate.Add(-time.Hour))
	assert.Error(t, err, "before start date")

	err = checkCoupon(c, 100, c.ExpiryDate.Add(time.Hour))
	assert.Error(t, err, "after expiry")

	err = checkCoupon(c, 100, c.StartDate)
	assert.NoError(t, err, "window start is inclusive")

	err = checkCoupon(c, 100, c.ExpiryDate)
	assert.NoError(t, err, "window end is inclusive")
}

func TestCheckCouponInactive(t *testing.T) {
	c := save10()
	c.IsActive = false

	err := checkCoupon(c, 100, time.Now())
	assert.Error(t, err)
}

func TestCheckCouponGlobalLimit(t *testing.T) {
	c := save10()
	c.UsageLimit = sql.NullInt64{Int64: 5, Valid: true}
	c.UsageCount = 5

	err := checkCoupon(c, 100, time.Now())
	assert.Error(t, err)

	c.UsageCount = 4
	err = checkCoupon(c, 100, time.Now())
	assert.NoError(t, err)
}

func TestCheckCouponErrorsCarryBadRequestCode(t *testing.T) {
	c := save10()
	c.IsActive = false

	err := checkCoupon(c, 100, time.Now())
	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeBadRequest, de.Code)
}
