package handler

import (
	"encoding/json"
	"strings"
	"testing"
	"ticketflix/helper"
	"ticketflix/model"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTokenReturnsRedactedView(t *testing.T) {
	db := setupTestDB(t)
	seedExecutive(t, db, "AB1234")
	coupon := seedCoupon(t, db, "TFAAAA1111", "AB1234", time.Now().Add(time.Hour))

	token := helper.RedemptionToken(coupon.Code, coupon.ID)

	view, err := resolveToken(db, token, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "TFAAAA1111", view.Code)
	assert.Equal(t, 200.0, view.AmountPaid)
	assert.Equal(t, "AB1234", view.IssuerCode)
}

func TestResolveTokenIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seedExecutive(t, db, "AB1234")
	coupon := seedCoupon(t, db, "TFAAAA1111", "AB1234", time.Now().Add(time.Hour))

	token := helper.RedemptionToken(coupon.Code, coupon.ID)

	first, err := resolveToken(db, token, time.Now())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := resolveToken(db, token, time.Now())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// resolution never mutates the record
	var stored model.Coupon
	require.NoError(t, db.First(&stored, coupon.ID).Error)
	assert.Nil(t, stored.SaleTimestamp)
	assert.Equal(t, coupon.Status, stored.Status)
}

func TestResolveTokenDetectsTampering(t *testing.T) {
	db := setupTestDB(t)
	seedExecutive(t, db, "AB1234")
	coupon := seedCoupon(t, db, "TFAAAA1111", "AB1234", time.Now().Add(time.Hour))

	// valid id, forged digest: must be Tampered, never NotFound
	forged := strings.Repeat("ab", helper.DigestHexLen/2) + helper.RedemptionToken(coupon.Code, coupon.ID)[helper.DigestHexLen:]

	_, err := resolveToken(db, forged, time.Now())
	assert.ErrorIs(t, err, model.ErrTokenTampered)
}

func TestResolveTokenUnknownId(t *testing.T) {
	db := setupTestDB(t)

	token := helper.RedemptionToken("TFGHOST000", 9999)
	_, err := resolveToken(db, token, time.Now())
	assert.ErrorIs(t, err, model.ErrCouponNotFound)
}

func TestResolveTokenMalformedIsNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := resolveToken(db, "garbage", time.Now())
	assert.ErrorIs(t, err, model.ErrCouponNotFound)
}

func TestCachedViewRejectsExpiredEntry(t *testing.T) {
	now := time.Now()
	payload, err := json.Marshal(model.CouponPublicView{
		Code:       "TFAAAA1111",
		AmountPaid: 200.0,
		IssuerCode: "AB1234",
		ValidUntil: now.Add(time.Minute),
	})
	require.NoError(t, err)

	view, ok := cachedView(string(payload), now)
	require.True(t, ok)
	assert.Equal(t, "TFAAAA1111", view.Code)

	// the same entry stops resolving once validity has lapsed
	_, ok = cachedView(string(payload), now.Add(time.Minute+time.Second))
	assert.False(t, ok)

	_, ok = cachedView("not json", now)
	assert.False(t, ok)
}

func TestCacheTTLNeverOutlivesValidity(t *testing.T) {
	now := time.Now()

	// plenty of validity left: full TTL
	assert.Equal(t, viewCacheTTL, cacheTTL(now.Add(time.Hour), now))

	// validity ends inside the TTL window: capped to what remains
	assert.Equal(t, time.Minute, cacheTTL(now.Add(time.Minute), now))

	// already at the boundary: nothing worth caching
	assert.LessOrEqual(t, cacheTTL(now, now), time.Duration(0))
}

func TestResolveTokenExpiryBoundary(t *testing.T) {
	db := setupTestDB(t)
	seedExecutive(t, db, "AB1234")

	now := time.Now()
	past := seedCoupon(t, db, "TFPAST0000", "AB1234", now.Add(-time.Second))
	next := seedCoupon(t, db, "TFNEXT0000", "AB1234", now.Add(time.Second))

	_, err := resolveToken(db, helper.RedemptionToken(past.Code, past.ID), now)
	assert.ErrorIs(t, err, model.ErrCouponExpired)

	_, err = resolveToken(db, helper.RedemptionToken(next.Code, next.ID), now)
	assert.NoError(t, err)
}
