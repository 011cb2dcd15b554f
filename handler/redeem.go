package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"ticketflix/constants"
	"ticketflix/database"
	"ticketflix/helper"
	"ticketflix/model"
	"ticketflix/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const viewCacheTTL = 5 * time.Minute

// ViewCoupon resolves a public redemption token. Read-only: repeated
// calls return the same view and never mutate state, so successful
// resolutions are cached.
func ViewCoupon(c *fiber.Ctx) error {
	token := c.Params("token")

	cacheKey := "coupon:view:" + token
	if cached, err := getRedis().Get(context.Background(), cacheKey).Result(); err == nil {
		if view, ok := cachedView(cached, time.Now()); ok {
			return utils.SuccessResponse(c, fiber.StatusOK, view)
		}
	}

	view, err := resolveToken(database.DB, token, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTokenTampered):
			// security event: valid-looking id with a forged digest
			log.Printf("tampered redemption token from %s: %s", c.IP(), token)
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.COUPON_TAMPERED, nil)
		case errors.Is(err, model.ErrCouponNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, nil)
		case errors.Is(err, model.ErrCouponExpired):
			return utils.ErrorResponse(c, fiber.StatusGone, constants.COUPON_EXPIRED, nil)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if ttl := cacheTTL(view.ValidUntil, time.Now()); ttl > 0 {
		if payload, err := json.Marshal(view); err == nil {
			getRedis().Set(context.Background(), cacheKey, payload, ttl)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, view)
}

// cachedView deserializes a cached entry, rejecting views that
// outlived the coupon validity. An expired cache hit falls through to
// a fresh resolve, which reports Expired.
func cachedView(payload string, now time.Time) (*model.CouponPublicView, bool) {
	var view model.CouponPublicView
	if json.Unmarshal([]byte(payload), &view) != nil {
		return nil, false
	}
	if now.After(view.ValidUntil) {
		return nil, false
	}
	return &view, true
}

// cacheTTL caps the cache lifetime at the remaining coupon validity so
// a cached view can never be served past validUntil.
func cacheTTL(validUntil time.Time, now time.Time) time.Duration {
	ttl := viewCacheTTL
	if remaining := validUntil.Sub(now); remaining < ttl {
		ttl = remaining
	}
	return ttl
}

// resolveToken is the verification core: split at the fixed digest
// boundary, look up by id, recompute the code digest, compare, then
// check expiry. The order matters: a forged digest must report
// Tampered, never NotFound or success.
func resolveToken(db *gorm.DB, token string, now time.Time) (*model.CouponPublicView, error) {
	digestHex, id, err := helper.SplitRedemptionToken(token)
	if err != nil {
		return nil, model.ErrCouponNotFound
	}

	var coupon model.Coupon
	if err := db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrCouponNotFound
		}
		return nil, err
	}

	if helper.HashCouponCode(coupon.Code) != digestHex {
		return nil, model.ErrTokenTampered
	}

	if now.After(coupon.ValidUntil) {
		return nil, model.ErrCouponExpired
	}

	var view model.CouponPublicView
	if err := copier.Copy(&view, &coupon); err != nil {
		return nil, err
	}
	return &view, nil
}
