package handler

import (
	"errors"
	"fmt"
	"strings"
	"ticketflix/config"
	"ticketflix/constants"
	"ticketflix/database"
	"ticketflix/helper"
	"ticketflix/model"
	"ticketflix/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordSale transitions a coupon unsold -> sold exactly once. The
// coupon row is locked, re-checked, and updated together with the
// issuer counters and the audit row in a single transaction; a
// concurrent seller who lost the race gets AlreadySold, never a
// half-applied state.
func RecordSale(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RecordSaleInput)
	executive := c.Locals("executive").(*model.Executive)

	sale, err := processSale(database.DB, input, executive.ID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCouponNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, nil)
		case errors.Is(err, model.ErrAlreadySold):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.COUPON_ALREADY_SOLD, nil)
		case errors.Is(err, model.ErrCouponExpired):
			return utils.ErrorResponse(c, fiber.StatusGone, constants.COUPON_EXPIRED, nil)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "sale transaction failed", err)
		}
	}

	// post-commit side effects: never fail the sale
	PublishSaleEvent(model.SaleEvent{
		CouponCode: sale.CouponCode,
		IssuerCode: sale.IssuerCode,
		AmountPaid: sale.AmountPaid,
		SeatClass:  sale.Coupon.SeatClass,
		SoldAt:     sale.SoldAt,
	})
	if input.BuyerEmail != "" {
		qrPng, qrErr := utils.GenerateQRCode(helper.RedemptionURL(config.Config("APP_URL"), sale.CouponCode, sale.CouponId), 256)
		if qrErr != nil {
			qrPng = nil
		}
		utils.SendSaleConfirmationEmail(input.BuyerEmail, utils.SaleConfirmationData{
			BuyerName:  sale.BuyerName,
			CouponCode: sale.CouponCode,
			Amount:     sale.AmountPaid,
			SeatClass:  sale.Coupon.SeatClass,
			BankRef:    sale.BankRef,
			SoldAt:     sale.SoldAt.Format("02 Jan 2006 15:04"),
		}, qrPng)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, sale)
}

// processSale holds the only code path allowed to set sale_timestamp or
// touch the sold/unsold counters.
func processSale(db *gorm.DB, input model.RecordSaleInput, recordedBy uint, now time.Time) (*model.SaleRecord, error) {
	code := strings.ToUpper(strings.TrimSpace(input.CouponCode))
	var sale model.SaleRecord

	err := db.Transaction(func(tx *gorm.DB) error {
		// 1-2. resolve among unsold coupons, locking the row. sqlite has
		// no row locks; the guarded update below enforces at-most-once
		// on every backend regardless.
		q := tx.Where("code = ? AND sale_timestamp IS NULL", code)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var coupon model.Coupon
		if err := q.First(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// distinguish sold-out from unknown
				var soldCount int64
				if cntErr := tx.Model(&model.Coupon{}).
					Where("code = ? AND sale_timestamp IS NOT NULL", code).
					Count(&soldCount).Error; cntErr != nil {
					return cntErr
				}
				if soldCount > 0 {
					return model.ErrAlreadySold
				}
				return model.ErrCouponNotFound
			}
			return err
		}

		// 3-4. re-validate under the lock
		if coupon.SaleTimestamp != nil {
			return model.ErrAlreadySold
		}
		if now.After(coupon.ValidUntil) {
			return model.ErrCouponExpired
		}

		// 5. guarded write; RowsAffected must be 1 or someone else won
		result := tx.Model(&model.Coupon{}).
			Where("id = ? AND sale_timestamp IS NULL", coupon.ID).
			Updates(map[string]any{
				"sale_timestamp": now,
				"status":         constants.CouponSold,
				"buyer_name":     input.BuyerName,
				"buyer_phone":    input.BuyerPhone,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return model.ErrAlreadySold
		}

		// 6. move issuer aggregates inside the same commit. A zero-row
		// update means the counters were already out of balance; roll
		// the sale back instead of burying the drift.
		counter := tx.Model(&model.Executive{}).
			Where("issuer_code = ? AND total_unsold > 0", coupon.IssuerCode).
			Updates(map[string]any{
				"total_sold":   gorm.Expr("total_sold + 1"),
				"total_unsold": gorm.Expr("total_unsold - 1"),
			})
		if counter.Error != nil {
			return counter.Error
		}
		if counter.RowsAffected == 0 {
			return fmt.Errorf("issuer counters out of balance for %s", coupon.IssuerCode)
		}

		// 7. immutable audit record
		sale = model.SaleRecord{
			CouponId:   coupon.ID,
			CouponCode: coupon.Code,
			IssuerCode: coupon.IssuerCode,
			AmountPaid: coupon.AmountPaid,
			BuyerName:  input.BuyerName,
			BuyerPhone: input.BuyerPhone,
			BankRef:    input.BankRef,
			SoldAt:     now,
			RecordedBy: recordedBy,
			Coupon:     coupon,
		}
		return tx.Omit("Coupon").Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

func GetSales(c *fiber.Ctx) error {
	filterInput := new(model.FilterCouponInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	var sales []model.SaleRecord
	condition := db.Model(&model.SaleRecord{})

	if filterInput.IssuerCode != "" {
		condition = condition.Where("issuer_code = ?", filterInput.IssuerCode)
	}
	if filterInput.StartDate != nil {
		condition = condition.Where("sold_at >= ?", filterInput.StartDate)
	}
	if filterInput.EndDate != nil {
		condition = condition.Where("sold_at <= ?", filterInput.EndDate)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("sold_at desc").Find(&sales).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       sales,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
