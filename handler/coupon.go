package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"ticketflix/config"
	"ticketflix/constants"
	"ticketflix/database"
	"ticketflix/helper"
	"ticketflix/model"
	"ticketflix/utils"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateCoupons mints a batch for the calling executive. Coupon rows
// and the issuer's issued/unsold counters move in one transaction, so a
// store failure leaves no partial batch behind.
func GenerateCoupons(c *fiber.Ctx) error {
	input := c.Locals("input").(model.GenerateCouponInput)
	executive := c.Locals("executive").(*model.Executive)

	db := database.DB
	now := time.Now()
	validUntil := now.Add(time.Duration(input.ValidDays) * 24 * time.Hour)

	var coupons model.Coupons
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < input.Count; i++ {
			code, err := helper.GenerateUniqueCouponCode(tx)
			if err != nil {
				return err
			}
			coupons = append(coupons, model.Coupon{
				Code:        code,
				AmountPaid:  input.AmountPaid,
				IssuerCode:  executive.IssuerCode,
				SeatClass:   input.SeatClass,
				Status:      constants.CouponIssued,
				GeneratedAt: now,
				ValidUntil:  validUntil,
			})
		}
		if err := tx.Create(&coupons).Error; err != nil {
			return err
		}

		return tx.Model(&model.Executive{}).
			Where("id = ?", executive.ID).
			Updates(map[string]any{
				"total_issued": gorm.Expr("total_issued + ?", input.Count),
				"total_unsold": gorm.Expr("total_unsold + ?", input.Count),
			}).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to generate coupons", err)
	}

	// Mail the printable sheet (async, best effort)
	if executive.Email != "" {
		if sheet, err := buildSheetForCoupons(coupons); err == nil {
			utils.SendCouponIssuedEmail(executive.Email, utils.CouponIssuedData{
				IssuerCode: executive.IssuerCode,
				Count:      len(coupons),
				Amount:     input.AmountPaid,
				ValidUntil: validUntil.Format("02 Jan 2006 15:04"),
			}, sheet)
		} else {
			log.Printf("failed to build coupon sheet for %s: %v", executive.IssuerCode, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"coupons": coupons,
		"count":   len(coupons),
	})
}

// RenderCouponQR encodes the redemption URL, uploads the PNG to blob
// storage at a deterministic path, and only then persists qr_image_url.
// On upload failure the column stays NULL so callers never see a QR
// that does not exist.
func RenderCouponQR(c *fiber.Ctx) error {
	couponId, err := c.ParamsInt("couponId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	db := database.DB
	var coupon model.Coupon
	if err := db.First(&coupon, "id = ?", couponId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, err)
	}

	redemptionUrl := helper.RedemptionURL(config.Config("APP_URL"), coupon.Code, coupon.ID)
	qrBytes, err := utils.GenerateQRCode(redemptionUrl, 512)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to render QR", err)
	}

	cld, ok := c.Locals("cld").(*cloudinary.Cloudinary)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("cloudinary not configured"))
	}

	publicId := fmt.Sprintf("coupons/%s/%d", slug.Make(coupon.IssuerCode), coupon.ID)
	result, err := cld.Upload.Upload(context.Background(), bytes.NewReader(qrBytes), uploader.UploadParams{
		PublicID:  publicId,
		Overwrite: utils.Ptr(true),
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "QR upload failed", err)
	}

	if err := db.Model(&coupon).Update("qr_image_url", result.SecureURL).Error; err != nil {
		// keep storage and DB consistent: drop the orphaned upload
		cld.Upload.Destroy(context.Background(), uploader.DestroyParams{PublicID: publicId})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to persist QR url", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"couponId":   coupon.ID,
		"qrImageUrl": result.SecureURL,
	})
}

func GetCoupons(c *fiber.Ctx) error {
	filterInput := c.Locals("filter").(*model.FilterCouponInput)

	db := database.DB
	var coupons model.Coupons
	condition := db.Model(&model.Coupon{})

	if filterInput.IssuerCode != "" {
		condition = condition.Where("issuer_code = ?", filterInput.IssuerCode)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.StartDate != nil {
		condition = condition.Where("generated_at >= ?", filterInput.StartDate)
	}
	if filterInput.EndDate != nil {
		condition = condition.Where("generated_at <= ?", filterInput.EndDate)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&coupons).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       coupons,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetCouponById(c *fiber.Ctx) error {
	couponId := c.Locals("inputId").(int)

	var coupon model.Coupon
	if err := database.DB.First(&coupon, "id = ?", couponId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"coupon":        coupon,
		"redemptionUrl": helper.RedemptionURL(config.Config("APP_URL"), coupon.Code, coupon.ID),
	})
}

func buildSheetForCoupons(coupons model.Coupons) ([]byte, error) {
	baseUrl := config.Config("APP_URL")
	blocks := make([]utils.TicketBlock, 0, len(coupons))
	for _, coupon := range coupons {
		qrBytes, err := utils.GenerateQRCode(helper.RedemptionURL(baseUrl, coupon.Code, coupon.ID), 256)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, utils.TicketBlock{Coupon: coupon, QRPng: qrBytes})
	}
	return utils.BuildTicketSheet(blocks)
}
