package handler

import (
	"errors"
	"ticketflix/constants"
	"ticketflix/database"
	"ticketflix/model"
	"ticketflix/utils"

	"github.com/gofiber/fiber/v2"
)

// DownloadTicketSheet renders the filtered coupons as a printable PDF.
// Presentation only: nothing is written.
func DownloadTicketSheet(c *fiber.Ctx) error {
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

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&coupons).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if len(coupons) == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, errors.New("no coupons match filter"))
	}

	sheet, err := buildSheetForCoupons(coupons)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to build ticket sheet", err)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="coupon_sheet.pdf"`)
	return c.Send(sheet)
}
