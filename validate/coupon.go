package validate

import (
	"errors"
	"ticketflix/constants"
	"ticketflix/helper"
	"ticketflix/model"
	"ticketflix/utils"

	"github.com/gofiber/fiber/v2"
)

// GenerateCoupons gates coupon minting on the caller's capability flag
// and stashes the parsed input plus the executive record.
func GenerateCoupons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountInfo, _ := helper.GetInfoAccountFromToken(c)

		executive, err := helper.GetExecutiveByAccountId(accountInfo.AccountId)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if executive == nil || !executive.IsActive {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXECUTIVE_NOT_FOUND, errors.New("no active executive for account"))
		}
		if !executive.AllowCouponGeneration {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ALLOWED, errors.New("coupon generation not permitted"))
		}

		var input model.GenerateCouponInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)
		c.Locals("executive", executive)
		return c.Next()
	}
}

func FilterCoupons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filterInput := new(model.FilterCouponInput)
		if err := c.QueryParser(filterInput); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(filterInput); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("filter", filterInput)
		return c.Next()
	}
}
