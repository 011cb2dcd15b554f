package validate

import (
	"errors"
	"fmt"
	"ticketflix/constants"
	"ticketflix/helper"
	"ticketflix/model"
	"ticketflix/utils"

	"github.com/gofiber/fiber/v2"
)

// RecordSale rejects malformed input before any store call: the sale
// transaction must only ever see well-formed buyer details.
func RecordSale() fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountInfo, _ := helper.GetInfoAccountFromToken(c)

		executive, err := helper.GetExecutiveByAccountId(accountInfo.AccountId)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if executive == nil || !executive.IsActive {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXECUTIVE_NOT_FOUND, errors.New("no active executive for account"))
		}
		if !executive.AllowSaleRecording {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ALLOWED, errors.New("sale recording not permitted"))
		}

		var input model.RecordSaleInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if !utils.IsDigits(input.BuyerPhone, constants.BuyerPhoneDigits) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT,
				fmt.Errorf("buyerPhone must be exactly %d digits", constants.BuyerPhoneDigits))
		}
		if !utils.IsDigits(input.BankRef, constants.BankRefDigits) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT,
				fmt.Errorf("bankRef must be exactly %d digits", constants.BankRefDigits))
		}

		c.Locals("input", input)
		c.Locals("executive", executive)
		return c.Next()
	}
}
