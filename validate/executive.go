package validate

import (
	"errors"
	"ticketflix/constants"
	"ticketflix/helper"
	"ticketflix/model"
	"ticketflix/utils"

	"github.com/gofiber/fiber/v2"
)

func adminOnly(c *fiber.Ctx) error {
	_, isAdmin := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	return nil
}

func CreateExecutive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := adminOnly(c); err != nil {
			return err
		}

		var input model.CreateExecutiveInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func EditExecutive(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := adminOnly(c); err != nil {
			return err
		}

		id, err := c.ParamsInt(key)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		c.Locals("inputId", id)

		var input model.UpdateExecutiveInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateCapabilities() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := adminOnly(c); err != nil {
			return err
		}

		var input model.UpdateCapabilitiesInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if input.AllowCouponGeneration == nil && input.AllowSaleRecording == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("no capability flag supplied"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}
