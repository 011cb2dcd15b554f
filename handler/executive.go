package handler

import (
	"errors"
	"strings"
	"ticketflix/constants"
	"ticketflix/database"
	"ticketflix/helper"
	"ticketflix/model"
	"ticketflix/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func CreateExecutive(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateExecutiveInput)

	db := database.DB
	issuerCode := strings.ToUpper(input.IssuerCode)

	var count int64
	db.Model(&model.Executive{}).Where("issuer_code = ?", issuerCode).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ERROR_INPUT, errors.New("issuer code already in use"))
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var executive model.Executive
	err = db.Transaction(func(tx *gorm.DB) error {
		account := model.Account{
			Username: input.Username,
			Password: hash,
			Active:   true,
			Role:     constants.ROLE_EXECUTIVE,
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		executive = model.Executive{
			FirstName:             input.Firstname,
			LastName:              input.Lastname,
			Email:                 input.Email,
			PhoneNumber:           input.PhoneNumber,
			IssuerCode:            issuerCode,
			AllowCouponGeneration: input.AllowCouponGeneration,
			AllowSaleRecording:    input.AllowSaleRecording,
			IsActive:              true,
			AccountId:             &account.ID,
		}
		return tx.Create(&executive).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to create executive", err)
	}

	if executive.Email != "" {
		utils.SendExecutiveWelcomeEmail(executive.Email, executive.FirstName, input.Username, issuerCode)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, executive)
}

func GetExecutives(c *fiber.Ctx) error {
	_, isAdmin := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filterInput := new(model.FilterExecutive)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	var executives model.Executives
	condition := db.Model(&model.Executive{})

	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(issuer_code) LIKE ? OR LOWER(email) LIKE ?",
			key, key, key, key)
	}
	if filterInput.Active != nil {
		condition = condition.Where("is_active = ?", *filterInput.Active)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&executives).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       executives,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetExecutiveById(c *fiber.Ctx) error {
	executiveId := c.Locals("inputId").(int)

	var executive model.Executive
	if err := database.DB.Preload("Account").First(&executive, "id = ?", executiveId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXECUTIVE_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, executive)
}

func EditExecutive(c *fiber.Ctx) error {
	executiveId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateExecutiveInput)

	db := database.DB
	var executive model.Executive
	if err := db.First(&executive, "id = ?", executiveId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXECUTIVE_NOT_FOUND, err)
	}

	// copier skips nil pointer fields, so partial updates just work
	if err := copier.CopyWithOption(&executive, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Save(&executive).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update executive", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, executive)
}

// UpdateCapabilities flips the administrator-controlled capability
// flags. No other caller may write them.
func UpdateCapabilities(c *fiber.Ctx) error {
	executiveId, err := c.ParamsInt("executiveId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	input := c.Locals("input").(model.UpdateCapabilitiesInput)

	db := database.DB
	var executive model.Executive
	if err := db.First(&executive, "id = ?", executiveId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXECUTIVE_NOT_FOUND, err)
	}

	updates := map[string]any{}
	if input.AllowCouponGeneration != nil {
		updates["allow_coupon_generation"] = *input.AllowCouponGeneration
	}
	if input.AllowSaleRecording != nil {
		updates["allow_sale_recording"] = *input.AllowSaleRecording
	}

	if err := db.Model(&executive).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update capabilities", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, executive)
}

func ActiveExecutive(c *fiber.Ctx) error {
	_, isAdmin := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	executiveId, err := c.ParamsInt("executiveId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	isActive := c.Params("isActive") == "true"

	db := database.DB
	var executive model.Executive
	if err := db.First(&executive, "id = ?", executiveId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EXECUTIVE_NOT_FOUND, err)
	}

	if err := db.Model(&executive).Update("is_active", isActive).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update executive", err)
	}

	// deactivation also locks the linked login
	if executive.AccountId != nil {
		db.Model(&model.Account{}).Where("id = ?", *executive.AccountId).Update("active", isActive)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, executive)
}
