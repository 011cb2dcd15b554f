package handler

import (
	"fmt"
	"log"
	"ticketflix/config"
	"ticketflix/constants"
	"ticketflix/database"
	"ticketflix/model"
	"ticketflix/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateBooking persists a pending booking and hands the user off to
// the payment gateway.
func CreateBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateBookingInput)

	transactionId := fmt.Sprintf("TXN_%s_%s", time.Now().Format("20060102"), uuid.New().String()[:12])

	booking := model.Booking{
		TransactionId: transactionId,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		MovieName:     input.MovieName,
		TheatreName:   input.TheatreName,
		ShowTime:      input.ShowTime,
		SeatCount:     input.SeatCount,
		Amount:        input.Amount,
		Status:        constants.BookingInitiated,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to create booking", err)
	}

	phonepe := NewPhonePe()
	redirectUrl, err := phonepe.Initiate(booking)
	if err != nil {
		// booking stays INITIATED; the user can retry with a new booking
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.PAYMENT_GATEWAY_FAIL, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"transactionId": transactionId,
		"paymentUrl":    redirectUrl,
	})
}

// PhonePeCallback receives the gateway's server-to-server status. The
// gateway retries on non-200, so this handler always acknowledges.
// Unknown bookings are logged, never errored back.
func PhonePeCallback(c *fiber.Ctx) error {
	transactionId := c.Params("txnId")

	var input model.CallbackInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("unreadable payment callback for %s: %v", transactionId, err)
		return c.JSON(fiber.Map{"success": true})
	}

	var booking model.Booking
	if err := database.DB.Where("transaction_id = ?", transactionId).First(&booking).Error; err != nil {
		log.Printf("payment callback for unknown booking %s (code %s)", transactionId, input.Code)
		return c.JSON(fiber.Map{"success": true})
	}

	// terminal states are final: re-delivery is a no-op
	if booking.Status != constants.BookingInitiated {
		return c.JSON(fiber.Map{"success": true})
	}

	status := constants.BookingFailure
	if input.Code == "PAYMENT_SUCCESS" {
		status = constants.BookingSuccess
	}

	now := time.Now()
	if err := database.DB.Model(&booking).
		Where("status = ?", constants.BookingInitiated).
		Updates(map[string]any{
			"status":       status,
			"gateway_code": input.Code,
			"completed_at": now,
		}).Error; err != nil {
		log.Printf("failed to update booking %s: %v", transactionId, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// PaymentReturn redirects the end user to the app page matching the
// stored booking outcome.
func PaymentReturn(c *fiber.Ctx) error {
	transactionId := c.Params("txnId")
	appUrl := config.Config("FRONTEND_URL")

	var booking model.Booking
	if err := database.DB.Where("transaction_id = ?", transactionId).First(&booking).Error; err != nil {
		return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=%s", appUrl, constants.BOOKING_NOT_FOUND))
	}

	if booking.Status == constants.BookingSuccess {
		return c.Redirect(fmt.Sprintf("%s/success?txnId=%s", appUrl, transactionId))
	}
	return c.Redirect(fmt.Sprintf("%s/payment-failed?txnId=%s", appUrl, transactionId))
}

func GetBookingStatus(c *fiber.Ctx) error {
	transactionId := c.Params("txnId")

	var booking model.Booking
	if err := database.DB.Where("transaction_id = ?", transactionId).First(&booking).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}
