package handler

import (
	"net/http/httptest"
	"strings"
	"testing"
	"ticketflix/constants"
	"ticketflix/database"
	"ticketflix/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callbackApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Post("/payment/callback/:txnId", PhonePeCallback)
	return app
}

func postCallback(t *testing.T, app *fiber.App, txnId, code string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/payment/callback/"+txnId, strings.NewReader(`{"code":"`+code+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCallbackAppliesTerminalStatus(t *testing.T) {
	database.DB = setupTestDB(t)
	app := callbackApp(t)

	require.NoError(t, database.DB.Create(&model.Booking{
		TransactionId: "TXN_OK",
		Amount:        500,
		Status:        constants.BookingInitiated,
	}).Error)

	status := postCallback(t, app, "TXN_OK", "PAYMENT_SUCCESS")
	assert.Equal(t, 200, status)

	var booking model.Booking
	require.NoError(t, database.DB.Where("transaction_id = ?", "TXN_OK").First(&booking).Error)
	assert.Equal(t, constants.BookingSuccess, booking.Status)
	assert.Equal(t, "PAYMENT_SUCCESS", booking.GatewayCode)
	require.NotNil(t, booking.CompletedAt)
}

func TestCallbackIsIdempotent(t *testing.T) {
	database.DB = setupTestDB(t)
	app := callbackApp(t)

	require.NoError(t, database.DB.Create(&model.Booking{
		TransactionId: "TXN_TWICE",
		Amount:        500,
		Status:        constants.BookingInitiated,
	}).Error)

	require.Equal(t, 200, postCallback(t, app, "TXN_TWICE", "PAYMENT_SUCCESS"))

	var first model.Booking
	require.NoError(t, database.DB.Where("transaction_id = ?", "TXN_TWICE").First(&first).Error)

	// the gateway may re-deliver; the record must not change again
	require.Equal(t, 200, postCallback(t, app, "TXN_TWICE", "PAYMENT_SUCCESS"))
	require.Equal(t, 200, postCallback(t, app, "TXN_TWICE", "PAYMENT_ERROR"))

	var second model.Booking
	require.NoError(t, database.DB.Where("transaction_id = ?", "TXN_TWICE").First(&second).Error)
	assert.Equal(t, constants.BookingSuccess, second.Status)
	assert.Equal(t, first.GatewayCode, second.GatewayCode)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))
}

func TestCallbackFailureCode(t *testing.T) {
	database.DB = setupTestDB(t)
	app := callbackApp(t)

	require.NoError(t, database.DB.Create(&model.Booking{
		TransactionId: "TXN_BAD",
		Amount:        500,
		Status:        constants.BookingInitiated,
	}).Error)

	require.Equal(t, 200, postCallback(t, app, "TXN_BAD", "PAYMENT_ERROR"))

	var booking model.Booking
	require.NoError(t, database.DB.Where("transaction_id = ?", "TXN_BAD").First(&booking).Error)
	assert.Equal(t, constants.BookingFailure, booking.Status)
}

func TestCallbackUnknownBookingStillAcknowledged(t *testing.T) {
	database.DB = setupTestDB(t)
	app := callbackApp(t)

	// a 200 even for unknown ids keeps the gateway from retrying forever
	assert.Equal(t, 200, postCallback(t, app, "TXN_GHOST", "PAYMENT_SUCCESS"))
}

func TestCallbackUnreadableBodyStillAcknowledged(t *testing.T) {
	database.DB = setupTestDB(t)
	app := callbackApp(t)

	req := httptest.NewRequest("POST", "/payment/callback/TXN_OK", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
