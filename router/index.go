package router

import (
	"ticketflix/handler"
	"ticketflix/middleware"
	"ticketflix/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// public redemption + payment surfaces (no /api prefix: these URLs
	// live inside printed QR codes and gateway config)
	app.Get("/view-coupon/:token", handler.ViewCoupon)
	app.Post("/payment/callback/:txnId", handler.PhonePeCallback)
	app.Get("/payment/return/:txnId", handler.PaymentReturn)

	app.Get("/ws/sales", websocket.New(handler.SaleFeedConnection))

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)

	executive := v1.Group("/executive", logger.New())
	executive.Get("/", middleware.Protected(), handler.GetExecutives)
	executive.Get("/:executiveId", middleware.Protected(), validate.GetById("executiveId"), handler.GetExecutiveById)
	executive.Post("/", middleware.Protected(), validate.CreateExecutive(), handler.CreateExecutive)
	executive.Put("/:executiveId", middleware.Protected(), validate.EditExecutive("executiveId"), handler.EditExecutive)
	executive.Patch("/:executiveId/capabilities", middleware.Protected(), validate.UpdateCapabilities(), handler.UpdateCapabilities)
	executive.Patch("/:executiveId/active/:isActive", middleware.Protected(), handler.ActiveExecutive)

	coupon := v1.Group("/coupon", logger.New())
	coupon.Get("/", middleware.Protected(), validate.FilterCoupons(), handler.GetCoupons)
	coupon.Get("/sheet", middleware.Protected(), validate.FilterCoupons(), handler.DownloadTicketSheet)
	coupon.Get("/:couponId", middleware.Protected(), validate.GetById("couponId"), handler.GetCouponById)
	coupon.Post("/", middleware.Protected(), validate.GenerateCoupons(), handler.GenerateCoupons)
	coupon.Post("/:couponId/qr", middleware.Protected(), handler.RenderCouponQR)

	sale := v1.Group("/sale", logger.New())
	sale.Post("/", middleware.Protected(), validate.RecordSale(), handler.RecordSale)
	sale.Get("/", middleware.Protected(), handler.GetSales)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/", validate.CreateBooking(), handler.CreateBooking)
	payment.Get("/:txnId", handler.GetBookingStatus)
}
