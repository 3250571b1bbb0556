package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Canyildiz1386/SultanPanelBot/internal/handler"
	"github.com/Canyildiz1386/SultanPanelBot/internal/middleware"
)

// Setup configures all routes for the Echo server: the payment
// processors' redirect pages and status webhooks, and a health check.
func Setup(
	e *echo.Echo,
	paymentCallback *handler.PaymentCallbackHandler,
	deduper middleware.PaymentDeduper,
	logger *zap.Logger,
) {
	e.Use(echomw.Recover())

	// Redirect pages (GET and POST: Perfect Money uses either).
	e.GET("/payment-confirmed", paymentCallback.Confirmed)
	e.POST("/payment-confirmed", paymentCallback.Confirmed)
	e.GET("/payment-failed", paymentCallback.Failed)
	e.POST("/payment-failed", paymentCallback.Failed)

	// Status webhooks, deduplicated by payment id at the edge.
	e.POST("/payment-status",
		paymentCallback.PerfectMoneyStatus,
		middleware.PaymentStatusDedup(deduper, func(c echo.Context) string {
			return c.FormValue("PAYMENT_ID")
		}))
	e.POST("/payeer-status",
		paymentCallback.PayeerStatus,
		middleware.PaymentStatusDedup(deduper, func(c echo.Context) string {
			return c.FormValue("m_orderid")
		}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	logger.Info("HTTP routes registered")
}
