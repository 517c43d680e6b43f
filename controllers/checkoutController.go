package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/bluecilantro/catering-api/services"
	"github.com/gin-gonic/gin"
)

// CreateCheckout validates the submitted cart, persists the order and either
// starts a hosted payment session or, for the test bypass code, confirms
// directly.
func CreateCheckout(ctx *gin.Context) {
	var input services.CheckoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := services.Checkout.Process(&input)
	if err != nil {
		if services.IsValidationError(err) {
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Checkout error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	response := gin.H{
		"success": true,
		"orderId": result.OrderID,
	}
	if result.BypassURL != "" {
		response["bypassUrl"] = result.BypassURL
	} else {
		response["checkoutUrl"] = result.CheckoutURL
	}
	sendJSONResponse(ctx, http.StatusOK, response)
}

// GetCheckoutSession backs the post-payment success page. If the webhook has
// not arrived yet the lookup itself reconciles against the gateway.
func GetCheckoutSession(ctx *gin.Context) {
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Session ID is required")
		return
	}

	order, err := services.Orders.ReconcileBySession(sessionID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("Failed to fetch order by session: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"id":            order.ID,
		"customerName":  order.CustomerName,
		"customerEmail": order.CustomerEmail,
		"scheduledDate": order.ScheduledDate,
		"scheduledTime": order.ScheduledTime,
		"total":         order.Total,
		"paymentStatus": order.PaymentStatus,
	})
}
