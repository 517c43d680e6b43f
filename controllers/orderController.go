package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/bluecilantro/catering-api/services"
	"github.com/gin-gonic/gin"
)

// CreateOrder is the direct order-creation path with no payment leg; phone
// and email orders get entered through it.
func CreateOrder(ctx *gin.Context) {
	var input services.DirectOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := services.Checkout.ProcessDirect(&input)
	if err != nil {
		if services.IsValidationError(err) {
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Failed to create order: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"orderId": order.ID,
		"message": "Order placed successfully",
	})
}

func GetOrders(ctx *gin.Context) {
	var date *time.Time
	if dateStr := ctx.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid date")
			return
		}
		date = &parsed
	}

	orders, err := services.OrderStore.List(ctx.Query("status"), date)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

func GetOrder(ctx *gin.Context) {
	order, err := services.OrderStore.GetByID(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	if order == nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// UpdateOrderStatus applies an admin status transition. Confirming an
// authorized order captures the payment first; a capture failure surfaces as
// an error and leaves the order untouched.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	order, err := services.Orders.UpdateStatus(ctx.Param("orderId"), orderStatusData.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, services.ErrOrderNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrCaptureFailed):
			log.Printf("Capture failed for order %s: %v", ctx.Param("orderId"), err)
			sendErrorResponse(ctx, http.StatusBadGateway, "Payment capture failed, order was not confirmed")
		default:
			log.Printf("Failed to update order: %v", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// DeleteOrder soft-deletes: the order transitions to cancelled, any payment
// hold is released best-effort and the customer is notified.
func DeleteOrder(ctx *gin.Context) {
	order, err := services.Orders.SoftDelete(ctx.Param("orderId"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("Failed to cancel order: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "order": order})
}

// LookupOrder is the customer-facing tracking endpoint: full or prefix id
// match, restricted view with no internal notes.
func LookupOrder(ctx *gin.Context) {
	orderID := ctx.Query("id")
	if orderID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order ID is required")
		return
	}

	order, err := services.OrderStore.FindByIDOrPrefix(orderID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	if order == nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gin.H{
			"itemName":   item.ItemName,
			"quantity":   item.Quantity,
			"guestCount": item.GuestCount,
			"lineTotal":  item.LineTotal,
		})
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"id":              order.ID,
		"status":          order.Status,
		"customerName":    order.CustomerName,
		"fulfillmentType": order.FulfillmentType,
		"scheduledDate":   order.ScheduledDate,
		"scheduledTime":   order.ScheduledTime,
		"items":           items,
		"subtotal":        order.Subtotal,
		"deliveryFee":     order.DeliveryFee,
		"total":           order.Total,
		"createdAt":       order.CreatedAt,
	})
}

func GetActiveOrderCount(ctx *gin.Context) {
	count, err := services.OrderStore.CountActive()
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to count active orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"activeOrderCount": count})
}
