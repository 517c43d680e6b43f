package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Blue Cilantro Catering API.

The following are the endpoints for this API:

AUTH
- POST "/auth/check-email" - Check whether an admin account needs password setup
- POST "/auth/setup-password" - Set the initial admin password
- POST "/auth/login" - Admin login

MENU
- GET "/menu/categories" - Get menu categories with items
- GET "/menu/items" - Get menu items
- GET "/packages" - Get catering packages

CHECKOUT
- POST "/checkout" - Validate a cart and start a payment session
- GET "/checkout/session" - Get order details for a completed session
- POST "/webhooks/stripe" - Payment event webhook

ORDER
- POST "/order" - Create a direct order
- GET "/order" - Retrieve all orders (admin)
- GET "/order/lookup" - Customer order lookup by ID
- GET "/order/active-count" - Count of orders still in progress (admin)
- GET "/order/:orderId" - Get order by ID (admin)
- PUT "/order/:orderId" - Update order status (admin)
- DELETE "/order/:orderId" - Cancel order (admin)

SETTINGS
- GET "/settings" - Get business settings
- PUT "/settings" - Update business settings (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
