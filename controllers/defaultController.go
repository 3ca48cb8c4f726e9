package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Samvriksha API 🌿. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

PROFILE
- GET "/me" - Get account details
- PUT "/update-profile" - Update account details
- PUT "/change-password" - Change account password

PRODUCT
- GET "/product" - Get all products
- GET "/product/{slug}" - Get product by slug
- POST "/product" - Create new product (admin)
- POST "/product-images" - Upload product images (admin)

CART
- POST "/cart/add" - Add a product selection to the cart
- PUT "/cart/update" - Change a cart line's quantity
- DELETE "/cart/remove" - Remove a cart line
- GET "/cart" - Get the cart

ORDER
- POST "/order" - Checkout the cart into an order
- POST "/order/verify-payment" - Verify a payment callback
- POST "/order/cancel" - Cancel an unpaid order
- GET "/order" - Get the user's orders
- GET "/admin/orders" - Retrieve all orders (admin)
- PATCH "/admin/orders/{orderId}" - Update order status (admin)
- DELETE "/admin/orders/{orderId}" - Delete order (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
