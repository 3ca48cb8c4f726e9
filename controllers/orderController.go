package controllers

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samvriksha/samvriksha-api/middlewares"
	"github.com/samvriksha/samvriksha-api/models"
	"github.com/samvriksha/samvriksha-api/services"
)

type OrderController struct {
	checkout *services.CheckoutService
}

func NewOrderController(checkout *services.CheckoutService) *OrderController {
	return &OrderController{checkout: checkout}
}

// CreateOrder consolidates the authenticated user's cart into an order and
// returns it together with the gateway intent the payment widget needs.
func (c *OrderController) CreateOrder(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	order, intent, err := c.checkout.CreateOrder(ctx.Request.Context(), userID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to create order")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"order":         order,
		"razorpayOrder": intent,
	})
}

func (c *OrderController) VerifyPayment(ctx *gin.Context) {
	var input models.VerifyPaymentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := c.checkout.VerifyPayment(ctx.Request.Context(), input)
	if err != nil {
		handleServiceError(ctx, err, "Failed to verify payment")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Payment verified successfully",
		"order":   order,
	})
}

func (c *OrderController) CancelOrder(ctx *gin.Context) {
	var input models.CancelOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := c.checkout.CancelOrder(ctx.Request.Context(), input.RazorpayOrderID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to cancel order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order cancelled due to payment failure",
		"order":   order,
	})
}

func (c *OrderController) GetMyOrders(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orders, err := c.checkout.ListOrders(ctx.Request.Context(), userID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrders is the admin listing with pagination metadata.
func (c *OrderController) GetOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	sortOrder := ctx.DefaultQuery("sort", "desc")

	orders, count, err := c.checkout.ListAllOrders(ctx.Request.Context(), page, limit, sortOrder)
	if err != nil {
		handleServiceError(ctx, err, "Unable to fetch orders")
		return
	}

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func (c *OrderController) GetOrderById(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := c.checkout.GetOrder(ctx.Request.Context(), uint(orderID))
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	var input models.UpdateOrderStatusInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	if err := c.checkout.UpdateStatus(ctx.Request.Context(), uint(orderID), input.Status); err != nil {
		handleServiceError(ctx, err, "Failed to update order status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

func (c *OrderController) DeleteOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
		return
	}

	if err := c.checkout.DeleteOrder(ctx.Request.Context(), uint(orderID)); err != nil {
		handleServiceError(ctx, err, "Failed to delete order.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

func (c *OrderController) GetUndeliveredOrders(ctx *gin.Context) {
	count, err := c.checkout.CountUndelivered(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, err, "Failed to count undelivered orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"undeliveredOrderCount": count})
}
