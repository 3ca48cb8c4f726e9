package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samvriksha/samvriksha-api/middlewares"
	"github.com/samvriksha/samvriksha-api/models"
	"github.com/samvriksha/samvriksha-api/payment"
	"github.com/samvriksha/samvriksha-api/services"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses.
func handleServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrVerificationFailed):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, payment.ErrGateway):
		log.Println("Gateway error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to initiate payment")
	default:
		log.Println("Unexpected error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, fallback)
	}
}

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

func (c *CartController) AddToCart(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input models.AddToCartInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	cart, err := c.carts.AddItem(ctx.Request.Context(), userID, input)
	if err != nil {
		handleServiceError(ctx, err, "Failed to add product to cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Product added to cart",
		"cart":    cart,
	})
}

func (c *CartController) UpdateCart(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input models.UpdateCartInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	cart, err := c.carts.UpdateQuantity(ctx.Request.Context(), userID, input)
	if err != nil {
		handleServiceError(ctx, err, "Failed to update cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Cart updated",
		"cart":    cart,
	})
}

func (c *CartController) RemoveFromCart(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var key models.CartItemKey
	if err := ctx.ShouldBindJSON(&key); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	cart, err := c.carts.RemoveItem(ctx.Request.Context(), userID, key)
	if err != nil {
		handleServiceError(ctx, err, "Failed to remove product from cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Product removed from cart",
		"cart":    cart,
	})
}

func (c *CartController) GetCart(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	cart, err := c.carts.GetCart(ctx.Request.Context(), userID)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart})
}
