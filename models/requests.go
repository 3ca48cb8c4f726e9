package models

// Request bodies for the cart and checkout endpoints. Validation happens
// here, at the boundary, before any service call.

type AddToCartInput struct {
	ProductID         uint    `json:"productId" binding:"required"`
	Variant           string  `json:"variant" binding:"required"`
	Size              string  `json:"size" binding:"required"`
	Design            string  `json:"design"`
	Color             string  `json:"color"`
	AdditionalOptions []AddOn `json:"additionalOptions"`
	Quantity          int     `json:"quantity" binding:"required,min=1"`
	Price             float64 `json:"price" binding:"required,gt=0"`
}

// CartItemKey identifies one cart line. Design and color are part of the
// key: the same plant in two pot colors is two lines.
type CartItemKey struct {
	ProductID uint   `json:"productId" binding:"required"`
	Variant   string `json:"variant" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Design    string `json:"design"`
	Color     string `json:"color"`
}

type UpdateCartInput struct {
	CartItemKey
	Quantity int `json:"quantity"`
}

type VerifyPaymentInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

type CancelOrderInput struct {
	RazorpayOrderID string `json:"razorpay_order_id" binding:"required"`
}

type UpdateProfileInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	ContactNo string `json:"contactNo" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Pincode   string `json:"pincode" binding:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending shipped delivered cancelled"`
}
