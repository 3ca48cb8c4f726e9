package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order fulfillment statuses. Fulfillment and payment progress on
// independent axes; a fresh order is (pending, pending).
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// OrderItem is an immutable copy of a cart line captured at checkout,
// including the product name as it read at that moment. It is never
// refreshed from the catalog.
type OrderItem struct {
	gorm.Model
	OrderID           uint                       `json:"orderId"`
	ProductID         uint                       `json:"productId"`
	ProductName       string                     `json:"productName"`
	Quantity          int                        `json:"quantity"`
	Variant           string                     `json:"variant"`
	Size              string                     `json:"size"`
	Design            string                     `json:"design"`
	Color             string                     `json:"color"`
	AdditionalOptions datatypes.JSONSlice[AddOn] `json:"additionalOptions"`
	Price             float64                    `json:"price"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Order struct {
	gorm.Model
	UserID        uint        `json:"userId"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	// PaymentID is the gateway's payment intent id, the correlation key for
	// verification callbacks and cancellation.
	PaymentID string `json:"paymentId" gorm:"index"`

	// Contact details snapshotted from the user at checkout.
	ContactName    string `json:"contactName"`
	ContactNo      string `json:"contactNo"`
	ContactAddress string `json:"contactAddress"`
	ContactPincode string `json:"contactPincode"`

	OrderDate time.Time `json:"orderDate"`
}
