package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CartItem is one configured product selection. Price is the unit price
// snapshotted when the line was added (chosen size plus add-ons); it is not
// recomputed afterwards. Two selections merge into one line only when
// ProductID, Variant, Size, Design and Color all match.
type CartItem struct {
	gorm.Model
	CartID            uint                       `json:"cartId"`
	ProductID         uint                       `json:"productId"`
	Variant           string                     `json:"variant"`
	Size              string                     `json:"size"`
	Design            string                     `json:"design"`
	Color             string                     `json:"color"`
	AdditionalOptions datatypes.JSONSlice[AddOn] `json:"additionalOptions"`
	Quantity          int                        `json:"quantity"`
	Price             float64                    `json:"price"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Cart struct {
	gorm.Model
	UserID      uint       `json:"userId" gorm:"uniqueIndex"`
	Items       []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalAmount float64    `json:"totalAmount"`
}

// RecalculateTotal keeps the cart invariant: TotalAmount always equals the
// sum of line price times quantity. Call before every persist.
func (c *Cart) RecalculateTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalAmount = total
}
