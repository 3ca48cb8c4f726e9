package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvriksha/samvriksha-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CartService owns the per-user cart aggregate. Every mutation recomputes
// TotalAmount before persisting, so the cart invariant (total equals the sum
// of line price times quantity) holds after each call.
//
// The unit price on AddItem is taken from the caller as-is and snapshotted;
// it is not checked against the catalog. See DESIGN.md for the hardened
// variant any price-sensitive deployment needs.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

func itemMatchesKey(item *models.CartItem, key models.CartItemKey) bool {
	return item.ProductID == key.ProductID &&
		item.Variant == key.Variant &&
		item.Size == key.Size &&
		item.Design == key.Design &&
		item.Color == key.Color
}

func (s *CartService) loadCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem puts a configured product selection into the user's cart, creating
// the cart lazily on first add. A selection matching an existing line on
// (product, variant, size, design, color) increments that line's quantity;
// anything else appends a new line with the supplied snapshot price.
func (s *CartService) AddItem(ctx context.Context, userID uint, input models.AddToCartInput) (*models.Cart, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", input.ProductID, ErrNotFound)
		}
		return nil, err
	}

	addOns := input.AdditionalOptions
	if addOns == nil {
		addOns = []models.AddOn{}
	}

	newItem := models.CartItem{
		ProductID:         input.ProductID,
		Variant:           input.Variant,
		Size:              input.Size,
		Design:            input.Design,
		Color:             input.Color,
		AdditionalOptions: datatypes.NewJSONSlice(addOns),
		Quantity:          input.Quantity,
		Price:             input.Price,
	}

	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID, Items: []models.CartItem{newItem}}
		cart.RecalculateTotal()
		if err := s.db.WithContext(ctx).Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	} else if err != nil {
		return nil, err
	}

	key := models.CartItemKey{
		ProductID: input.ProductID,
		Variant:   input.Variant,
		Size:      input.Size,
		Design:    input.Design,
		Color:     input.Color,
	}

	merged := false
	for i := range cart.Items {
		if itemMatchesKey(&cart.Items[i], key) {
			cart.Items[i].Quantity += input.Quantity
			merged = true
			break
		}
	}
	if !merged {
		newItem.CartID = cart.ID
		cart.Items = append(cart.Items, newItem)
	}
	cart.RecalculateTotal()

	if err := s.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateQuantity sets a line's quantity exactly; zero or below removes the
// line. Missing cart or missing line is NotFound.
func (s *CartService) UpdateQuantity(ctx context.Context, userID uint, input models.UpdateCartInput) (*models.Cart, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Items {
		if itemMatchesKey(&cart.Items[i], input.CartItemKey) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("cart item: %w", ErrNotFound)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Quantity > 0 {
			cart.Items[idx].Quantity = input.Quantity
			if err := tx.Save(&cart.Items[idx]).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Delete(&cart.Items[idx]).Error; err != nil {
				return err
			}
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		}
		cart.RecalculateTotal()
		return tx.Model(&models.Cart{}).
			Where("id = ?", cart.ID).
			Update("total_amount", cart.TotalAmount).Error
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops every line matching the full identity key. Removing a key
// that is not in the cart is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID uint, key models.CartItemKey) (*models.Cart, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var kept []models.CartItem
	var removed []models.CartItem
	for _, item := range cart.Items {
		if itemMatchesKey(&item, key) {
			removed = append(removed, item)
		} else {
			kept = append(kept, item)
		}
	}
	if len(removed) == 0 {
		return cart, nil
	}

	cart.Items = kept
	cart.RecalculateTotal()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range removed {
			if err := tx.Delete(&removed[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Cart{}).
			Where("id = ?", cart.ID).
			Update("total_amount", cart.TotalAmount).Error
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns the user's cart with each line's product resolved to the
// full catalog record.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items.Product.Variants").
		Preload("Items.Product").
		Preload("Items").
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &cart, nil
}
