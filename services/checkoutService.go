package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samvriksha/samvriksha-api/models"
	"github.com/samvriksha/samvriksha-api/payment"
	"gorm.io/gorm"
)

// CheckoutService turns a cart into an order with a remote payment intent
// and later reconciles the gateway's signed callback into a final payment
// state. The checkout itself runs as a saga: no order is persisted without a
// gateway intent, and the cart is deleted only after the order is durable.
type CheckoutService struct {
	db       *gorm.DB
	gateway  payment.Gateway
	currency string
}

func NewCheckoutService(db *gorm.DB, gateway payment.Gateway, currency string) *CheckoutService {
	return &CheckoutService{db: db, gateway: gateway, currency: currency}
}

func (s *CheckoutService) findOrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Preload("Items").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order for payment %s: %w", paymentID, ErrNotFound)
		}
		return nil, err
	}
	return &order, nil
}

// CreateOrder consolidates the user's cart into an order. Steps, in order:
// resolve the user, load and snapshot the cart, create the gateway intent,
// persist the order, delete the cart. A failure before persistence leaves
// nothing behind; a cart-delete failure after persistence is logged and
// tolerated (an orphaned cart is recoverable, a lost order is not).
func (s *CheckoutService) CreateOrder(ctx context.Context, userID uint) (*models.Order, *payment.Intent, error) {
	var (
		user   models.User
		cart   models.Cart
		intent payment.Intent
		order  models.Order
	)

	steps := []sagaStep{
		{
			name: "resolve_user",
			execute: func(ctx context.Context) error {
				if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("user %d: %w", userID, ErrNotFound)
					}
					return err
				}
				return nil
			},
		},
		{
			name: "load_cart",
			execute: func(ctx context.Context) error {
				err := s.db.WithContext(ctx).
					Where("user_id = ?", userID).
					Preload("Items.Product").
					Preload("Items").
					First(&cart).Error
				if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
					return fmt.Errorf("cart is empty: %w", ErrInvalidState)
				}
				return err
			},
		},
		{
			name: "create_payment_intent",
			execute: func(ctx context.Context) error {
				receipt := "rcpt_" + uuid.NewString()
				amountMinor := int64(math.Round(cart.TotalAmount * 100))
				created, err := s.gateway.CreateIntent(ctx, amountMinor, s.currency, receipt)
				if err != nil {
					return err
				}
				intent = created
				return nil
			},
			// An unpaid intent needs no teardown; it expires at the gateway.
		},
		{
			name: "persist_order",
			execute: func(ctx context.Context) error {
				order = s.buildOrder(&user, &cart, intent.ID)
				return s.db.WithContext(ctx).Create(&order).Error
			},
			// Runs only if a later step fails; delete_cart currently reports
			// no failures, so this fires only when another step is added.
			compensate: func(ctx context.Context) error {
				return s.db.WithContext(ctx).Delete(&order).Error
			},
		},
		{
			name: "delete_cart",
			execute: func(ctx context.Context) error {
				// Hard delete: the unique user index must be free for the
				// next cart this user starts.
				err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
					if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
						return err
					}
					return tx.Unscoped().Delete(&cart).Error
				})
				if err != nil {
					// The order is already durable; leaving the cart behind
					// is the accepted failure mode here.
					log.Printf("order %d created but cart %d not deleted: %v", order.ID, cart.ID, err)
				}
				return nil
			},
		},
	}

	if err := runSaga(ctx, steps); err != nil {
		return nil, nil, err
	}
	return &order, &intent, nil
}

// buildOrder copies the cart lines verbatim into immutable order lines. The
// product name is the single catalog read at checkout; everything else comes
// from the cart's snapshot, including the maintained TotalAmount.
func (s *CheckoutService) buildOrder(user *models.User, cart *models.Cart, intentID string) models.Order {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		productName := ""
		if line.Product != nil {
			productName = line.Product.Name
		}
		items = append(items, models.OrderItem{
			ProductID:         line.ProductID,
			ProductName:       productName,
			Quantity:          line.Quantity,
			Variant:           line.Variant,
			Size:              line.Size,
			Design:            line.Design,
			Color:             line.Color,
			AdditionalOptions: line.AdditionalOptions,
			Price:             line.Price,
		})
	}

	return models.Order{
		UserID:         user.ID,
		Items:          items,
		TotalAmount:    cart.TotalAmount,
		Status:         models.OrderStatusPending,
		PaymentStatus:  models.PaymentStatusPending,
		PaymentID:      intentID,
		ContactName:    user.FirstName + " " + user.LastName,
		ContactNo:      user.ContactNo,
		ContactAddress: user.Address,
		ContactPincode: user.Pincode,
		OrderDate:      time.Now(),
	}
}

// VerifyPayment reconciles the gateway's callback. A matching signature
// marks the payment successful; a mismatch marks it failed and returns
// ErrVerificationFailed. An order whose payment already succeeded is never
// downgraded by a later tampered replay.
func (s *CheckoutService) VerifyPayment(ctx context.Context, input models.VerifyPaymentInput) (*models.Order, error) {
	order, err := s.findOrderByPaymentID(ctx, input.RazorpayOrderID)
	if err != nil {
		return nil, err
	}

	if s.gateway.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature) {
		order.PaymentStatus = models.PaymentStatusSuccess
		order.Status = models.OrderStatusPending
		if err := s.db.WithContext(ctx).Model(order).Updates(map[string]any{
			"payment_status": order.PaymentStatus,
			"status":         order.Status,
		}).Error; err != nil {
			return nil, err
		}
		return order, nil
	}

	if order.PaymentStatus != models.PaymentStatusSuccess {
		order.PaymentStatus = models.PaymentStatusFailed
		if err := s.db.WithContext(ctx).Model(order).
			Update("payment_status", order.PaymentStatus).Error; err != nil {
			return nil, err
		}
	}
	return nil, ErrVerificationFailed
}

// CancelOrder revokes an order whose payment is still pending. Orders that
// already reached a terminal payment state are left for reconciliation.
func (s *CheckoutService) CancelOrder(ctx context.Context, paymentID string) (*models.Order, error) {
	order, err := s.findOrderByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus != models.PaymentStatusPending {
		return nil, fmt.Errorf("order already processed: %w", ErrInvalidState)
	}

	order.PaymentStatus = models.PaymentStatusFailed
	order.Status = models.OrderStatusCancelled
	if err := s.db.WithContext(ctx).Model(order).Updates(map[string]any{
		"payment_status": order.PaymentStatus,
		"status":         order.Status,
	}).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns the user's orders newest-first, each line's product
// resolved so the client can show name and image.
func (s *CheckoutService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items.Product").
		Preload("Items").
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAllOrders is the admin view: paginated, newest-first by default.
func (s *CheckoutService) ListAllOrders(ctx context.Context, page, limit int, sortOrder string) ([]models.Order, int64, error) {
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}
	offset := (page - 1) * limit

	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at " + sortOrder).
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus sets the fulfillment status. The payment axis is untouched.
func (s *CheckoutService) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return nil
}

func (s *CheckoutService) DeleteOrder(ctx context.Context, orderID uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Order{}, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return nil
}

// CountUndelivered reports how many orders have not reached delivery yet.
func (s *CheckoutService) CountUndelivered(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.OrderStatusDelivered, models.OrderStatusCancelled}).
		Count(&count).Error
	return count, err
}
