package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/samvriksha/samvriksha-api/models"
	"github.com/samvriksha/samvriksha-api/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGateway struct {
	secret  string
	fail    bool
	created []payment.Intent
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amountMinorUnits int64, currency, receipt string) (payment.Intent, error) {
	if g.fail {
		return payment.Intent{}, fmt.Errorf("%w: connection refused", payment.ErrGateway)
	}
	intent := payment.Intent{
		ID:       fmt.Sprintf("order_%03d", len(g.created)+1),
		Amount:   amountMinorUnits,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	g.created = append(g.created, intent)
	return intent, nil
}

func (g *fakeGateway) VerifySignature(intentID, paymentID, signature string) bool {
	return payment.Signature(intentID, paymentID, g.secret) == signature
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		FirstName: "Asha",
		LastName:  "Menon",
		Email:     "asha@example.com",
		Password:  "not-a-real-hash",
		ContactNo: "9876543210",
		Address:   "12 MG Road, Kochi",
		Pincode:   "682016",
		Verified:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func newCheckout(t *testing.T, db *gorm.DB) (*CheckoutService, *fakeGateway) {
	t.Helper()
	gateway := &fakeGateway{secret: "s3cr3t"}
	return NewCheckoutService(db, gateway, "INR"), gateway
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	return count
}

func cartExists(t *testing.T, db *gorm.DB, userID uint) bool {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", userID).Count(&count).Error)
	return count > 0
}

func TestCreateOrderSnapshotsCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	checkout, gateway := newCheckout(t, db)
	user := seedUser(t, db)
	productA := seedProduct(t, db, "Monstera", "monstera")
	productB := seedProduct(t, db, "Fiddle Leaf Fig", "fiddle-leaf-fig")
	ctx := context.Background()

	_, err := carts.AddItem(ctx, user.ID, addInput(productA.ID, "M", 100, 2))
	require.NoError(t, err)
	cart, err := carts.AddItem(ctx, user.ID, addInput(productB.ID, "L", 150, 1))
	require.NoError(t, err)
	require.Equal(t, 350.0, cart.TotalAmount)

	order, intent, err := checkout.CreateOrder(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 350.0, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, intent.ID, order.PaymentID)
	assert.Equal(t, int64(35000), intent.Amount)
	assert.Equal(t, "INR", intent.Currency)

	// Lines carry the catalog name and the cart's snapshot verbatim.
	byName := map[string]models.OrderItem{}
	for _, item := range order.Items {
		byName[item.ProductName] = item
	}
	require.Contains(t, byName, "Monstera")
	require.Contains(t, byName, "Fiddle Leaf Fig")
	assert.Equal(t, 2, byName["Monstera"].Quantity)
	assert.Equal(t, 100.0, byName["Monstera"].Price)
	assert.Equal(t, "L", byName["Fiddle Leaf Fig"].Size)

	// Contact details are copied from the user at creation time.
	assert.Equal(t, "Asha Menon", order.ContactName)
	assert.Equal(t, "9876543210", order.ContactNo)
	assert.Equal(t, "12 MG Road, Kochi", order.ContactAddress)
	assert.Equal(t, "682016", order.ContactPincode)

	// The cart is gone once the order is durable.
	assert.False(t, cartExists(t, db, user.ID))
	require.Len(t, gateway.created, 1)

	// The user can start a fresh cart after checking out.
	fresh, err := carts.AddItem(ctx, user.ID, addInput(productA.ID, "L", 150, 1))
	require.NoError(t, err)
	require.Len(t, fresh.Items, 1)
	assert.Equal(t, 150.0, fresh.TotalAmount)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	checkout, _ := newCheckout(t, db)
	user := seedUser(t, db)
	ctx := context.Background()

	// No cart at all.
	_, _, err := checkout.CreateOrder(ctx, user.ID)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Zero(t, countOrders(t, db))

	// A cart with zero lines is just as empty.
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID}).Error)
	_, _, err = checkout.CreateOrder(ctx, user.ID)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Zero(t, countOrders(t, db))
}

func TestCreateOrderUnknownUser(t *testing.T) {
	db := newTestDB(t)
	checkout, _ := newCheckout(t, db)

	_, _, err := checkout.CreateOrder(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderGatewayFailurePersistsNothing(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	checkout, gateway := newCheckout(t, db)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Monstera", "monstera")
	ctx := context.Background()

	_, err := carts.AddItem(ctx, user.ID, addInput(product.ID, "M", 100, 2))
	require.NoError(t, err)

	gateway.fail = true
	_, _, err = checkout.CreateOrder(ctx, user.ID)
	require.ErrorIs(t, err, payment.ErrGateway)

	// No order was persisted and the cart survived intact.
	assert.Zero(t, countOrders(t, db))
	require.True(t, cartExists(t, db, user.ID))
	cart, err := carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, cart.TotalAmount)
}

func TestVerifyPaymentKnownVector(t *testing.T) {
	db := newTestDB(t)
	checkout, _ := newCheckout(t, db)
	user := seedUser(t, db)

	order := models.Order{
		UserID:        user.ID,
		TotalAmount:   350,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentID:     "order_abc",
		OrderDate:     time.Now(),
	}
	require.NoError(t, db.Create(&order).Error)

	// HMAC-SHA256("order_abc|pay_123", "s3cr3t"), hex-encoded.
	const validSignature = "070ea2f5813be979e4d4dd50f9840717bb01adf600c92662f401086c6cabbf9a"
	require.Equal(t, validSignature, payment.Signature("order_abc", "pay_123", "s3cr3t"))

	verified, err := checkout.VerifyPayment(context.Background(), models.VerifyPaymentInput{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_123",
		RazorpaySignature: validSignature,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, verified.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, verified.Status)

	// A replay with a tampered signature is rejected and does not downgrade
	// the already-successful payment.
	tampered := "170ea2f5813be979e4d4dd50f9840717bb01adf600c92662f401086c6cabbf9a"
	_, err = checkout.VerifyPayment(context.Background(), models.VerifyPaymentInput{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_123",
		RazorpaySignature: tampered,
	})
	require.ErrorIs(t, err, ErrVerificationFailed)

	var stored models.Order
	require.NoError(t, db.Where("payment_id = ?", "order_abc").First(&stored).Error)
	assert.Equal(t, models.PaymentStatusSuccess, stored.PaymentStatus)
}

func TestVerifyPaymentMismatchMarksFailed(t *testing.T) {
	db := newTestDB(t)
	checkout, _ := newCheckout(t, db)
	user := seedUser(t, db)

	order := models.Order{
		UserID:        user.ID,
		TotalAmount:   100,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentID:     "order_xyz",
		OrderDate:     time.Now(),
	}
	require.NoError(t, db.Create(&order).Error)

	_, err := checkout.VerifyPayment(context.Background(), models.VerifyPaymentInput{
		RazorpayOrderID:   "order_xyz",
		RazorpayPaymentID: "pay_456",
		RazorpaySignature: "definitely-not-a-valid-signature",
	})
	require.ErrorIs(t, err, ErrVerificationFailed)

	// The order survives with a failed payment for manual reconciliation.
	var stored models.Order
	require.NoError(t, db.Where("payment_id = ?", "order_xyz").First(&stored).Error)
	assert.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	checkout, _ := newCheckout(t, db)

	_, err := checkout.VerifyPayment(context.Background(), models.VerifyPaymentInput{
		RazorpayOrderID:   "order_missing",
		RazorpayPaymentID: "pay_123",
		RazorpaySignature: "whatever",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOrderOnlyFromPendingPayment(t *testing.T) {
	db := newTestDB(t)
	checkout, _ := newCheckout(t, db)
	user := seedUser(t, db)
	ctx := context.Background()

	seed := func(paymentID, paymentStatus string) {
		require.NoError(t, db.Create(&models.Order{
			UserID:        user.ID,
			TotalAmount:   100,
			Status:        models.OrderStatusPending,
			PaymentStatus: paymentStatus,
			PaymentID:     paymentID,
			OrderDate:     time.Now(),
		}).Error)
	}

	seed("order_pending", models.PaymentStatusPending)
	seed("order_paid", models.PaymentStatusSuccess)
	seed("order_failed", models.PaymentStatusFailed)

	cancelled, err := checkout.CancelOrder(ctx, "order_pending")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, models.PaymentStatusFailed, cancelled.PaymentStatus)

	_, err = checkout.CancelOrder(ctx, "order_paid")
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = checkout.CancelOrder(ctx, "order_failed")
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = checkout.CancelOrder(ctx, "order_missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	checkout, _ := newCheckout(t, db)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Monstera", "monstera")
	ctx := context.Background()

	older := models.Order{
		UserID: user.ID, TotalAmount: 100,
		Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusSuccess,
		PaymentID: "order_old", OrderDate: time.Now().Add(-48 * time.Hour),
		Items: []models.OrderItem{{ProductID: product.ID, ProductName: "Monstera", Quantity: 1, Variant: "Standard", Size: "M", Price: 100}},
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Model(&older).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	newer := models.Order{
		UserID: user.ID, TotalAmount: 150,
		Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusPending,
		PaymentID: "order_new", OrderDate: time.Now(),
	}
	require.NoError(t, db.Create(&newer).Error)

	orders, err := checkout.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "order_new", orders[0].PaymentID)
	assert.Equal(t, "order_old", orders[1].PaymentID)

	// Lines resolve their product so the client can show name and image.
	require.Len(t, orders[1].Items, 1)
	require.NotNil(t, orders[1].Items[0].Product)
	assert.Equal(t, "Monstera", orders[1].Items[0].Product.Name)
}

func TestUpdateStatusAndUndeliveredCount(t *testing.T) {
	db := newTestDB(t)
	checkout, _ := newCheckout(t, db)
	user := seedUser(t, db)
	ctx := context.Background()

	for i, status := range []string{models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusDelivered} {
		require.NoError(t, db.Create(&models.Order{
			UserID: user.ID, TotalAmount: 100, Status: status,
			PaymentStatus: models.PaymentStatusSuccess,
			PaymentID:     fmt.Sprintf("order_%d", i), OrderDate: time.Now(),
		}).Error)
	}

	count, err := checkout.CountUndelivered(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, checkout.UpdateStatus(ctx, 1, models.OrderStatusShipped))
	order, err := checkout.GetOrder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
	// The payment axis is untouched by fulfillment updates.
	assert.Equal(t, models.PaymentStatusSuccess, order.PaymentStatus)

	require.ErrorIs(t, checkout.UpdateStatus(ctx, 999, models.OrderStatusShipped), ErrNotFound)
	require.ErrorIs(t, checkout.DeleteOrder(ctx, 999), ErrNotFound)
}
