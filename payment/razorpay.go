package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samvriksha/samvriksha-api/config"
)

// ErrGateway marks any transport or remote failure talking to the payment
// provider. Callers must not persist anything when they see it.
var ErrGateway = errors.New("payment gateway error")

// Intent is the gateway's server-side record of an expected payment. The
// fields are what Razorpay's checkout widget needs on the client.
type Intent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway is the contract the checkout workflow consumes.
type Gateway interface {
	// CreateIntent registers an expected payment for amount in minor units
	// (paise for INR) and returns the gateway's intent.
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency, receipt string) (Intent, error)
	// VerifySignature reports whether signature is a valid HMAC proof for
	// the (intentID, paymentID) pair.
	VerifySignature(intentID, paymentID, signature string) bool
}

type RazorpayClient struct {
	client    *resty.Client
	keySecret string
}

func NewRazorpayClient(cfg config.Config) *RazorpayClient {
	client := resty.New().
		SetBaseURL(cfg.RazorpayBaseURL).
		SetTimeout(30 * time.Second).
		SetBasicAuth(cfg.RazorpayKeyID, cfg.RazorpayKeySecret).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &RazorpayClient{client: client, keySecret: cfg.RazorpayKeySecret}
}

func (c *RazorpayClient) CreateIntent(ctx context.Context, amountMinorUnits int64, currency, receipt string) (Intent, error) {
	body := map[string]any{
		"amount":   amountMinorUnits,
		"currency": currency,
		"receipt":  receipt,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/orders")
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if resp.StatusCode() != 200 {
		return Intent{}, fmt.Errorf("%w: order creation failed with status %d: %s", ErrGateway, resp.StatusCode(), resp.Body())
	}

	var intent Intent
	if err := json.Unmarshal(resp.Body(), &intent); err != nil {
		return Intent{}, fmt.Errorf("%w: failed to parse order response: %v", ErrGateway, err)
	}
	if intent.ID == "" {
		return Intent{}, fmt.Errorf("%w: order id missing in response", ErrGateway)
	}

	return intent, nil
}

func (c *RazorpayClient) VerifySignature(intentID, paymentID, signature string) bool {
	return Signature(intentID, paymentID, c.keySecret) == signature
}

// Signature derives the gateway's callback proof: hex-encoded HMAC-SHA256
// over "intentID|paymentID" keyed with the shared secret.
func Signature(intentID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(intentID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
