package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentService wraps the Razorpay SDK for order creation and signature
// verification.
type PaymentService struct {
	KeyID     string
	keySecret string
	client    *razorpay.Client
}

func NewPaymentService(keyID, keySecret string) *PaymentService {
	return &PaymentService{
		KeyID:     keyID,
		keySecret: keySecret,
		client:    razorpay.NewClient(keyID, keySecret),
	}
}

// toPaise converts a rupee amount to paise. Rounded, not truncated:
// float64(0.29)*100 is 28.999..., and a bare int64 cast would undercharge.
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateOrder creates a gateway order with auto-capture enabled. Amount is in
// rupees; Razorpay expects the smallest currency unit (paise).
func (s *PaymentService) CreateOrder(amount float64, receipt string) (map[string]interface{}, error) {
	data := map[string]interface{}{
		"amount":          toPaise(amount),
		"currency":        "INR",
		"receipt":         receipt,
		"payment_capture": 1,
	}
	return s.client.Order.Create(data, nil)
}

// VerifySignature recomputes the HMAC-SHA256 of "<orderID>|<paymentID>" with
// the key secret and compares it to the signature supplied by the checkout
// callback.
func (s *PaymentService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
