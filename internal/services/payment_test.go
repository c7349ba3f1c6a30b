package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestToPaise_RoundsExactly(t *testing.T) {
	cases := map[float64]int64{
		0.29:    29, // 0.29*100 floats to 28.999...; a plain cast would yield 28
		0.01:    1,
		1:       100,
		499:     49900,
		1234.56: 123456,
		9999.99: 999999,
	}
	for amount, want := range cases {
		assert.Equal(t, want, toPaise(amount), "amount %v", amount)
	}
}

func TestToPaise_SweepsWithoutTruncation(t *testing.T) {
	for paise := int64(1); paise <= 999999; paise++ {
		amount := float64(paise) / 100
		if got := toPaise(amount); got != paise {
			t.Fatalf("toPaise(%v) = %d, want %d", amount, got, paise)
		}
	}
}

func TestVerifySignature_Valid(t *testing.T) {
	svc := NewPaymentService("rzp_test_key", "rzp_test_secret")

	sig := signPayload("rzp_test_secret", "order_abc123", "pay_xyz789")
	assert.True(t, svc.VerifySignature("order_abc123", "pay_xyz789", sig))
}

func TestVerifySignature_Mismatch(t *testing.T) {
	svc := NewPaymentService("rzp_test_key", "rzp_test_secret")

	sig := signPayload("rzp_test_secret", "order_abc123", "pay_xyz789")
	assert.False(t, svc.VerifySignature("order_abc123", "pay_other", sig))
	assert.False(t, svc.VerifySignature("order_other", "pay_xyz789", sig))
	assert.False(t, svc.VerifySignature("order_abc123", "pay_xyz789", "deadbeef"))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	svc := NewPaymentService("rzp_test_key", "rzp_test_secret")

	sig := signPayload("another_secret", "order_abc123", "pay_xyz789")
	assert.False(t, svc.VerifySignature("order_abc123", "pay_xyz789", sig))
}

func TestVerifySignature_Empty(t *testing.T) {
	svc := NewPaymentService("rzp_test_key", "rzp_test_secret")

	assert.False(t, svc.VerifySignature("order_abc123", "pay_xyz789", ""))
}
