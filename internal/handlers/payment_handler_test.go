package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixu-in/fixu-api/internal/services"
)

const testKeySecret = "rzp_test_secret"

func newPaymentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	h.Payments = services.NewPaymentService("rzp_test_key", testKeySecret)
	r := gin.New()
	r.PUT("/api/payment", h.VerifyPayment)
	return r
}

func checkoutSignature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPayment_ValidSignature(t *testing.T) {
	r := newPaymentRouter()

	sig := checkoutSignature("order_abc123", "pay_xyz789")
	body := fmt.Sprintf(
		`{"razorpay_order_id":"order_abc123","razorpay_payment_id":"pay_xyz789","razorpay_signature":"%s","orderId":"booking-1"}`,
		sig)

	w := performJSON(r, http.MethodPut, "/api/payment", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "booking-1", resp["orderId"])
}

func TestVerifyPayment_BadSignature(t *testing.T) {
	r := newPaymentRouter()

	body := `{"razorpay_order_id":"order_abc123","razorpay_payment_id":"pay_xyz789","razorpay_signature":"deadbeef","orderId":"booking-1"}`

	w := performJSON(r, http.MethodPut, "/api/payment", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	r := newPaymentRouter()

	w := performJSON(r, http.MethodPut, "/api/payment", `{"razorpay_order_id":"order_abc123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePayment_RejectsZeroAmount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	h.Payments = services.NewPaymentService("rzp_test_key", testKeySecret)
	r := gin.New()
	r.POST("/api/payment", h.CreatePayment)

	w := performJSON(r, http.MethodPost, "/api/payment", `{"amount":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
