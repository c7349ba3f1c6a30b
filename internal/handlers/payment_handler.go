package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CreatePaymentRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	OrderID string  `json:"orderId"`
}

// CreatePayment opens a Razorpay order for the given amount and hands the
// gateway order plus the public key back to the checkout page.
func (h *Handler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt := req.OrderID
	if receipt == "" {
		receipt = uuid.NewString()
	}

	order, err := h.Payments.CreateOrder(req.Amount, "order_"+receipt)
	if err != nil {
		h.Log.WithError(err).Error("razorpay order creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"key":     h.Payments.KeyID,
	})
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	OrderID           string `json:"orderId"`
}

// VerifyPayment checks the checkout callback signature. It does not persist
// the result; the client reports the payment to the order endpoint
// separately.
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.Payments.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		h.Log.WithFields(logrus.Fields{"gatewayOrder": req.RazorpayOrderID}).Warn("payment signature mismatch")
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Payment verification failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified successfully",
		"orderId": req.OrderID,
	})
}
