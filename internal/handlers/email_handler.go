package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixu-in/fixu-api/internal/services"
)

// SendEmail forwards a service-request notification to the operations inbox.
func (h *Handler) SendEmail(c *gin.Context) {
	var req services.BookingEmail
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if err := h.Mailer.SendBookingNotification(c.Request.Context(), req); err != nil {
		h.Log.WithError(err).Error("booking notification email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email sent successfully"})
}
