package services

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"
)

// BookingEmail carries the fields of a service-request notification.
type BookingEmail struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	ServiceType string `json:"serviceType"`
	Message     string `json:"message"`
	PaymentID   string `json:"paymentId"`
	OrderID     string `json:"orderId"`
}

// Mailer sends transactional email through Mailgun. When Mailgun is not
// configured it logs and drops the message instead of failing requests.
type Mailer struct {
	domain   string
	apiKey   string
	sender   string
	notifyTo string // operations inbox for booking notifications
	log      *logrus.Logger
}

func NewMailer(domain, apiKey, sender, notifyTo string, log *logrus.Logger) *Mailer {
	return &Mailer{domain: domain, apiKey: apiKey, sender: sender, notifyTo: notifyTo, log: log}
}

func (m *Mailer) Enabled() bool {
	return m.domain != "" && m.apiKey != ""
}

// Send delivers a single email. html is optional; if provided it is used as
// the HTML body.
func (m *Mailer) Send(ctx context.Context, to, subject, text, html string) error {
	if !m.Enabled() {
		m.log.WithFields(logrus.Fields{"to": to, "subject": subject}).Warn("mailer disabled, dropping email")
		return nil
	}
	client := mg.NewMailgun(m.domain, m.apiKey)
	msg := client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

// SendBookingNotification emails the operations inbox about a paid service
// request.
func (m *Mailer) SendBookingNotification(ctx context.Context, req BookingEmail) error {
	subject := fmt.Sprintf("New Service Request: %s - Payment Confirmed", req.ServiceType)
	message := req.Message
	if message == "" {
		message = "No additional message provided."
	}
	html := fmt.Sprintf(bookingEmailHTML,
		req.ServiceType, req.FullName, req.PhoneNumber, req.Email,
		req.PaymentID, req.OrderID, message)
	text := fmt.Sprintf(
		"New service request: %s\nCustomer: %s (%s, %s)\nPayment ID: %s\nOrder ID: %s\nAddress: %s\n",
		req.ServiceType, req.FullName, req.PhoneNumber, req.Email,
		req.PaymentID, req.OrderID, message)
	return m.Send(ctx, m.notifyTo, subject, text, html)
}

const bookingEmailHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 5px;">
  <h2 style="color: #f97316; border-bottom: 1px solid #e0e0e0; padding-bottom: 15px;">New Service Request - Payment Confirmed</h2>
  <div style="margin: 20px 0;">
    <p><strong>Service Type:</strong> %s</p>
    <p><strong>Customer Name:</strong> %s</p>
    <p><strong>Contact Number:</strong> %s</p>
    <p><strong>Email Address:</strong> %s</p>
  </div>
  <div style="background-color: #f2f9ed; padding: 15px; border-radius: 5px; margin: 20px 0; border-left: 4px solid #4caf50;">
    <h3 style="margin-top: 0; color: #2e7d32;">Payment Information:</h3>
    <p><strong>Payment Status:</strong> Completed</p>
    <p><strong>Payment ID:</strong> %s</p>
    <p><strong>Order ID:</strong> %s</p>
  </div>
  <div style="background-color: #f9fafb; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <h3 style="margin-top: 0; color: #4b5563;">Customer's Address:</h3>
    <p style="margin-bottom: 0;">%s</p>
  </div>
  <div style="font-size: 12px; color: #6b7280; margin-top: 30px; padding-top: 15px; border-top: 1px solid #e0e0e0;">
    <p>This is an automated message from the FixU service request system.</p>
    <p>Please respond to the customer within 24 hours.</p>
  </div>
</div>`
