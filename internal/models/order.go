package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Transitions are not constrained; an admin edit may set any
// status regardless of the current one.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is embedded in its parent User document; there is no separate order
// collection.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceName     string             `bson:"serviceName" json:"serviceName"`
	SpecificService string             `bson:"specificService,omitempty" json:"specificService,omitempty"`
	ServiceProvider string             `bson:"serviceProvider,omitempty" json:"serviceProvider,omitempty"`
	Status          string             `bson:"status" json:"status"`
	ScheduledDate   time.Time          `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	Price           float64            `bson:"price,omitempty" json:"price,omitempty"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`
	CustomerName    string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerPhone   string             `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	CustomerEmail   string             `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CustomerNotes   string             `bson:"customerNotes,omitempty" json:"customerNotes,omitempty"`
	PaymentID       string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}
