package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fixu-in/fixu-api/internal/models"
)

// ListOrders returns the authenticated user's embedded orders. Admin tokens
// have no order list of their own.
func (h *Handler) ListOrders(c *gin.Context) {
	userID, isAdmin := callerIdentity(c)

	if userID == models.AdminUserID || isAdmin {
		c.JSON(http.StatusOK, gin.H{"orders": []models.Order{}, "isAdmin": true})
		return
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var user models.User
	if err := h.users().FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	orders := user.Orders
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type CreateOrderRequest struct {
	ServiceName     string  `json:"serviceName" binding:"required"`
	SpecificService string  `json:"specificService"`
	ServiceProvider string  `json:"serviceProvider"`
	ScheduledDate   string  `json:"scheduledDate"`
	Price           float64 `json:"price"`
	Address         string  `json:"address"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerNotes   string  `json:"customerNotes"`
}

// CreateOrder appends a pending booking to the authenticated user's order
// list. Admin tokens cannot place orders.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, isAdmin := callerIdentity(c)
	if userID == models.AdminUserID || isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin users cannot place orders"})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var scheduledDate time.Time
	if req.ScheduledDate != "" {
		t, err := time.Parse(time.RFC3339, req.ScheduledDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scheduledDate, use RFC3339"})
			return
		}
		scheduledDate = t
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ctx := c.Request.Context()
	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	order := models.Order{
		ID:              primitive.NewObjectID(),
		ServiceName:     req.ServiceName,
		SpecificService: req.SpecificService,
		ServiceProvider: req.ServiceProvider,
		Status:          models.OrderPending,
		ScheduledDate:   scheduledDate,
		Price:           req.Price,
		Address:         req.Address,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		CustomerNotes:   req.CustomerNotes,
		CreatedAt:       time.Now(),
	}
	// Contact fields default to the account's own details.
	if order.CustomerName == "" {
		order.CustomerName = user.Name
	}
	if order.CustomerPhone == "" {
		order.CustomerPhone = user.Phone
	}
	if order.CustomerEmail == "" {
		order.CustomerEmail = user.Email
	}

	_, err = h.users().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"orders": order}})
	if err != nil {
		h.Log.WithError(err).Error("create order: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error processing order"})
		return
	}

	h.Log.WithFields(logrus.Fields{"userId": userID, "orderId": order.ID.Hex(), "service": order.ServiceName}).Info("order created")

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order saved successfully", "order": order})
}

// UpdateOrderPayment marks an order confirmed and records the gateway payment
// id, via a positional update on the matched array element.
func (h *Handler) UpdateOrderPayment(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		PaymentID string `json:"paymentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.users().UpdateOne(c.Request.Context(),
		bson.M{"orders._id": orderID},
		bson.M{"$set": bson.M{
			"orders.$.status":    models.OrderConfirmed,
			"orders.$.paymentId": req.PaymentID,
		}},
	)
	if err != nil {
		h.Log.WithError(err).Error("order payment: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order payment"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment recorded successfully",
		"orderId": orderID.Hex(),
	})
}

// AdminOrder is an order flattened out of its parent user document for the
// admin list view.
type AdminOrder struct {
	ID              string     `json:"id"`
	ServiceName     string     `json:"serviceName"`
	SpecificService string     `json:"specificService,omitempty"`
	ServiceProvider string     `json:"serviceProvider,omitempty"`
	Status          string     `json:"status"`
	ScheduledDate   *time.Time `json:"scheduledDate,omitempty"`
	Price           float64    `json:"price,omitempty"`
	Address         string     `json:"address,omitempty"`
	CustomerName    string     `json:"customerName,omitempty"`
	CustomerPhone   string     `json:"customerPhone,omitempty"`
	CustomerEmail   string     `json:"customerEmail,omitempty"`
	CustomerNotes   string     `json:"customerNotes,omitempty"`
	PaymentID       string     `json:"paymentId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UserID          string     `json:"userId"`
	UserName        string     `json:"userName"`
}

// flattenOrders collects every user's embedded orders into one list, filling
// missing contact fields from the parent user, newest first.
func flattenOrders(users []models.User) []AdminOrder {
	orders := make([]AdminOrder, 0)
	for _, user := range users {
		for _, o := range user.Orders {
			ao := AdminOrder{
				ID:              o.ID.Hex(),
				ServiceName:     o.ServiceName,
				SpecificService: o.SpecificService,
				ServiceProvider: o.ServiceProvider,
				Status:          o.Status,
				Price:           o.Price,
				Address:         o.Address,
				CustomerName:    o.CustomerName,
				CustomerPhone:   o.CustomerPhone,
				CustomerEmail:   o.CustomerEmail,
				CustomerNotes:   o.CustomerNotes,
				PaymentID:       o.PaymentID,
				CreatedAt:       o.CreatedAt,
				UserID:          user.ID.Hex(),
				UserName:        user.Name,
			}
			if !o.ScheduledDate.IsZero() {
				scheduled := o.ScheduledDate
				ao.ScheduledDate = &scheduled
			}
			if ao.CustomerName == "" {
				ao.CustomerName = user.Name
			}
			if ao.CustomerPhone == "" {
				ao.CustomerPhone = user.Phone
			}
			if ao.CustomerEmail == "" {
				ao.CustomerEmail = user.Email
			}
			orders = append(orders, ao)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

// AdminListOrders returns every order across all users.
func (h *Handler) AdminListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	findOptions := options.Find().SetProjection(bson.M{
		"name": 1, "email": 1, "phone": 1, "orders": 1,
	})
	cursor, err := h.users().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": flattenOrders(users)})
}

type AdminUpdateOrderRequest struct {
	Status          *string  `json:"status,omitempty"`
	ScheduledDate   *string  `json:"scheduledDate,omitempty"`
	ServiceProvider *string  `json:"serviceProvider,omitempty"`
	Price           *float64 `json:"price,omitempty"`
}

// AdminUpdateOrder overwrites the submitted subset of order fields. Status
// values are checked against the enum; transitions are not.
func (h *Handler) AdminUpdateOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req AdminUpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updateFields := bson.M{}
	if req.Status != nil {
		if !models.ValidOrderStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}
		updateFields["orders.$.status"] = *req.Status
	}
	if req.ScheduledDate != nil {
		t, err := time.Parse(time.RFC3339, *req.ScheduledDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scheduledDate, use RFC3339"})
			return
		}
		updateFields["orders.$.scheduledDate"] = t
	}
	if req.ServiceProvider != nil {
		updateFields["orders.$.serviceProvider"] = *req.ServiceProvider
	}
	if req.Price != nil {
		updateFields["orders.$.price"] = *req.Price
	}

	if len(updateFields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	result, err := h.users().UpdateOne(c.Request.Context(),
		bson.M{"orders._id": orderID},
		bson.M{"$set": updateFields},
	)
	if err != nil {
		h.Log.WithError(err).Error("admin order update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order updated successfully"})
}
