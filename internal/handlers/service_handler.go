package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fixu-in/fixu-api/internal/models"
)

// ListServices is the public catalog endpoint. Only active services are
// returned unless ?all=true is passed.
func (h *Handler) ListServices(c *gin.Context) {
	filter := bson.M{"active": true}
	if c.Query("all") == "true" {
		filter = bson.M{}
	}

	ctx := c.Request.Context()
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.services().Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	defer cursor.Close(ctx)

	var svcs []models.Service
	if err := cursor.All(ctx, &svcs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	if svcs == nil {
		svcs = []models.Service{}
	}

	c.JSON(http.StatusOK, gin.H{"services": svcs})
}

// AdminListServices returns the whole catalog, inactive entries included.
func (h *Handler) AdminListServices(c *gin.Context) {
	ctx := c.Request.Context()
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.services().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	defer cursor.Close(ctx)

	var svcs []models.Service
	if err := cursor.All(ctx, &svcs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	if svcs == nil {
		svcs = []models.Service{}
	}

	c.JSON(http.StatusOK, gin.H{"services": svcs})
}

type ServiceRequest struct {
	Title       string   `json:"title" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Active      *bool    `json:"active"`
	Category    string   `json:"category" binding:"required"`
	Price       string   `json:"price"`
	Items       []string `json:"items"`
}

// CreateService adds a catalog entry. The type slug must not collide with an
// existing service.
func (h *Handler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	count, err := h.services().CountDocuments(ctx, bson.M{"type": req.Type})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service with this type already exists"})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	items := req.Items
	if items == nil {
		items = []string{}
	}

	now := time.Now()
	svc := models.Service{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		Active:      active,
		Category:    req.Category,
		Price:       req.Price,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.services().InsertOne(ctx, svc); err != nil {
		h.Log.WithError(err).Error("create service failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "service": svc})
}

// GetService returns one catalog entry by id.
func (h *Handler) GetService(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var svc models.Service
	if err := h.services().FindOne(c.Request.Context(), bson.M{"_id": serviceID}).Decode(&svc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": svc})
}

// UpdateService replaces the editable fields of a catalog entry. The slug is
// not re-checked for uniqueness here.
func (h *Handler) UpdateService(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	items := req.Items
	if items == nil {
		items = []string{}
	}

	update := bson.M{"$set": bson.M{
		"title":       req.Title,
		"type":        req.Type,
		"description": req.Description,
		"active":      active,
		"category":    req.Category,
		"price":       req.Price,
		"items":       items,
		"updatedAt":   time.Now(),
	}}

	ctx := c.Request.Context()
	result, err := h.services().UpdateOne(ctx, bson.M{"_id": serviceID}, update)
	if err != nil {
		h.Log.WithError(err).Error("update service failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var svc models.Service
	if err := h.services().FindOne(ctx, bson.M{"_id": serviceID}).Decode(&svc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "service": svc})
}

// DeleteService removes a catalog entry unconditionally.
func (h *Handler) DeleteService(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	result, err := h.services().DeleteOne(c.Request.Context(), bson.M{"_id": serviceID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deleted successfully"})
}

// ToggleService flips the active flag and returns the new value.
func (h *Handler) ToggleService(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	ctx := c.Request.Context()
	var svc models.Service
	if err := h.services().FindOne(ctx, bson.M{"_id": serviceID}).Decode(&svc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	newActive := !svc.Active
	_, err = h.services().UpdateOne(ctx, bson.M{"_id": serviceID},
		bson.M{"$set": bson.M{"active": newActive, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "active": newActive})
}
