package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fixu-in/fixu-api/internal/models"
)

// Activity is one entry of the dashboard's recent-activity feed.
type Activity struct {
	Type      string    `json:"type"` // "registration" or "order"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	OrderID   string    `json:"orderId,omitempty"`
}

const recentActivityLimit = 10

// buildRecentActivities merges recent registrations with each recently
// ordering user's newest order, newest first, capped at recentActivityLimit.
func buildRecentActivities(recentUsers, orderUsers []models.User) []Activity {
	activities := make([]Activity, 0)

	for _, user := range recentUsers {
		activities = append(activities, Activity{
			Type:      "registration",
			Message:   fmt.Sprintf("New user registered: %s", user.Name),
			Timestamp: user.CreatedAt,
			UserID:    user.ID.Hex(),
		})
	}

	for _, user := range orderUsers {
		if len(user.Orders) == 0 {
			continue
		}
		newest := user.Orders[0]
		for _, o := range user.Orders[1:] {
			if o.CreatedAt.After(newest.CreatedAt) {
				newest = o
			}
		}
		activities = append(activities, Activity{
			Type:      "order",
			Message:   fmt.Sprintf("New order: %s by %s", newest.ServiceName, user.Name),
			Timestamp: newest.CreatedAt,
			UserID:    user.ID.Hex(),
			OrderID:   newest.ID.Hex(),
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > recentActivityLimit {
		activities = activities[:recentActivityLimit]
	}
	return activities
}

// Dashboard returns aggregate counts and a recent-activity feed. Counts are
// recomputed by collection scans on each read; nothing is cached.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	totalUsers, err := h.users().CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}
	totalServices, err := h.services().CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}
	activeServices, err := h.services().CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	// Total orders: sum of every user's embedded order list.
	cursor, err := h.users().Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"orders": 1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}
	var usersWithOrders []models.User
	if err := cursor.All(ctx, &usersWithOrders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}
	totalOrders := 0
	for _, user := range usersWithOrders {
		totalOrders += len(user.Orders)
	}

	recentUsers, err := h.findUsers(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	orderUsers, err := h.findUsers(ctx, bson.M{"orders.0": bson.M{"$exists": true}},
		options.Find().SetSort(bson.D{{Key: "orders.createdAt", Value: -1}}).SetLimit(5))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":       totalUsers,
		"totalServices":    totalServices,
		"activeServices":   activeServices,
		"totalOrders":      totalOrders,
		"recentActivities": buildRecentActivities(recentUsers, orderUsers),
	})
}

func (h *Handler) findUsers(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	cursor, err := h.users().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
