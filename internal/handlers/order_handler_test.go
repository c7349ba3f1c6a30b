package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fixu-in/fixu-api/internal/middleware"
	"github.com/fixu-in/fixu-api/internal/models"
	"github.com/fixu-in/fixu-api/internal/utils"
)

func TestFlattenOrders_FallbackContactFields(t *testing.T) {
	userID := primitive.NewObjectID()
	orderID := primitive.NewObjectID()
	users := []models.User{
		{
			ID:    userID,
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "9876543210",
			Orders: []models.Order{
				{
					ID:          orderID,
					ServiceName: "Plumbing",
					Status:      models.OrderPending,
					CreatedAt:   time.Now(),
				},
			},
		},
	}

	flat := flattenOrders(users)
	require.Len(t, flat, 1)
	assert.Equal(t, orderID.Hex(), flat[0].ID)
	assert.Equal(t, "Asha Rao", flat[0].CustomerName)
	assert.Equal(t, "9876543210", flat[0].CustomerPhone)
	assert.Equal(t, "asha@example.com", flat[0].CustomerEmail)
	assert.Equal(t, userID.Hex(), flat[0].UserID)
	assert.Equal(t, "Asha Rao", flat[0].UserName)
}

func TestFlattenOrders_KeepsDenormalizedFields(t *testing.T) {
	users := []models.User{
		{
			ID:    primitive.NewObjectID(),
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Orders: []models.Order{
				{
					ID:            primitive.NewObjectID(),
					ServiceName:   "AC Repair",
					CustomerName:  "Neighbour Flat",
					CustomerEmail: "other@example.com",
					CreatedAt:     time.Now(),
				},
			},
		},
	}

	flat := flattenOrders(users)
	require.Len(t, flat, 1)
	assert.Equal(t, "Neighbour Flat", flat[0].CustomerName)
	assert.Equal(t, "other@example.com", flat[0].CustomerEmail)
}

func TestFlattenOrders_NewestFirst(t *testing.T) {
	now := time.Now()
	users := []models.User{
		{
			ID:   primitive.NewObjectID(),
			Name: "A",
			Orders: []models.Order{
				{ID: primitive.NewObjectID(), ServiceName: "old", CreatedAt: now.Add(-2 * time.Hour)},
				{ID: primitive.NewObjectID(), ServiceName: "newest", CreatedAt: now},
			},
		},
		{
			ID:   primitive.NewObjectID(),
			Name: "B",
			Orders: []models.Order{
				{ID: primitive.NewObjectID(), ServiceName: "middle", CreatedAt: now.Add(-time.Hour)},
			},
		},
	}

	flat := flattenOrders(users)
	require.Len(t, flat, 3)
	assert.Equal(t, "newest", flat[0].ServiceName)
	assert.Equal(t, "middle", flat[1].ServiceName)
	assert.Equal(t, "old", flat[2].ServiceName)
}

func TestFlattenOrders_ScheduledDateOmittedWhenUnset(t *testing.T) {
	scheduled := time.Now().Add(48 * time.Hour)
	users := []models.User{
		{
			ID:   primitive.NewObjectID(),
			Name: "A",
			Orders: []models.Order{
				{ID: primitive.NewObjectID(), ServiceName: "unscheduled", CreatedAt: time.Now()},
				{ID: primitive.NewObjectID(), ServiceName: "scheduled", ScheduledDate: scheduled, CreatedAt: time.Now().Add(-time.Hour)},
			},
		},
	}

	flat := flattenOrders(users)
	require.Len(t, flat, 2)
	assert.Nil(t, flat[0].ScheduledDate)
	require.NotNil(t, flat[1].ScheduledDate)
	assert.True(t, flat[1].ScheduledDate.Equal(scheduled))

	// The zero time must not leak into the JSON the admin view consumes.
	body, err := json.Marshal(flat[0])
	require.NoError(t, err)
	assert.NotContains(t, string(body), "scheduledDate")
}

func TestFlattenOrders_Empty(t *testing.T) {
	flat := flattenOrders(nil)
	assert.NotNil(t, flat)
	assert.Empty(t, flat)
}

func newTestHandler() *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Handler{Log: log}
}

func performJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrder_AdminForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	jwtMgr, err := utils.NewJWTManager("test-secret")
	require.NoError(t, err)
	h.JWT = jwtMgr

	r := gin.New()
	r.POST("/api/orders", middleware.Authenticate(jwtMgr), h.CreateOrder)

	token, err := jwtMgr.Generate(models.AdminUserID, "admin@fixu.in", true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"serviceName":"Plumbing"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin users cannot place orders")
}

func TestAdminUpdateOrder_InvalidStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	r := gin.New()
	r.PUT("/api/admin/orders/:id", h.AdminUpdateOrder)

	id := primitive.NewObjectID().Hex()
	w := performJSON(r, http.MethodPut, "/api/admin/orders/"+id, `{"status":"shipped"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid order status")
}

func TestAdminUpdateOrder_NoFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	r := gin.New()
	r.PUT("/api/admin/orders/:id", h.AdminUpdateOrder)

	id := primitive.NewObjectID().Hex()
	w := performJSON(r, http.MethodPut, "/api/admin/orders/"+id, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No fields to update")
}

func TestAdminUpdateOrder_BadOrderID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	r := gin.New()
	r.PUT("/api/admin/orders/:id", h.AdminUpdateOrder)

	w := performJSON(r, http.MethodPut, "/api/admin/orders/not-an-id", `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid order ID")
}

func TestUpdateOrderPayment_MissingPaymentID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	r := gin.New()
	r.PUT("/api/orders/:id/payment", h.UpdateOrderPayment)

	id := primitive.NewObjectID().Hex()
	w := performJSON(r, http.MethodPut, "/api/orders/"+id+"/payment", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
