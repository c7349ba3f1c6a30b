package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fixu-in/fixu-api/internal/middleware"
	"github.com/fixu-in/fixu-api/internal/models"
	"github.com/fixu-in/fixu-api/internal/utils"
)

func newAdminUserRouter(t *testing.T) (*gin.Engine, *utils.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := newTestHandler()
	jwtMgr, err := utils.NewJWTManager("test-secret")
	require.NoError(t, err)
	h.JWT = jwtMgr

	r := gin.New()
	r.DELETE("/api/admin/users/:id",
		middleware.Authenticate(jwtMgr), middleware.RequireAdmin(), h.AdminDeleteUser)
	return r, jwtMgr
}

func deleteUser(r *gin.Engine, token, id string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	return w
}

func TestAdminDeleteUser_SelfRejected(t *testing.T) {
	r, jwtMgr := newAdminUserRouter(t)

	selfID := primitive.NewObjectID().Hex()
	token, err := jwtMgr.Generate(selfID, "admin@fixu.in", true)
	require.NoError(t, err)

	w := deleteUser(r, token, selfID)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot delete your own account")
}

func TestAdminDeleteUser_SentinelSelfRejected(t *testing.T) {
	r, jwtMgr := newAdminUserRouter(t)

	token, err := jwtMgr.Generate(models.AdminUserID, "admin@fixu.in", true)
	require.NoError(t, err)

	w := deleteUser(r, token, models.AdminUserID)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot delete your own account")
}

func TestAdminDeleteUser_BadUserID(t *testing.T) {
	r, jwtMgr := newAdminUserRouter(t)

	token, err := jwtMgr.Generate(primitive.NewObjectID().Hex(), "admin@fixu.in", true)
	require.NoError(t, err)

	w := deleteUser(r, token, "not-an-id")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user ID")
}
