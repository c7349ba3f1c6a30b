package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fixu-in/fixu-api/internal/config"
	"github.com/fixu-in/fixu-api/internal/middleware"
	"github.com/fixu-in/fixu-api/internal/services"
	"github.com/fixu-in/fixu-api/internal/utils"
)

// Handler carries the shared dependencies for all HTTP handlers.
type Handler struct {
	DB       *mongo.Database
	Log      *logrus.Logger
	JWT      *utils.JWTManager
	Payments *services.PaymentService
	Mailer   *services.Mailer
	Cfg      *config.Config
}

func NewHandler(db *mongo.Database, log *logrus.Logger, jwtMgr *utils.JWTManager, payments *services.PaymentService, mailer *services.Mailer, cfg *config.Config) *Handler {
	return &Handler{
		DB:       db,
		Log:      log,
		JWT:      jwtMgr,
		Payments: payments,
		Mailer:   mailer,
		Cfg:      cfg,
	}
}

func (h *Handler) users() *mongo.Collection {
	return h.DB.Collection("users")
}

func (h *Handler) services() *mongo.Collection {
	return h.DB.Collection("services")
}

// callerIdentity returns the claims Authenticate stored on the context.
func callerIdentity(c *gin.Context) (userID string, isAdmin bool) {
	return c.GetString(middleware.UserIDKey), c.GetBool(middleware.IsAdminKey)
}
