package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fixu-in/fixu-api/internal/config"
	"github.com/fixu-in/fixu-api/internal/handlers"
	"github.com/fixu-in/fixu-api/internal/middleware"
	"github.com/fixu-in/fixu-api/internal/services"
	"github.com/fixu-in/fixu-api/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables.")
	}

	cfg := config.Load()
	log := newLogger(cfg.Env)

	jwtMgr, err := utils.NewJWTManager(cfg.JWTSecret)
	if err != nil {
		log.WithError(err).Fatal("JWT configuration invalid")
	}
	if cfg.AdminBypassEnabled() {
		log.Warn("admin bypass credentials are set; the break-glass admin login is active")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDatabase)
	if err := ensureIndexes(ctx, db); err != nil {
		log.WithError(err).Fatal("Failed to create indexes")
	}
	log.Info("Successfully connected to MongoDB")

	// --- Services ---
	payments := services.NewPaymentService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	mailer := services.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.NotifyEmail, log)

	h := handlers.NewHandler(db, log, jwtMgr, payments, mailer, cfg)

	// --- Gin Router ---
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.POST("/logout", h.Logout)
		authRoutes.GET("/me", h.Me)
		authRoutes.GET("/validate", h.Validate)
	}

	// Public endpoints: catalog browsing, the checkout signature callback,
	// and the booking notification the payment page fires.
	r.GET("/api/services", h.ListServices)
	r.PUT("/api/payment", h.VerifyPayment)
	r.POST("/api/send-email", h.SendEmail)

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.Authenticate(jwtMgr))
	{
		apiRoutes.GET("/orders", h.ListOrders)
		apiRoutes.POST("/orders", h.CreateOrder)
		apiRoutes.PUT("/orders/:id/payment", h.UpdateOrderPayment)
		apiRoutes.POST("/payment", h.CreatePayment)
	}

	adminRoutes := r.Group("/api/admin")
	adminRoutes.Use(middleware.Authenticate(jwtMgr), middleware.RequireAdmin())
	{
		adminRoutes.GET("/dashboard", h.Dashboard)

		adminRoutes.GET("/orders", h.AdminListOrders)
		adminRoutes.PUT("/orders/:id", h.AdminUpdateOrder)

		adminRoutes.GET("/users", h.AdminListUsers)
		adminRoutes.POST("/users", h.AdminCreateUser)
		adminRoutes.GET("/users/:id", h.AdminGetUser)
		adminRoutes.PUT("/users/:id", h.AdminUpdateUser)
		adminRoutes.DELETE("/users/:id", h.AdminDeleteUser)

		adminRoutes.GET("/services", h.AdminListServices)
		adminRoutes.POST("/services", h.CreateService)
		adminRoutes.GET("/services/:id", h.GetService)
		adminRoutes.PUT("/services/:id", h.UpdateService)
		adminRoutes.DELETE("/services/:id", h.DeleteService)
		adminRoutes.PATCH("/services/:id", h.ToggleService)
	}

	log.WithField("port", cfg.Port).Info("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func newLogger(env string) *logrus.Logger {
	log := logrus.New()
	if env == "development" {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
