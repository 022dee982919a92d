package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stanislausjustin/user-service/config"
	"github.com/stanislausjustin/user-service/controllers"
	"github.com/stanislausjustin/user-service/middleware"
	"github.com/stanislausjustin/user-service/store"
	"github.com/stanislausjustin/user-service/utils"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if !cfg.SMTPConfigured() {
		logger.Warn("SMTP not configured, OTP emails will fail and be logged")
	}

	// Connect to MongoDB
	client, db, err := config.ConnectDB(context.Background(), cfg)
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))

	userStore := store.NewMongoStore(db)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := userStore.EnsureIndexes(ctx); err != nil {
			logger.Fatal("failed to create indexes", zap.Error(err))
		}
		cancel()
	}

	tokens := utils.NewTokenManager(cfg)
	mailer := utils.NewSMTPSender(cfg)
	uc := controllers.NewUserController(userStore, tokens, mailer, logger)

	router := gin.Default()
	registerRoutes(router, uc, tokens)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine for graceful shutdown
	go func() {
		logger.Info("🚀 server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt (Ctrl+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if err := client.Disconnect(ctx); err != nil {
		logger.Error("error disconnecting MongoDB", zap.Error(err))
	}

	logger.Info("server exited properly")
}

func registerRoutes(router *gin.Engine, uc *controllers.UserController, tokens *utils.TokenManager) {
	api := router.Group("/api")

	user := api.Group("/user")
	{
		user.POST("/signup", uc.SignUp)
		user.POST("/signin", uc.SignIn)
		user.POST("/verify", uc.VerifyEmail)
		user.GET("/refresh_token", uc.RefreshToken)

		user.GET("/user-infor", middleware.Auth(tokens), uc.UserInfo)
		user.PATCH("/update", middleware.Auth(tokens), uc.UpdateProfile)
	}

	admin := api.Group("/admin", middleware.Auth(tokens), middleware.RequireAdmin())
	{
		admin.GET("/users", uc.GetAllUsers)
		admin.PUT("/users/:id", uc.UpdateUser)
		admin.DELETE("/users/:id", uc.DeleteUser)
	}
}
