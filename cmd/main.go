package main

import (
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gamehub/auth"
	"gamehub/cache"
	"gamehub/db"
	"gamehub/handlers"
	"gamehub/middleware"
	"gamehub/monitoring"
	"gamehub/reviews"
	"gamehub/store"
	"gamehub/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	utils.InitLogger()
	monitoring.InitMetrics()

	conn, err := db.Open()
	if err != nil {
		utils.Log.Fatal("Failed to connect to the database: ", err)
	}
	utils.Log.Info("Database connected and migrated")

	gameStore := store.NewGorm(conn)

	redisCache, err := cache.New()
	if err != nil {
		utils.Log.Warn("Redis unavailable, running without cache: ", err)
		redisCache = nil
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		utils.Log.Fatal("JWT_SECRET is required")
	}
	provider := auth.NewJWTProvider(gameStore, []byte(secret))

	unsubscribe := provider.OnSessionChange(func(s *auth.Session) {
		if s == nil {
			utils.Log.Info("Session ended")
			return
		}
		utils.LogInfo("Session started", map[string]interface{}{"uid": s.UID})
	})
	defer unsubscribe()

	reviewService := reviews.NewService(gameStore)
	h := handlers.New(gameStore, provider, reviewService, redisCache)

	// Set to release mode in production
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(monitoring.PrometheusMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Static("/uploads", "./uploads")

	// Public routes
	r.POST("/login", h.Login)
	r.POST("/login/federated", h.FederatedLogin)
	r.POST("/users", h.Register)
	r.POST("/password-reset", h.PasswordReset)
	r.GET("/games", h.GetGames)
	r.GET("/games/:id", h.GetGameByID)
	r.GET("/reviews", h.GetReviews)
	r.GET("/metrics", monitoring.PrometheusHandler())

	protected := r.Group("/").Use(h.AuthMiddleware())
	protected.Use(middleware.RateLimit(redisCache, 60, time.Minute))
	{
		protected.POST("/games", h.CreateGame)
		protected.DELETE("/games/:id", h.DeleteGame)
		protected.POST("/games/:id/ratings", h.SubmitRating)
		protected.POST("/games/:id/scores", h.SubmitScore)
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.DELETE("/account", h.DeleteAccount)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Check if HTTPS should be enabled
	useHTTPS := os.Getenv("USE_HTTPS") == "true"
	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")

	if useHTTPS && certFile != "" && keyFile != "" {
		utils.Log.Info("Starting server with HTTPS on port ", port)

		tlsConfig := &tls.Config{
			MinVersion:       tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		}

		server := &http.Server{
			Addr:      ":" + port,
			Handler:   r,
			TLSConfig: tlsConfig,
		}

		if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
			utils.Log.Fatal("Failed to start HTTPS server: ", err)
		}
	} else {
		utils.Log.Info("Starting server with HTTP on port ", port)
		utils.Log.Warn("Running without HTTPS. Set USE_HTTPS=true for production")

		if err := r.Run(":" + port); err != nil {
			utils.Log.Fatal("Failed to start server: ", err)
		}
	}
}
