package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"internportal/internal/apiclient"
	"internportal/internal/config"
	"internportal/internal/handler"
	"internportal/internal/middleware"
	"internportal/internal/session"
	"internportal/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	Engine *gin.Engine
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	if _, err := url.ParseRequestURI(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("❌ invalid API base URL %q: %w", cfg.APIBaseURL, err)
	}
	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	log.Printf("✅ External API client pointed at %s\n", cfg.APIBaseURL)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	views := store.New()

	// Setup Gin
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(api, sessions)
	personHandler := handler.NewPersonHandler(api, views)
	taskHandler := handler.NewTaskHandler(api, api, views)
	dashboardHandler := handler.NewDashboardHandler(api, views)

	// Public routes
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", authHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require a session cookie
	authorized := r.Group("/")
	authorized.Use(middleware.SessionAuthMiddleware(sessions))
	{
		authorized.GET("/session", authHandler.Session)
		authorized.POST("/logout", authHandler.Logout)

		// Person directory routes
		authorized.GET("/interns", personHandler.List)
		authorized.POST("/interns", personHandler.Create)
		authorized.PUT("/interns/:id", personHandler.Update)
		authorized.DELETE("/interns/:id", personHandler.Delete)

		// Task board routes
		authorized.GET("/tasks", taskHandler.List)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.GET("/tasks/export", taskHandler.Export)

		// Per-user dashboard routes
		authorized.GET("/dashboard/tasks", dashboardHandler.Tasks)
		authorized.PATCH("/dashboard/tasks/:id/status", dashboardHandler.UpdateStatus)
	}

	return &Server{
		Engine: r,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
