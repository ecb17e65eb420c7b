package web

import (
	"context"
	"net/http"

	"hospital-agent/config"
	"hospital-agent/web/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Server struct {
	router    *gin.Engine
	assistant handlers.Assistant
	logger    *zap.Logger
	config    *config.Config
}

func NewServer(assistant handlers.Assistant, logger *zap.Logger, config *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: false,
	}))
	router.Use(func(c *gin.Context) {
		// Tag every request for log correlation
		c.Set("request_id", uuid.New().String())
		c.Next()
	})

	server := &Server{
		router:    router,
		assistant: assistant,
		logger:    logger,
		config:    config,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	chatHandler := handlers.NewChatHandler(s.assistant, s.logger)

	s.router.POST("/chat/v1/send", chatHandler.SendMessage)
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	s.logger.Info("Shutting down web server")
	return srv.Shutdown(context.Background())
}
