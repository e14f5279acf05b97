package web

import (
	"context"
	"net/http"

	"chat-agent/config"
	"chat-agent/engine"
	"chat-agent/web/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	engine *engine.Engine
	logger *zap.Logger
	config *config.Config
}

func NewServer(chatEngine *engine.Engine, logger *zap.Logger, config *config.Config) *Server {
	// Set Gin mode based on environment
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		// Add logger to context
		c.Set("logger", logger)
		c.Next()
	})

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	router.Use(cors.New(corsConfig))

	server := &Server{
		router: router,
		engine: chatEngine,
		logger: logger,
		config: config,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	chatHandler := handlers.NewChatHandler(s.engine, s.logger)

	s.router.POST("/api/chat", chatHandler.SendMessage)
	s.router.GET("/api/health", chatHandler.Health)
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
