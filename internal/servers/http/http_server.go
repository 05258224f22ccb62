package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collabboard/configs"
	"collabboard/internal/handlers"
	"collabboard/internal/hub"
	"collabboard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type HttpServer struct {
	ctx           context.Context
	config        *configs.Config
	redis         *redis.Client
	registry      *hub.Registry
	router        *gin.Engine
	restHandler   *handlers.RestHandler
	socketHandler *handlers.SocketWhiteboardHandler
	authService   *services.AuthenticationService
}

func NewHttpServer(
	ctx context.Context,
	config *configs.Config,
	redis *redis.Client,
	registry *hub.Registry,
	restHandler *handlers.RestHandler,
	socketHandler *handlers.SocketWhiteboardHandler,
	authService *services.AuthenticationService,
) *HttpServer {
	return &HttpServer{
		ctx:           ctx,
		config:        config,
		redis:         redis,
		registry:      registry,
		restHandler:   restHandler,
		socketHandler: socketHandler,
		authService:   authService,
	}
}

func (hs *HttpServer) Run() {
	hs.initializeGin()
	hs.setupRoutes()
	server := hs.startServer()
	hs.waitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	hs.router = gin.New()
	hs.router.Use(gin.Recovery())
	hs.router.Use(handlers.RateLimitMiddleware(hs.redis, hs.config))
}

func (hs *HttpServer) setupRoutes() {
	hs.router.POST("/login", hs.restHandler.Login)
	hs.router.POST("/register", hs.restHandler.Register)

	// The websocket route authenticates itself through query params.
	hs.router.GET("/ws/whiteboards/:whiteboardId", hs.socketHandler.HandleSocketWhiteboardRoute)

	authorized := hs.router.Group("/")
	authorized.Use(handlers.MustAuthenticateMiddleware(hs.authService))
	{
		authorized.GET("/profile", hs.restHandler.GetProfile)
		authorized.POST("/profile/avatar", hs.restHandler.UploadUserAvatar)

		authorized.POST("/whiteboards", hs.restHandler.CreateWhiteboard)
		authorized.GET("/whiteboards", hs.restHandler.GetOwnWhiteboards)
		authorized.GET("/whiteboards/:whiteboardId", hs.restHandler.GetWhiteboard)
		authorized.PUT("/whiteboards/:whiteboardId", hs.restHandler.UpdateWhiteboard)
		authorized.DELETE("/whiteboards/:whiteboardId", hs.restHandler.DeleteWhiteboard)

		authorized.POST("/whiteboards/:whiteboardId/share", hs.restHandler.ShareWhiteboard)
		authorized.PUT("/whiteboards/:whiteboardId/permissions", hs.restHandler.UpdatePermission)
		authorized.DELETE("/whiteboards/:whiteboardId/collaborators/:userId", hs.restHandler.RemoveCollaborator)
		authorized.GET("/whiteboards/:whiteboardId/participants", hs.restHandler.ListParticipants)

		authorized.GET("/whiteboards/:whiteboardId/elements", hs.restHandler.GetElements)
		authorized.POST("/whiteboards/:whiteboardId/elements", hs.restHandler.CreateElement)
		authorized.PUT("/whiteboards/:whiteboardId/elements", hs.restHandler.ReplaceElements)
		authorized.DELETE("/whiteboards/:whiteboardId/elements", hs.restHandler.ClearElements)
		authorized.PUT("/whiteboards/:whiteboardId/elements/:elementId", hs.restHandler.UpdateElement)
		authorized.DELETE("/whiteboards/:whiteboardId/elements/:elementId", hs.restHandler.DeleteElement)

		authorized.POST("/tags", hs.restHandler.CreateTag)
		authorized.GET("/tags", hs.restHandler.ListTags)
		authorized.GET("/whiteboards/:whiteboardId/tags", hs.restHandler.GetWhiteboardTags)
		authorized.POST("/whiteboards/:whiteboardId/tags", hs.restHandler.AttachTag)
		authorized.DELETE("/whiteboards/:whiteboardId/tags/:tagId", hs.restHandler.DetachTag)

		authorized.POST("/search/whiteboards", hs.restHandler.SearchWhiteboards)
		authorized.GET("/search/tags", hs.restHandler.SearchableTags)
		authorized.GET("/search/authors", hs.restHandler.SearchableAuthors)
	}
}

func (hs *HttpServer) startServer() *http.Server {
	addr := fmt.Sprintf(
		"%s:%d",
		hs.config.Viper.GetString("server.host"),
		hs.config.Viper.GetInt("server.port"),
	)
	server := &http.Server{
		Addr:    addr,
		Handler: hs.router,
	}

	go func() {
		logrus.WithField("addr", addr).Info("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(hs.ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	hs.registry.CloseAll()

	logrus.Info("Server exiting")
}
