package app

import (
	"context"

	"collabboard/configs"
	"collabboard/internal/handlers"
	"collabboard/internal/hub"
	"collabboard/internal/repositories"
	"collabboard/internal/servers/database"
	"collabboard/internal/servers/http"
	"collabboard/internal/services"

	"github.com/redis/go-redis/v9"
)

type App struct {
	ctx     context.Context
	redis   *redis.Client
	configs *configs.Config
}

func NewApp() *App {
	return &App{}
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.configs = configs.GetConfig()
	app.initializeRedis()

	db := database.GetDB(app.configs)

	authRepo := repositories.NewAuthenticationRepository(db)
	whiteboardRepo := repositories.NewWhiteboardRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	authService := services.NewAuthenticationService(authRepo, app.configs)
	whiteboardService := services.NewWhiteboardService(whiteboardRepo, tagRepo)
	searchService := services.NewSearchService(whiteboardRepo)

	minioService := services.NewMinioService(app.configs)
	fileManagerService := services.NewFileManagerService(minioService)

	registry := hub.NewRegistry()
	router := hub.NewRouter(registry, whiteboardService)

	restHandler := handlers.NewRestHandler(
		authService,
		whiteboardService,
		searchService,
		fileManagerService,
	)
	socketWhiteboardHandler := handlers.NewSocketWhiteboardHandler(
		registry,
		router,
		authService,
		whiteboardService,
	)

	http.NewHttpServer(
		app.ctx,
		app.configs,
		app.redis,
		registry,
		restHandler,
		socketWhiteboardHandler,
		authService,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr: app.configs.Viper.GetString("redis.addr"),
	})
}
