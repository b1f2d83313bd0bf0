package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kagari-dev/driftboard/internal/config"
	"github.com/kagari-dev/driftboard/internal/infra/cache"
	"github.com/kagari-dev/driftboard/internal/infra/database"
	"github.com/kagari-dev/driftboard/internal/infra/repository"
	"github.com/kagari-dev/driftboard/internal/present/rest"
	authmw "github.com/kagari-dev/driftboard/internal/present/rest/middleware"
	"github.com/kagari-dev/driftboard/internal/service"
	"github.com/kagari-dev/driftboard/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("DRIFTBOARD_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	conf, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if conf.Server.EnableTrace {
		cleanup, err := setupTracer(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to setup tracer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	contentRepo := repository.NewContentRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	var feedCache usecase.FeedCache
	switch conf.Server.CacheBackend {
	case "redis":
		rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
		feedCache = cache.NewRedisFeedCache(rdb)
	case "memcached":
		mc := database.NewMemcached(conf.Server.MemcachedAddr)
		feedCache = cache.NewMemcachedFeedCache(mc)
	default:
		// no shared cache; every feed page is computed per request
	}

	feedUC := usecase.NewFeedUsecase(contentRepo, engagementRepo, feedCache, conf.Server.FeedCacheTTL())
	engagementUC := usecase.NewEngagementUsecase(engagementRepo)
	contentUC := usecase.NewContentUsecase(contentRepo, commentRepo)
	catalog := service.NewTemplateCatalog(templateRepo, conf.Server.TemplateTTL())
	auth := service.NewAuthService(conf.Server.JwtSecret)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(conf.Site.Name))
	}
	e.Use(authmw.NewAuthMiddleware(auth).IdentifyIdentity)

	handler := rest.NewHandler(feedUC, engagementUC, contentUC, catalog)
	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(endpoint string) (func(), error) {
	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	return func() {
		_ = provider.Shutdown(context.Background())
	}, nil
}
