package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jsoniter "github.com/json-iterator/go"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/config"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/service"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/ws"
)

type Dependencies struct {
	MeshService *service.MeshService
	Config      *config.Config
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
	wsHub       *ws.Hub
	cancelHub   context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Face Mesh Geometry API",
		BodyLimit:    deps.Config.BodyLimitMB * 1024 * 1024,
		JSONEncoder:  jsoniter.Marshal,
		JSONDecoder:  jsoniter.Unmarshal,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	cfg := r.deps.Config

	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	healthHandler := handler.NewHealthHandler(string(cfg.Format()), cfg.DirectionFactor)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	v1 := r.app.Group("/v1")

	// WebSocket stream, registered before the limiter so a long-lived
	// connection costs one request
	r.wsHub = ws.NewHub(r.logger)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	r.cancelHub = hubCancel
	go r.wsHub.Run(hubCtx)

	v1.Get("/mesh/stream", ws.UpgradeMiddleware(), ws.Handler(r.wsHub, ws.HandlerConfig{
		Analyzer:        r.deps.MeshService,
		ReadoutInterval: cfg.ReadoutInterval,
		MaxMessageSize:  int64(cfg.BodyLimitMB) * 1024 * 1024,
		Logger:          r.logger,
	}))

	// Rate limiting per client IP
	limiterCfg := middleware.DefaultRateLimiterConfig()
	limiterCfg.Max = cfg.RateLimitMax
	limiterCfg.Window = cfg.RateLimitWindow
	r.rateLimiter = middleware.NewRateLimiter(limiterCfg)
	v1.Use(r.rateLimiter.Handler())

	meshHandler := handler.NewMeshHandler(r.deps.MeshService, r.logger)
	v1.Get("/mesh/regions", meshHandler.Regions)
	v1.Post("/mesh/analyze", meshHandler.Analyze)
	v1.Post("/mesh/readout", meshHandler.Readout)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

// Shutdown stops background goroutines and drains open connections until
// ctx expires.
func (r *Router) Shutdown(ctx context.Context) error {
	// Stop WebSocket hub
	if r.cancelHub != nil {
		r.cancelHub()
	}

	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.ShutdownWithContext(ctx)
}
