package api

import (
	"context"
	"errors"
	"movie_review/api/middleware"
	"movie_review/configs"
	_ "movie_review/docs"
	"movie_review/internal/handler"
	"movie_review/pkg/logger"
	"movie_review/pkg/response"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

const (
	requestTimeout = 10 * time.Second
	// posters are capped at 1.5 MiB, the rest is room for the other fields
	bodyLimit = 4 * 1024 * 1024
)

type Handlers struct {
	Movie  *handler.MovieHandler
	Review *handler.ReviewHandler
	User   *handler.UserHandler
}

var router *fiber.App

func InitRouter(handlers Handlers, db middleware.Pinger) {
	router = NewRouter(handlers, db, "./templates")
}

// NewRouter builds the fiber app. viewsDir holds the page templates.
func NewRouter(handlers Handlers, db middleware.Pinger, viewsDir string) *fiber.App {
	var defaultErrorHandler = func(c *fiber.Ctx, err error) error {
		// Status code defaults to 500
		code := fiber.StatusInternalServerError

		// Retrieve the custom status code if it's a *fiber.Error
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		if !strings.Contains(err.Error(), "/favicon.ico") && code >= 500 {
			logger.L().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}

		if code >= 500 {
			return response.ResponseError(c, response.ServerError, code)
		}
		return response.ResponseError(c, err.Error(), code)
	}

	config := configs.GetConfigs()

	engine := html.New(viewsDir, ".tpl")
	app := fiber.New(fiber.Config{
		UnescapePath: true,
		BodyLimit:    bodyLimit,
		ErrorHandler: defaultErrorHandler,
		Views:        engine,
	})

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return middleware.LocalhostRegex.MatchString(origin) ||
				slices.Index(configs.GetConfigs().CorsAllowedOrigins, origin) != -1
		},
		AllowCredentials: true,
	}))
	app.Use(timeoutMiddleware(requestTimeout))
	app.Use(recover.New())
	app.Use(fiberLogger.New(fiberLogger.Config{
		Output: middleware.ZapWriter{},
		Format: "${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())

	app.Use(fibersentry.New(fibersentry.Config{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Static("/uploads", filepath.Join(config.ContentRoot, "uploads"), fiber.Static{
		Compress:      false,
		ByteRange:     true,
		Browse:        false,
		CacheDuration: 0,
		MaxAge:        3600,
	})

	v1 := app.Group("v1", middleware.RequireDatabase(db))
	if config.RateLimitPerMinute > 0 {
		v1.Use(limiter.New(limiter.Config{
			Max:        config.RateLimitPerMinute,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return response.ResponseError(c, "Too many requests", fiber.StatusTooManyRequests)
			},
		}))
	}

	movieRoutes := v1.Group("movies")
	{
		movieRoutes.Get("/", handlers.Movie.ListMovies)
		movieRoutes.Post("/add", handlers.Movie.AddMovie)
		movieRoutes.Post("/edit", handlers.Movie.EditMovie)
		movieRoutes.Post("/delete", handlers.Movie.DeleteMovie)
	}

	reviewRoutes := v1.Group("reviews")
	{
		reviewRoutes.Post("/submit", handlers.Review.SubmitReview)
		reviewRoutes.Get("/:movieId", handlers.Review.GetMovieReviews)
	}

	userRoutes := v1.Group("users")
	{
		userRoutes.Get("/", handlers.User.ListUsers)
		userRoutes.Post("/", handlers.User.SaveUser)
	}

	app.Get("/catalog", middleware.RequireDatabase(db), handlers.Movie.CatalogPage)

	app.Get("/", HealthCheck)
	app.Get("/metrics", monitor.New())

	app.Get("/swagger/*", swagger.HandlerDefault) // default

	return app
}

func Start(addr string) error {
	return router.Listen(addr)
}

func Shutdown(timeout time.Duration) error {
	if router == nil {
		return nil
	}
	return router.ShutdownWithTimeout(timeout)
}

// timeoutMiddleware puts a deadline on the request context handed to the
// services and answers 504 when it is reached.
func timeoutMiddleware(timeout time.Duration) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {

		// wrap the request context with a timeout
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)

		defer func() {
			// check if context timeout was reached
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				_ = response.ResponseError(c, "Request timeout", fiber.StatusGatewayTimeout)
			}

			//cancel to clear resources after finished
			cancel()
		}()

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// HealthCheck godoc
//
//	@Summary		Show the status of server.
//	@Description	get the status of server.
//	@Tags			System
//	@Success		200	{object}	map[string]interface{}
//	@Router			/ [get]
func HealthCheck(c *fiber.Ctx) error {
	res := map[string]interface{}{
		"success": true,
		"data":    "Server is up and running",
	}

	if err := c.JSON(res); err != nil {
		return err
	}

	return nil
}
