package main

import (
	"log"
	"movie_review/api"
	"movie_review/configs"
	"movie_review/db"
	"movie_review/db/mongodb"
	"movie_review/db/redis"
	"movie_review/internal/handler"
	"movie_review/internal/repository"
	"movie_review/internal/service"
	"movie_review/pkg/logger"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// @title			Movie Review
// @version		1.0
// @description	Movie catalog, poster uploads, reviews and credentials.
// @BasePath		/
// @schemes		http https
// @Accept			json
// @Produce		json
func main() {
	configs.LoadEnvVariables()

	if err := logger.Init(configs.GetConfigs().Env); err != nil {
		log.Fatalf("logger.Init: %s", err)
	}
	defer logger.Sync()

	err := sentry.Init(sentry.ClientOptions{
		Dsn:     configs.GetConfigs().SentryDns,
		Release: configs.GetConfigs().SentryRelease,
		// Set TracesSampleRate to 1.0 to capture 100%
		// of transactions for performance monitoring.
		TracesSampleRate: 1,
		EnableTracing:    true,
		AttachStacktrace: true,
	})
	if err != nil {
		logger.L().Fatal("sentry.Init", zap.Error(err))
	}
	// Flush buffered events before the program terminates.
	defer sentry.Flush(2 * time.Second)

	go redis.ConnectRedis()

	database, err := db.NewDatabase()
	if err != nil {
		logger.L().Fatal("could not initialize postgres database connection", zap.Error(err))
	}
	defer database.Close()
	if configs.GetConfigs().AutoMigrate {
		if err = database.Migrate(); err != nil {
			logger.L().Fatal("could not migrate postgres tables", zap.Error(err))
		}
	}

	mongoDB, err := mongodb.NewDatabase()
	if err != nil {
		logger.L().Fatal("could not initialize mongodb database connection", zap.Error(err))
	}
	defer mongoDB.Close()

	posterSvc := service.NewPosterService(configs.GetConfigs().ContentRoot)

	movieRep := repository.NewMovieRepository(database.GetDB())
	movieSvc := service.NewMovieService(movieRep, posterSvc, service.NewRedisMovieListCache())
	movieHandler := handler.NewMovieHandler(movieSvc)

	reviewRep := repository.NewReviewRepository(mongoDB.GetDB())
	reviewSvc := service.NewReviewService(reviewRep)
	reviewHandler := handler.NewReviewHandler(reviewSvc)

	userRep := repository.NewUserRepository(database.GetDB())
	userSvc := service.NewUserService(userRep)
	userHandler := handler.NewUserHandler(userSvc)

	api.InitRouter(api.Handlers{
		Movie:  movieHandler,
		Review: reviewHandler,
		User:   userHandler,
	}, database)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.L().Info("shutting down server")
		if err := api.Shutdown(10 * time.Second); err != nil {
			logger.L().Error("server shutdown", zap.Error(err))
		}
		_ = redis.CloseRedis()
	}()

	if err = api.Start("0.0.0.0:" + configs.GetConfigs().Port); err != nil {
		logger.L().Error("server stopped", zap.Error(err))
	}
}
