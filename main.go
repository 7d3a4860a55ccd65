package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/handler"
	"github.com/taskhub/backend/internal/service"
)

// @title TaskHub API
// @version 1.0
// @description JWT-authenticated task manager backend.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	// validated by config.Load
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	log = log.Level(level)

	ctx := context.Background()

	dsn, err := db.BuildDSN(cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid postgres configuration")
	}
	if err := db.Migrate(ctx, dsn); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	pg, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pg.Close()

	authSvc := service.NewAuthService(pg, cfg.Auth, log)
	projectSvc := service.NewProjectService(pg)
	taskSvc := service.NewTaskService(pg, pg)

	router := handler.NewRouter(
		log,
		cfg.HTTP.CORSOrigins,
		authSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewTaskHandler(taskSvc),
		handler.NewProjectHandler(projectSvc),
	)

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("starting server")
	if err := router.Run(cfg.HTTP.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
