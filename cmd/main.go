package main

import (
	"context"

	"github.com/hellofresh/health-go/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/yakoovad/teamhub/internal/api"
	"github.com/yakoovad/teamhub/internal/auth"
	"github.com/yakoovad/teamhub/internal/config"
	"github.com/yakoovad/teamhub/internal/db"
	"github.com/yakoovad/teamhub/internal/repository"
	"github.com/yakoovad/teamhub/internal/service"
	"github.com/yakoovad/teamhub/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting application")

	cfg := config.Load()
	if cfg.TokenSecret != "" {
		auth.TokenSecretKey = cfg.TokenSecret
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err = pool.Ping(context.Background()); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	logger.Info("database connection established")

	if err = db.Migrate(context.Background(), cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	transactor := db.NewPgxTransactor(pool)

	userRepo := repository.NewPgxUserRepository(pool)
	teamRepo := repository.NewPgxTeamRepository(pool)
	memberRepo := repository.NewPgxMemberRepository(pool)

	user := service.NewUserService(transactor).
		WithUserRepo(userRepo).
		WithBcryptCost(cfg.BcryptCost).
		WithTokenTTL(cfg.TokenTTL)
	team := service.NewTeamService(transactor).WithTeamRepo(teamRepo).WithMemberRepo(memberRepo)
	member := service.NewMemberService(transactor).
		WithUserRepo(userRepo).
		WithTeamRepo(teamRepo).
		WithMemberRepo(memberRepo)

	healthChecker := api.MustNewHealthChecker(health.Config{
		Name: "postgres",
		Check: func(ctx context.Context) error {
			return pool.Ping(ctx)
		},
	})

	e := echo.New()

	handler := api.NewHandler(logger).
		WithHealthChecker(healthChecker).
		WithUserService(user).
		WithTeamService(team).
		WithMemberService(member)

	handler.RegisterRoutes(e)

	logger.Info("server starting", zap.String("addr", cfg.ServerAddr))
	if err = e.Start(cfg.ServerAddr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
