package fx

import (
	"darts-tracker/internal/api"
	"darts-tracker/internal/config"
	"darts-tracker/internal/database"
	"darts-tracker/internal/logger"
	"darts-tracker/internal/repository"
	"darts-tracker/internal/server"
	"darts-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewProfileRepository),
	fx.Provide(repository.NewClubRepository),
	fx.Provide(repository.NewStatsRepository),
	fx.Provide(repository.NewNotificationRepository),
	// api client
	fx.Provide(api.NewIdentityClient),
	// svc
	fx.Provide(service.NewClubService),
	fx.Provide(service.NewDashboardService),
	fx.Provide(service.NewStandingsService),
	fx.Provide(service.NewIngestService),
	fx.Provide(service.NewNotificationService),
	fx.Provide(service.NewUserService),
	fx.Provide(service.NewAnalyticsService),
	// server
	fx.Provide(server.NewServer),
)
