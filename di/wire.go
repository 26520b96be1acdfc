//go:build wireinject
// +build wireinject

package di

import (
	"venue/config"
	"venue/infras/jwt"
	"venue/infras/kafka"
	"venue/infras/otel"
	"venue/infras/postgres"
	"venue/infras/redis"
	"venue/internal/events"
	"venue/permissions"
	"venue/shared/cache"
	"venue/transport/http"
	"venue/transport/http/middleware"
	"venue/transport/http/router"

	bookingRepository "venue/internal/domains/booking/repository"
	bookingService "venue/internal/domains/booking/service"
	sessionRepository "venue/internal/domains/session/repository"
	sessionService "venue/internal/domains/session/service"
	tableRepository "venue/internal/domains/table/repository"
	tableService "venue/internal/domains/table/service"
	timelineService "venue/internal/domains/timeline/service"
	zoneRepository "venue/internal/domains/zone/repository"
	zoneService "venue/internal/domains/zone/service"

	bookingHandler "venue/internal/handlers/booking"
	sessionHandler "venue/internal/handlers/session"
	tableHandler "venue/internal/handlers/table"
	timelineHandler "venue/internal/handlers/timeline"
	zoneHandler "venue/internal/handlers/zone"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
)

var zoneDomain = wire.NewSet(
	zoneRepository.New,
	zoneService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var sessionDomain = wire.NewSet(
	sessionRepository.New,
	sessionService.New,
)

var timelineDomain = wire.NewSet(
	timelineService.New,
)

var domains = wire.NewSet(
	zoneDomain,
	tableDomain,
	bookingDomain,
	sessionDomain,
	timelineDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	zoneHandler.New,
	tableHandler.New,
	bookingHandler.New,
	timelineHandler.New,
	sessionHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
