package router

import (
	"github.com/reciclaqui/backend/internal/application"
	"github.com/reciclaqui/backend/internal/application/eventhandler"
	"github.com/reciclaqui/backend/internal/container"
	"github.com/reciclaqui/backend/internal/domain/service"
	pginfra "github.com/reciclaqui/backend/internal/infrastructure/postgres"
	handlers "github.com/reciclaqui/backend/internal/interface/http"
	"github.com/reciclaqui/backend/internal/router/modules"
)

// InitModules constructs repositories, domain services, use-case
// services, and handlers in dependency order and registers the feature
// modules with the router registry. Event handlers are registered on the
// publisher here as well, so the registry is complete before the first
// request is served.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	publisher := container.GetPublisher()

	userRepo := pginfra.NewUserRepository(pool)
	collectionRepo := pginfra.NewCollectionRepository(pool)
	pointsRepo := pginfra.NewPointsRepository(pool)

	uow := pginfra.NewUnitOfWork(pool, publisher, logger)
	domainSvc := service.NewCollectionDomainService()

	// Side-effect consumers; ordered registration per event name.
	publisher.Register("CollectionAccepted", eventhandler.NewPointsLedgerHandler(pointsRepo, logger))
	publisher.Register("CollectionAccepted", eventhandler.NewCollectionIndexHandler(container.GetES(), cfg.ESCollectionsIndex, logger))
	publisher.Register("CollectionRejected", eventhandler.NewRejectionLogHandler(logger))
	publisher.Register("UserRegistered", eventhandler.NewWelcomeEmailHandler(container.GetRabbitPub(), logger))
	publisher.Register("PointsAdded", eventhandler.NewBalanceCacheHandler(container.GetRedis(), logger))
	publisher.Register("PointsRedeemed", eventhandler.NewBalanceCacheHandler(container.GetRedis(), logger))

	userSvc := application.NewUserService(userRepo, uow, container.GetJWT(), container.GetRedis(), container.GetGCS(), cfg.GCSBucket, logger)
	collectionSvc := application.NewCollectionService(collectionRepo, userRepo, domainSvc, uow, container.GetES(), cfg.ESCollectionsIndex, logger)
	pointsSvc := application.NewPointsService(pointsRepo)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure), container.GetJWT()))
	r.Add(modules.NewCollectionModule(handlers.NewCollectionHandler(collectionSvc, logger), container.GetJWT()))
	r.Add(modules.NewPointsModule(handlers.NewPointsHandler(pointsSvc, logger), container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
