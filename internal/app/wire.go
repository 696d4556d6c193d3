//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	"courier-tracking/internal/handlers/rest/admin_login_post"
	"courier-tracking/internal/handlers/rest/profile_put"
	"courier-tracking/internal/handlers/rest/shipment_create_post"
	"courier-tracking/internal/handlers/rest/shipment_delete"
	"courier-tracking/internal/handlers/rest/shipment_put"
	"courier-tracking/internal/handlers/rest/shipments_get"
	"courier-tracking/internal/handlers/rest/track_get"
	"courier-tracking/internal/handlers/rest/tracking_update_post"
	"courier-tracking/internal/handlers/tasks/overdue_shipments"
	"courier-tracking/internal/lifecycle"
	"courier-tracking/internal/pkg/cache"
	"courier-tracking/internal/pkg/config"
	"courier-tracking/internal/pkg/factory/session_token"
	"courier-tracking/internal/pkg/factory/shipment_event"
	"courier-tracking/internal/pkg/factory/tracking_id"
	"courier-tracking/internal/pkg/middlewares/auth"
	"courier-tracking/internal/pkg/password"
	adminRepo "courier-tracking/internal/repository/admin"
	sessionRepo "courier-tracking/internal/repository/session"
	shipmentRepo "courier-tracking/internal/repository/shipment"
	adminService "courier-tracking/internal/service/admin"
	shipmentService "courier-tracking/internal/service/shipment"
	"courier-tracking/pkg/background"
	"courier-tracking/pkg/logger"
	"courier-tracking/pkg/querier"
	"courier-tracking/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	OverdueScanInterval time.Duration
)

type Application struct {
	ServiceShipment   ServiceShipment
	ServiceAdmin      ServiceAdmin
	BackgroundWorkers *background.Worker
}

type ServiceShipment interface {
	track_get.Service
	shipment_create_post.Service
	shipments_get.Service
	shipment_put.Service
	shipment_delete.Service
	tracking_update_post.Service
}

type ServiceAdmin interface {
	admin_login_post.Service
	profile_put.Service
	auth.Authenticator
	EnsureBootstrapAdmin(ctx context.Context, email, password string) error
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redis *cache.RedisAdapter,
	publisher shipmentService.Publisher,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideOverdueScanInterval,
		provideTransitionPolicy,
		providePasswordHasher,

		provideShipmentRepository,
		provideAdminRepository,
		provideSessionRepository,

		tracking_id.New,
		shipment_event.New,
		session_token.New,

		provideServiceShipment,
		provideServiceAdmin,

		provideOverdueShipmentsTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceShipment), new(*shipmentService.Shipment)),
		wire.Bind(new(ServiceAdmin), new(*adminService.Admin)),

		wire.Bind(new(shipmentService.Repository), new(*shipmentRepo.Repository)),
		wire.Bind(new(shipmentService.TxManager), new(*tx.Manager)),
		wire.Bind(new(shipmentService.Cache), new(*cache.RedisAdapter)),
		wire.Bind(new(shipmentService.TrackingIDFactory), new(*tracking_id.TrackingIDFactory)),
		wire.Bind(new(shipmentService.EventFactory), new(*shipment_event.EventFactory)),

		wire.Bind(new(adminService.Repository), new(*adminRepo.Repository)),
		wire.Bind(new(adminService.SessionRepository), new(*sessionRepo.Repository)),
		wire.Bind(new(adminService.PasswordHasher), new(*password.BcryptHasher)),
		wire.Bind(new(adminService.TokenFactory), new(*session_token.TokenFactory)),
		wire.Bind(new(adminService.TxManager), new(*tx.Manager)),

		wire.Bind(new(overdue_shipments.Service), new(*shipmentService.Shipment)),
	)
	return &Application{}, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideShipmentRepository(querier *querier.Querier) *shipmentRepo.Repository {
	return shipmentRepo.New(querier)
}

func provideAdminRepository(querier *querier.Querier) *adminRepo.Repository {
	return adminRepo.New(querier)
}

func provideSessionRepository(redis *cache.RedisAdapter) *sessionRepo.Repository {
	return sessionRepo.New(redis)
}

func providePasswordHasher() *password.BcryptHasher {
	return password.New(0)
}

func provideTransitionPolicy(cfg *config.Config) (lifecycle.Policy, error) {
	return lifecycle.PolicyByName(cfg.Shipments.TransitionPolicy)
}

func provideServiceShipment(
	log logger.Logger,
	repository shipmentService.Repository,
	txManager shipmentService.TxManager,
	publisher shipmentService.Publisher,
	trackCache shipmentService.Cache,
	trackingIDs shipmentService.TrackingIDFactory,
	events shipmentService.EventFactory,
	policy lifecycle.Policy,
	cfg *config.Config,
) *shipmentService.Shipment {
	return shipmentService.New(
		log,
		repository,
		txManager,
		publisher,
		trackCache,
		trackingIDs,
		events,
		policy,
		cfg.Shipments.TrackCacheTTL,
	)
}

func provideServiceAdmin(
	repository adminService.Repository,
	sessions adminService.SessionRepository,
	hasher adminService.PasswordHasher,
	tokens adminService.TokenFactory,
	txManager adminService.TxManager,
	cfg *config.Config,
) *adminService.Admin {
	return adminService.New(repository, sessions, hasher, tokens, txManager, cfg.Admin.SessionTTL)
}

func provideOverdueScanInterval(cfg *config.Config) OverdueScanInterval {
	return OverdueScanInterval(cfg.Tasks.OverdueScanInterval)
}

func provideOverdueShipmentsTask(
	log logger.Logger,
	service overdue_shipments.Service,
	interval OverdueScanInterval,
) *overdue_shipments.OverdueShipments {
	return overdue_shipments.New(log, service, time.Duration(interval))
}

func provideTaskList(
	overdueTask *overdue_shipments.OverdueShipments,
) []background.Task {
	return []background.Task{
		overdueTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
