package wire

import (
	"context"
	"net/http"
	"time"

	"event-ticketing/internal/adaptor"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/cache"
	"event-ticketing/pkg/database"
	"event-ticketing/pkg/middleware"
	"event-ticketing/pkg/telemetry"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds repositories, services and handlers on top of db and deps.
// uploads, when set, is served under /uploads.
func Wiring(db database.PgxIface, deps usecase.Deps, uploads afero.Fs, config *utils.Config, logger *zap.Logger) *App {
	repo := repository.NewRepository(db, logger)
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, db, deps.Cache, uploads, config, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	db database.PgxIface,
	c cache.Cache,
	uploads afero.Fs,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics)
	r.Use(telemetry.RouteTag)

	wireAuth(r, handler.Auth, config, logger)
	wireCategory(r, handler.Category, config, logger)
	wireEvent(r, handler.Event, config, logger)
	wireTicket(r, handler.Ticket, config, logger)
	wireBanner(r, handler.Banner, config, logger)
	wireRegion(r, handler.Region)
	wireMedia(r, handler.Media, uploads, config, logger)
	wireOrder(r, handler.Order, config, logger)

	r.Get("/health", healthHandler(db, c, logger))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// healthHandler reports 500 when Postgres is unreachable. A failing cache
// is only logged since reads fall back to the database.
func healthHandler(db database.PgxIface, c cache.Cache, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check: database unreachable", zap.Error(err))
			utils.ResponseInternalError(w, "Database unreachable")
			return
		}
		if err := c.Ping(ctx); err != nil {
			logger.Warn("Health check: cache unreachable", zap.Error(err))
		}

		utils.ResponseSuccess(w, "OK", nil)
	}
}
