package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mstore-labs/pim-backend/api/controllers"
	"github.com/mstore-labs/pim-backend/api/middleware"
	"github.com/mstore-labs/pim-backend/internal/status"
	"github.com/mstore-labs/pim-backend/internal/variants"
	"github.com/mstore-labs/pim-backend/pkg/config"
	"github.com/mstore-labs/pim-backend/pkg/db"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

// VariantBackend is what the variant session endpoints need from the
// persistence layer. The gorm applier satisfies it.
type VariantBackend interface {
	variants.Applier
	controllers.VariantLister
}

// ProductBackend is what the product endpoints need from the catalog.
// The catalog repository satisfies it.
type ProductBackend interface {
	controllers.ProductSource
	controllers.ProductIDLister
}

type Deps struct {
	Cfg      *config.Config
	Logg     *logger.Logger
	DBPinger db.Pinger
	// CachePinger is nil when the report cache is disabled.
	CachePinger db.Pinger

	StatusService  status.Service
	PolicyStore    controllers.PolicyStore
	Products       ProductBackend
	Sessions       *variants.Registry
	VariantBackend VariantBackend
	ShopVariants   controllers.ShopVariantLoader

	// MetricsHandler serves /metrics; nil disables the route.
	MetricsHandler http.Handler
}

func NewRouter(deps Deps) http.Handler {
	logg := deps.Logg
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.HealthLive(deps.Cfg))
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Cfg))
		r.Get("/ready", controllers.HealthReady(deps.Cfg, logg, deps.DBPinger, deps.CachePinger))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products/{productID}", func(r chi.Router) {
			r.Get("/status", controllers.ProductStatus(deps.StatusService, logg))
			r.Post("/status/invalidate", controllers.ProductStatusInvalidate(deps.StatusService, logg))
			r.Post("/variant-sessions", controllers.SessionOpen(deps.Sessions, deps.Products, logg))
			r.Get("/shops/{shopID}/variants", controllers.ShopVariantClassification(deps.ShopVariants, logg))
		})
		r.Post("/products/status", controllers.ProductStatusBatch(deps.StatusService, deps.Products, logg))

		r.Route("/settings/monitoring", func(r chi.Router) {
			r.Get("/", controllers.MonitoringPolicyGet(deps.PolicyStore, logg))
			r.Put("/", controllers.MonitoringPolicyUpdate(deps.PolicyStore, logg))
		})

		r.Route("/variant-sessions/{sessionID}", func(r chi.Router) {
			r.Get("/variants", controllers.SessionVariants(deps.Sessions, deps.VariantBackend, logg))
			r.Post("/creates", controllers.SessionStageCreate(deps.Sessions, logg))
			r.Patch("/variants/{ref}", controllers.SessionStageUpdate(deps.Sessions, logg))
			r.Delete("/variants/{ref}", controllers.SessionStageDelete(deps.Sessions, logg))
			r.Post("/variants/{ref}/undo", controllers.SessionUndo(deps.Sessions, logg))
			r.Post("/commit", controllers.SessionCommit(deps.Sessions, deps.VariantBackend, deps.StatusService, logg))
			r.Delete("/", controllers.SessionDiscard(deps.Sessions, logg))
		})
	})

	return r
}
