package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/codimuz/Nova-pasta-sub000/internal/entry"
	"github.com/codimuz/Nova-pasta-sub000/internal/exporter"
	"github.com/codimuz/Nova-pasta-sub000/internal/importer"
	"github.com/codimuz/Nova-pasta-sub000/internal/observability"
	"github.com/codimuz/Nova-pasta-sub000/internal/product"
	"github.com/codimuz/Nova-pasta-sub000/internal/reason"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	ProductHandler *product.Handler
	ReasonHandler  *reason.Handler
	EntryHandler   *entry.Handler
	ImportHandler  *importer.Handler
	ExportHandler  *exporter.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with the application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/products", params.ProductHandler.MountRoutes)
	r.Route("/reasons", params.ReasonHandler.MountRoutes)
	r.Route("/entries", params.EntryHandler.MountRoutes)
	r.Route("/imports", params.ImportHandler.MountRoutes)
	r.Route("/exports", params.ExportHandler.MountRoutes)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
