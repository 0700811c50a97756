package exporter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codimuz/Nova-pasta-sub000/internal/platform/httpx"
)

// Enqueuer hands the export off to the background worker instead of running
// it on the request goroutine.
type Enqueuer interface {
	EnqueueExportPending(ctx context.Context) error
}

// Handler triggers export runs over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enqueuer Enqueuer
}

// NewHandler constructs Handler. With a nil enqueuer the export runs inline.
func NewHandler(logger *slog.Logger, service *Service, enqueuer Enqueuer) *Handler {
	return &Handler{logger: logger, service: service, enqueuer: enqueuer}
}

// MountRoutes attaches export routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.run)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	if h.enqueuer != nil {
		if err := h.enqueuer.EnqueueExportPending(r.Context()); err != nil {
			h.logger.Error("enqueue export", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
		return
	}

	result, err := h.service.ExportPending(r.Context())
	if err != nil {
		h.logger.Error("export failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
