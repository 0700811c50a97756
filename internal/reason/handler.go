package reason

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codimuz/Nova-pasta-sub000/internal/platform/httpx"
)

// Handler serves the reason reference data.
type Handler struct {
	logger *slog.Logger
	repo   *Repository
}

// NewHandler constructs Handler.
func NewHandler(logger *slog.Logger, repo *Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes attaches reason routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	reasons, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list reasons", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"reasons": reasons})
}
