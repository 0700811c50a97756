package importer

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/codimuz/Nova-pasta-sub000/internal/platform/httpx"
	"github.com/codimuz/Nova-pasta-sub000/internal/progress"
)

// Handler accepts catalog files over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	maxBytes int64
}

// NewHandler constructs Handler.
func NewHandler(logger *slog.Logger, service *Service, maxBytes int64) *Handler {
	return &Handler{logger: logger, service: service, maxBytes: maxBytes}
}

// MountRoutes attaches import routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.run)
	r.Get("/", h.listRuns)
}

// run executes an import synchronously. The file arrives either as multipart
// form field "file" or as the raw request body.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	fileName := "upload.txt"
	var content []byte
	var err error

	if file, header, ferr := r.FormFile("file"); ferr == nil {
		defer file.Close()
		fileName = header.Filename
		content, err = io.ReadAll(file)
	} else {
		content, err = io.ReadAll(r.Body)
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.RespondError(w, httpx.ErrTooLarge)
			return
		}
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unable to read source file")
		return
	}

	onProgress := progress.Func(func(u progress.Update) {
		h.logger.Debug("import progress",
			slog.String("status", u.Status),
			slog.Int("processed", u.ProcessedLines),
			slog.Int("total", u.TotalLines))
	})

	result, err := h.service.Import(r.Context(), Input{
		FileName:   fileName,
		Content:    string(content),
		OnProgress: onProgress,
	})
	if err != nil {
		h.logger.Error("import failed", slog.String("file", fileName), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Import Failed",
			"the batch was rolled back; no partial state was applied")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.Error("list import runs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"runs": runs})
}
