package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/Divis007/data-mapping/internal/errors"
	"github.com/Divis007/data-mapping/internal/operations"
	"github.com/Divis007/data-mapping/internal/services"
)

// OperationsHandler handles operation execution HTTP requests
type OperationsHandler struct {
	service      OperationsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewOperationsHandler creates a new operations handler
func NewOperationsHandler(service OperationsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *OperationsHandler {
	return &OperationsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "operations_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the operations routes
func (h *OperationsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Execute)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	return r
}

// Execute handles POST /api/operations
func (h *OperationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req operations.OperationRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	resp, err := h.service.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStep) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("step", err.Error()))
			return
		}
		// The response still describes the failed operation; surface both.
		h.logger.ErrorContext(r.Context(), "operation failed",
			slog.String("error", err.Error()))
		if resp != nil {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, resp)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// Get handles GET /api/operations/{id}
func (h *OperationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOperationNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.NotFoundError("operation"))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, state)
}

// List handles GET /api/operations
func (h *OperationsHandler) List(w http.ResponseWriter, r *http.Request) {
	states := h.service.List(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"operations": states,
		"count":      len(states),
	})
}
