package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/Divis007/data-mapping/internal/errors"
)

// AnalysisHandler handles schema analysis HTTP requests with RFC 7807
// compliant errors.
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Analyze)
	r.Get("/files", h.ListFiles)

	return r
}

// AnalyzeRequest is the body of POST /api/analysis
type AnalyzeRequest struct {
	SourcePath string `json:"source_path" validate:"required"`
	ReportPath string `json:"report_path,omitempty"`
}

// Analyze handles POST /api/analysis
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("source_path", "Source path is required"))
		return
	}

	report, err := h.service.AnalyzeFile(r.Context(), req.SourcePath, req.ReportPath)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, report)
}

// ListFiles handles GET /api/analysis/files
func (h *AnalysisHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.ListInputFiles(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"files": found,
		"count": len(found),
	})
}
