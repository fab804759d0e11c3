package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/Divis007/data-mapping/internal/errors"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// MappingHandler handles mapping suggestion and transform application
// HTTP requests.
type MappingHandler struct {
	service      MappingServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewMappingHandler creates a new mapping handler
func NewMappingHandler(service MappingServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *MappingHandler {
	return &MappingHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "mapping_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the mapping routes
func (h *MappingHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/suggest", h.Suggest)
	r.Post("/apply", h.Apply)

	return r
}

// SuggestRequest is the body of POST /api/mappings/suggest
type SuggestRequest struct {
	SourcePath string `json:"source_path" validate:"required"`
	TargetPath string `json:"target_path" validate:"required"`
	PlanPath   string `json:"plan_path,omitempty"`
}

// Suggest handles POST /api/mappings/suggest
func (h *MappingHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "source_path and target_path are required"))
		return
	}

	plan, err := h.service.Suggest(r.Context(), req.SourcePath, req.TargetPath, req.PlanPath)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, plan)
}

// ApplyRequest is the body of POST /api/mappings/apply. Rules come either
// inline or from a rules file, not both.
type ApplyRequest struct {
	SourcePath string               `json:"source_path" validate:"required"`
	OutputPath string               `json:"output_path" validate:"required"`
	RulesPath  string               `json:"rules_path,omitempty"`
	Rules      []domain.MappingRule `json:"rules,omitempty"`
}

// Apply handles POST /api/mappings/apply
func (h *MappingHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "source_path and output_path are required"))
		return
	}
	if req.RulesPath == "" && len(req.Rules) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("rules", "Either rules_path or rules must be provided"))
		return
	}
	if req.RulesPath != "" && len(req.Rules) > 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("rules", "rules_path and rules are mutually exclusive"))
		return
	}

	var err error
	var result interface{}
	if req.RulesPath != "" {
		result, err = h.service.Apply(r.Context(), req.SourcePath, req.RulesPath, req.OutputPath)
	} else {
		result, err = h.service.ApplyRules(r.Context(), req.SourcePath, req.Rules, req.OutputPath)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}
