package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Divis007/data-mapping/internal/operations"
)

// OperationsService exposes operation execution and inspection to the
// transport layer.
type OperationsService struct {
	manager *operations.Manager
	logger  *slog.Logger
}

// NewOperationsService creates a new operations service
func NewOperationsService(manager *operations.Manager, logger *slog.Logger) *OperationsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OperationsService{
		manager: manager,
		logger:  logger.With(slog.String("service", "operations")),
	}
}

// Execute runs an operation and returns its final state
func (s *OperationsService) Execute(ctx context.Context, req operations.OperationRequest) (*operations.OperationResponse, error) {
	if req.Step != "" {
		if _, err := s.manager.GetRegistry().Get(req.Step); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStep, req.Step)
		}
	}
	return s.manager.Execute(ctx, req)
}

// Get returns a snapshot of an operation by ID
func (s *OperationsService) Get(ctx context.Context, id string) (*operations.OperationState, error) {
	state, ok := s.manager.GetOperation(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}
	return state, nil
}

// List returns snapshots of all known operations
func (s *OperationsService) List(ctx context.Context) []*operations.OperationState {
	return s.manager.ListOperations()
}
