package operations

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager orchestrates operation execution
type Manager struct {
	registry    *Registry
	hub         WebSocketHub
	logger      *slog.Logger
	stepTimeout time.Duration

	// Active operations
	mu         sync.RWMutex
	operations map[string]*OperationState
}

// NewManager creates a new operation manager with dependency injection
func NewManager(hub WebSocketHub, registry *Registry, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if hub == nil {
		hub = noopHub{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		registry:    registry,
		hub:         hub,
		logger:      logger.With(slog.String("component", "operations_manager")),
		stepTimeout: DefaultStepTimeout,
		operations:  make(map[string]*OperationState),
	}
}

// RegisterStep registers a step with the manager
func (m *Manager) RegisterStep(step Step) error {
	return m.registry.Register(step)
}

// SetStepTimeout overrides the per-step timeout
func (m *Manager) SetStepTimeout(d time.Duration) {
	if d > 0 {
		m.stepTimeout = d
	}
}

// GetRegistry returns the registry for accessing registered steps
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// Execute runs an operation with the given request. Steps run sequentially
// in registration order, or a single requested step when the request names
// one. The first failing step aborts the operation.
func (m *Manager) Execute(ctx context.Context, req OperationRequest) (*OperationResponse, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	state := NewOperationState(req.ID)
	for k, v := range req.Parameters {
		state.SetConfig(k, v)
	}

	m.storeOperation(state)

	steps, err := m.selectSteps(req)
	if err != nil {
		state.Fail(err)
		m.broadcastStatus(state)
		return m.createResponse(state), err
	}

	m.logger.InfoContext(ctx, "operation starting",
		slog.String("operation_id", req.ID),
		slog.Int("steps", len(steps)))

	state.Start()
	m.broadcastStatus(state)

	for _, step := range steps {
		stepState := NewStepState(step.ID(), step.Name())
		state.SetStep(step.ID(), stepState)
	}

	for _, step := range steps {
		if err := m.executeStep(ctx, step, state); err != nil {
			state.Fail(err)
			m.broadcastStatus(state)
			m.logger.ErrorContext(ctx, "operation failed",
				slog.String("operation_id", req.ID),
				slog.String("step_id", step.ID()),
				slog.String("error", err.Error()))
			return m.createResponse(state), err
		}
	}

	state.Complete()
	m.broadcastStatus(state)
	m.logger.InfoContext(ctx, "operation completed",
		slog.String("operation_id", req.ID),
		slog.Duration("duration", state.Duration()))

	return m.createResponse(state), nil
}

// GetOperation returns a snapshot of an active or finished operation
func (m *Manager) GetOperation(id string) (*OperationState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.operations[id]
	if !ok {
		return nil, false
	}
	return state.Snapshot(), true
}

// ListOperations returns snapshots of all known operations
func (m *Manager) ListOperations() []*OperationState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]*OperationState, 0, len(m.operations))
	for _, state := range m.operations {
		states = append(states, state.Snapshot())
	}
	return states
}

func (m *Manager) selectSteps(req OperationRequest) ([]Step, error) {
	if req.Step != "" {
		step, err := m.registry.Get(req.Step)
		if err != nil {
			return nil, err
		}
		return []Step{step}, nil
	}

	steps := m.registry.All()
	if len(steps) == 0 {
		return nil, fmt.Errorf("no steps registered")
	}
	return steps, nil
}

func (m *Manager) executeStep(ctx context.Context, step Step, state *OperationState) error {
	stepState := state.GetStep(step.ID())

	if err := step.Validate(state); err != nil {
		stepState.Fail(err)
		m.broadcastStep(state.ID, stepState)
		return fmt.Errorf("step %s validation failed: %w", step.ID(), err)
	}

	stepCtx, cancel := context.WithTimeout(ctx, m.stepTimeout)
	defer cancel()

	stepState.Start()
	m.broadcastStep(state.ID, stepState)
	m.logger.InfoContext(ctx, "step starting",
		slog.String("operation_id", state.ID),
		slog.String("step_id", step.ID()))

	if err := step.Execute(stepCtx, state); err != nil {
		stepState.Fail(err)
		m.broadcastStep(state.ID, stepState)
		return fmt.Errorf("step %s failed: %w", step.ID(), err)
	}

	stepState.Complete()
	m.broadcastStep(state.ID, stepState)
	m.logger.InfoContext(ctx, "step completed",
		slog.String("operation_id", state.ID),
		slog.String("step_id", step.ID()),
		slog.Duration("duration", stepState.Duration()))

	return nil
}

func (m *Manager) storeOperation(state *OperationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations[state.ID] = state
}

func (m *Manager) broadcastStatus(state *OperationState) {
	eventType := EventTypeOperationStatus
	switch state.Status {
	case OperationStatusCompleted:
		eventType = EventTypeOperationComplete
	case OperationStatusFailed:
		eventType = EventTypeOperationError
	}
	m.hub.BroadcastUpdate(eventType, "", string(state.Status), map[string]interface{}{
		"operation_id": state.ID,
	})
}

func (m *Manager) broadcastStep(operationID string, stepState *StepState) {
	m.hub.BroadcastUpdate(EventTypeOperationProgress, stepState.ID, string(stepState.Status), ProgressUpdate{
		StepID:   stepState.ID,
		Progress: stepState.Progress,
		Message:  stepState.Message,
		Metadata: map[string]interface{}{
			"operation_id": operationID,
		},
	})
}

func (m *Manager) createResponse(state *OperationState) *OperationResponse {
	snap := state.Snapshot()
	resp := &OperationResponse{
		ID:       snap.ID,
		Status:   snap.Status,
		Duration: snap.Duration(),
		Steps:    snap.Steps,
	}
	if snap.Error != nil {
		resp.Error = snap.Error.Error()
	}
	return resp
}
