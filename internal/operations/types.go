package operations

import (
	"time"
)

// operation step identifiers
const (
	StepIDAnalyze = "analyze"
	StepIDSuggest = "suggest"
	StepIDApply   = "apply"
)

// operation step names
const (
	StepNameAnalyze = "Schema Analysis"
	StepNameSuggest = "Mapping Suggestion"
	StepNameApply   = "Transform Application"
)

// Context keys for operation state
const (
	ContextKeySourcePath = "source_path"
	ContextKeyTargetPath = "target_path"
	ContextKeyRulesPath  = "rules_path"
	ContextKeyOutputPath = "output_path"
	ContextKeyReportPath = "report_path"
	ContextKeyPlanPath   = "plan_path"
	ContextKeyReport     = "analysis_report"
	ContextKeyPlan       = "mapping_plan"
	ContextKeyRowCount   = "row_count"
)

// WebSocket event types - using frontend format
const (
	EventTypeOperationStatus   = "operation:status"
	EventTypeOperationProgress = "operation:progress"
	EventTypeOperationComplete = "operation:complete"
	EventTypeOperationError    = "operation:error"
)

// Default timeouts
const (
	DefaultStepTimeout    = 5 * time.Minute
	DefaultAnalyzeTimeout = 5 * time.Minute
	DefaultSuggestTimeout = 10 * time.Minute
	DefaultApplyTimeout   = 10 * time.Minute
)

// OperationRequest represents a request to execute an operation
type OperationRequest struct {
	ID         string                 `json:"id"`
	Step       string                 `json:"step,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// OperationResponse represents the response from an operation execution
type OperationResponse struct {
	ID       string                `json:"id"`
	Status   OperationStatusValue  `json:"status"`
	Duration time.Duration         `json:"duration"`
	Steps    map[string]*StepState `json:"steps"`
	Error    string                `json:"error,omitempty"`
}

// ProgressUpdate represents a progress update from a step
type ProgressUpdate struct {
	StepID   string                 `json:"step_id"`
	Progress float64                `json:"progress"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
