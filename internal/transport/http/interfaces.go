package http

import (
	"context"

	"github.com/Divis007/data-mapping/internal/files"
	"github.com/Divis007/data-mapping/internal/operations"
	"github.com/Divis007/data-mapping/internal/services"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the analysis operations used by handlers
type AnalysisServiceInterface interface {
	AnalyzeFile(ctx context.Context, path, reportPath string) (*domain.AnalysisReport, error)
	ListInputFiles(ctx context.Context) ([]files.FileInfo, error)
}

// MappingServiceInterface defines the mapping operations used by handlers
type MappingServiceInterface interface {
	Suggest(ctx context.Context, sourcePath, targetPath, planPath string) (*domain.MappingPlan, error)
	Apply(ctx context.Context, sourcePath, rulesPath, outputPath string) (*services.ApplyResult, error)
	ApplyRules(ctx context.Context, sourcePath string, rules []domain.MappingRule, outputPath string) (*services.ApplyResult, error)
}

// OperationsServiceInterface defines the operation orchestration used by handlers
type OperationsServiceInterface interface {
	Execute(ctx context.Context, req operations.OperationRequest) (*operations.OperationResponse, error)
	Get(ctx context.Context, id string) (*operations.OperationState, error)
	List(ctx context.Context) []*operations.OperationState
}

// HealthServiceInterface defines the health checks used by handlers
type HealthServiceInterface interface {
	Check(ctx context.Context) *services.HealthStatus
}
