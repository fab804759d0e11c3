package transform

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

func newTestEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func employeeDataset() *domain.Dataset {
	ds := domain.NewDataset("employees", []string{"name", "email", "age"})
	ds.AppendRow([]string{"alice johnson", "alice@acme.com", "28"})
	ds.AppendRow([]string{"bob smith", "bob@globex.io", "41"})
	ds.AppendRow([]string{"carol white", "carol@initech.net", "56"})
	return ds
}

func TestEngine_Apply(t *testing.T) {
	rules := []domain.MappingRule{
		{SourceField: "name", TargetField: "FULL_NAME", Transform: domain.TransformUppercase},
		{SourceField: "email", TargetField: "username", Transform: domain.TransformBeforeAt},
		{SourceField: "email", TargetField: "domain", Transform: domain.TransformExtractDomain},
		{SourceField: "age", TargetField: "age_group", Transform: domain.TransformAgeCategory},
	}

	out, err := newTestEngine().Apply(context.Background(), employeeDataset(), rules)
	require.NoError(t, err)

	assert.Equal(t, []string{"FULL_NAME", "username", "domain", "age_group"}, out.Columns)
	require.Equal(t, 3, out.RowCount())

	assert.Equal(t, []string{"ALICE JOHNSON", "alice", "acme.com", "Young"}, out.Rows[0])
	assert.Equal(t, []string{"BOB SMITH", "bob", "globex.io", "Middle"}, out.Rows[1])
	assert.Equal(t, []string{"CAROL WHITE", "carol", "initech.net", "Senior"}, out.Rows[2])
}

func TestEngine_Apply_MissingSourceColumn(t *testing.T) {
	rules := []domain.MappingRule{
		{SourceField: "salary", TargetField: "pay", Transform: domain.TransformDirect},
	}

	_, err := newTestEngine().Apply(context.Background(), employeeDataset(), rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salary")
}

func TestEngine_Apply_UnknownTransform(t *testing.T) {
	rules := []domain.MappingRule{
		{SourceField: "name", TargetField: "x", Transform: "frobnicate"},
	}

	_, err := newTestEngine().Apply(context.Background(), employeeDataset(), rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestEngine_Apply_NoRules(t *testing.T) {
	_, err := newTestEngine().Apply(context.Background(), employeeDataset(), nil)
	require.Error(t, err)
}

func TestEngine_Apply_RowErrorIncludesPosition(t *testing.T) {
	ds := domain.NewDataset("d", []string{"age"})
	ds.AppendRow([]string{"30"})
	ds.AppendRow([]string{"not-a-number"})

	rules := []domain.MappingRule{
		{SourceField: "age", TargetField: "group", Transform: domain.TransformAgeCategory},
	}

	_, err := newTestEngine().Apply(context.Background(), ds, rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestEngine_Apply_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rules := []domain.MappingRule{
		{SourceField: "name", TargetField: "n", Transform: domain.TransformDirect},
	}
	_, err := newTestEngine().Apply(ctx, employeeDataset(), rules)
	require.Error(t, err)
}
