package domain

import "time"

// TypeKind is the inferred value type of a column.
type TypeKind string

const (
	TypeString  TypeKind = "string"
	TypeInteger TypeKind = "integer"
	TypeFloat   TypeKind = "float"
	TypeBoolean TypeKind = "boolean"
	TypeDate    TypeKind = "date"
	TypeEmail   TypeKind = "email"
	TypeEmpty   TypeKind = "empty"
)

// PatternKind identifies a recognizable value shape within a column.
type PatternKind string

const (
	PatternEmail       PatternKind = "email"
	PatternDate        PatternKind = "date"
	PatternUUID        PatternKind = "uuid"
	PatternPhone       PatternKind = "phone"
	PatternNumericText PatternKind = "numeric_text"
)

// CaseKind is the dominant casing convention of a text column.
type CaseKind string

const (
	CaseUpper CaseKind = "upper"
	CaseLower CaseKind = "lower"
	CaseTitle CaseKind = "title"
	CaseMixed CaseKind = "mixed"
	CaseNone  CaseKind = "none"
)

// ColumnProfile describes a single column of an analyzed dataset.
type ColumnProfile struct {
	Name          string        `json:"name" yaml:"name"`
	Position      int           `json:"position" yaml:"position"`
	Type          TypeKind      `json:"type" yaml:"type"`
	Patterns      []PatternKind `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Case          CaseKind      `json:"case,omitempty" yaml:"case,omitempty"`
	DateLayout    string        `json:"date_layout,omitempty" yaml:"date_layout,omitempty"`
	NullRatio     float64       `json:"null_ratio" yaml:"null_ratio"`
	DistinctCount int           `json:"distinct_count" yaml:"distinct_count"`
	Categorical   bool          `json:"categorical" yaml:"categorical"`
	Categories    []string      `json:"categories,omitempty" yaml:"categories,omitempty"`
	Samples       []string      `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// HasPattern reports whether the profile detected the given pattern.
func (p ColumnProfile) HasPattern(kind PatternKind) bool {
	for _, pat := range p.Patterns {
		if pat == kind {
			return true
		}
	}
	return false
}

// AnalysisReport is the result of analyzing one dataset.
type AnalysisReport struct {
	ID          string          `json:"id" yaml:"id"`
	Dataset     string          `json:"dataset" yaml:"dataset"`
	SourcePath  string          `json:"source_path,omitempty" yaml:"source_path,omitempty"`
	RowCount    int             `json:"row_count" yaml:"row_count"`
	ColumnCount int             `json:"column_count" yaml:"column_count"`
	Columns     []ColumnProfile `json:"columns" yaml:"columns"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
}

// Column returns the profile for the named column, if present.
func (r *AnalysisReport) Column(name string) (ColumnProfile, bool) {
	for _, col := range r.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnProfile{}, false
}
