// Package analyze infers the structure of spreadsheet data: per-column value
// types, recognizable value patterns (emails, dates, identifiers), casing
// conventions and categorical columns. Its output feeds the mapping
// suggestion engine.
package analyze
