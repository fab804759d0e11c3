// Package mapping reverse-engineers field mapping rules between two
// spreadsheet exports of the same records. It pairs columns by header
// similarity and row evidence, deduces the transform that explains the
// target values, and emits a scored mapping plan.
package mapping
