// Package exporter writes transformed datasets and analysis artifacts to
// disk.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// ExcelWriter: Writes datasets to xlsx workbooks through a streaming
// writer so large exports keep a flat memory profile.
//
// ReportWriter: Serializes analysis reports and mapping plans as JSON or
// YAML, chosen by file extension.
//
// Example usage:
//
//	csvWriter := exporter.NewCSVWriter(paths)
//	err := csvWriter.WriteDataset("migrated_customers.csv", dataset)
//
//	reportWriter := exporter.NewReportWriter()
//	err = reportWriter.WriteMappingPlan("plan.yaml", plan)
package exporter
