// Package files provides file system operations and discovery utilities
// for spreadsheet mapping workflows.
//
// This package contains two main components:
//
// Discovery: Provides file discovery operations such as finding
// spreadsheet files, CSV files, and files matching specific patterns. It
// also includes utilities for filtering files by date range and finding
// the latest file.
//
// Manager: Provides basic file management operations such as copying,
// moving, deleting files, and ensuring directories exist. Relative paths
// resolve against the configured directory layout to keep callers
// portable.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	inputs, err := discovery.FindSpreadsheetFiles("input")
//
//	manager := files.NewManager(paths)
//	if manager.FileExists("input/customers.xlsx") {
//	    // Process file
//	}
package files
