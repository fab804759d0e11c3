// Package http contains the chi HTTP handlers for the mapping API. All
// error responses follow RFC 7807 problem details.
//
// Routes:
//
//	POST /api/analysis           profile a spreadsheet
//	GET  /api/analysis/files     list input spreadsheets
//	POST /api/mappings/suggest   reverse-engineer a mapping plan
//	POST /api/mappings/apply     apply mapping rules to a spreadsheet
//	POST /api/operations         run a multi-step operation
//	GET  /api/operations         list operations
//	GET  /api/operations/{id}    inspect an operation
//	GET  /api/health             health status
package http
