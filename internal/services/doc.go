// Package services holds the application service layer between the HTTP
// transport and the analysis, mapping and transform engines.
package services
