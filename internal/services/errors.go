package services

import "errors"

// Service errors
var (
	// File errors
	ErrNoFilesFound    = errors.New("no files found")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileType = errors.New("invalid file type")

	// Operation errors
	ErrOperationNotFound = errors.New("operation not found")
	ErrInvalidStep       = errors.New("invalid operation step")

	// General errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrOperationTimeout = errors.New("operation timed out")
)
