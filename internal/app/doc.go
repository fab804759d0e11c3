// Package app assembles the web service: configuration, logging,
// telemetry, the analysis and mapping engines, the operation pipeline,
// the WebSocket hub, and the chi router with its middleware chain.
//
// The composition root is NewApplication. Binaries call Run, which
// starts the HTTP server and blocks until SIGINT or SIGTERM, then
// shuts everything down within the configured grace period.
package app
