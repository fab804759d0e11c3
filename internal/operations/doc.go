// Package operations orchestrates multi-step mapping workflows. An
// operation runs analyze, suggest and apply steps sequentially, tracks
// per-step state, and broadcasts progress over WebSocket when a hub is
// wired in.
package operations
