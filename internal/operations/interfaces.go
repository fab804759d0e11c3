package operations

// WebSocketHub interface for sending WebSocket messages
type WebSocketHub interface {
	BroadcastUpdate(eventType, step, status string, metadata interface{})
}

// noopHub is used when no hub is wired, such as in CLI runs.
type noopHub struct{}

func (noopHub) BroadcastUpdate(eventType, step, status string, metadata interface{}) {}
