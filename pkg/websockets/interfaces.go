package websockets

import (
	"context"
)

// ConnectionManager defines the interface for managing WebSocket connections.
// A connection belongs to the account that opened it; accountID may be empty
// for anonymous listeners, which only receive broadcasts.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID, accountID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// ConnectionLister resolves which connections a message should reach.
type ConnectionLister interface {
	GetAllConnections(ctx context.Context) ([]string, error)
	GetConnectionsForAccount(ctx context.Context, accountID string) ([]string, error)
}

// Publisher defines the interface for publishing messages to WebSocket clients.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
