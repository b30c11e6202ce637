package storage

import "context"

// WebSocketManager defines the interface for storing and retrieving WebSocket
// connection ids. Connections are keyed to the account that opened them so
// pushes can be targeted; an empty account id marks an anonymous listener.
type WebSocketManager interface {
	AddConnection(ctx context.Context, connectionID, accountID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
	GetConnectionsForAccount(ctx context.Context, accountID string) ([]string, error)
}
