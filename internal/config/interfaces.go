package config

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/connector_mock.go -package=mock

// Backend is an open connection to the persistence backend. The manager
// treats it as opaque; callers that need the concrete client type-assert
// to the implementation returned by their Connector.
type Backend interface {
	// Close releases the underlying client.
	Close() error
}

// Connector opens a Backend for the given persistence settings.
type Connector interface {
	// Connect is only called when cfg.Enabled() is true.
	Connect(ctx context.Context, cfg PersistenceConfig) (Backend, error)
}
