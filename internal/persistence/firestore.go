// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package persistence

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"

	"github.com/MKhiriev/atere/internal/config"
	"github.com/MKhiriev/atere/internal/logger"
)

// FirestoreConnector opens Firestore backends. It implements
// [config.Connector].
type FirestoreConnector struct {
	log             *logger.Logger
	credentialPaths []string
}

// ConnectorOption customizes a FirestoreConnector.
type ConnectorOption func(*FirestoreConnector)

// WithCredentialPaths replaces [DefaultCredentialPaths].
func WithCredentialPaths(paths ...string) ConnectorOption {
	return func(c *FirestoreConnector) {
		c.credentialPaths = paths
	}
}

// NewFirestoreConnector creates a connector that searches
// [DefaultCredentialPaths] for a service-account key.
func NewFirestoreConnector(log *logger.Logger, opts ...ConnectorOption) *FirestoreConnector {
	c := &FirestoreConnector{
		log:             log.WithComponent("persistence"),
		credentialPaths: DefaultCredentialPaths(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Connect creates a Firestore client for cfg.
//
// With UseEmulator set, FIRESTORE_EMULATOR_HOST is pointed at
// cfg.EmulatorHost and the client is unauthenticated. Otherwise the first
// service-account key found is used, falling back to application-default
// credentials.
func (c *FirestoreConnector) Connect(ctx context.Context, cfg config.PersistenceConfig) (config.Backend, error) {
	if !cfg.Enabled() {
		return nil, ErrNoProjectID
	}

	creds := resolveCredentials(cfg, c.credentialPaths)
	if creds.Source == SourceEmulator {
		if cfg.EmulatorHost == "" {
			return nil, ErrNoEmulatorHost
		}
		if err := os.Setenv(EmulatorHostEnv, cfg.EmulatorHost); err != nil {
			return nil, fmt.Errorf("error setting %s: %w", EmulatorHostEnv, err)
		}
	}

	c.log.Debug().
		Str("project_id", cfg.ProjectID).
		Str("credentials", string(creds.Source)).
		Str("path", creds.Path).
		Msg("connecting to firestore")

	client, err := firestore.NewClient(ctx, cfg.ProjectID, creds.options()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClientInit, err)
	}

	return &Backend{client: client, cfg: cfg, source: creds.Source}, nil
}

// Backend is an open Firestore connection together with the configured
// collection names. It implements [config.Backend].
type Backend struct {
	client *firestore.Client
	cfg    config.PersistenceConfig
	source CredentialSource
}

// Client returns the underlying Firestore client.
func (b *Backend) Client() *firestore.Client {
	return b.client
}

// Source reports which credentials the client was built with.
func (b *Backend) Source() CredentialSource {
	return b.source
}

func (b *Backend) Strategies() *firestore.CollectionRef {
	return b.client.Collection(b.cfg.StrategiesCollection)
}

func (b *Backend) MarketData() *firestore.CollectionRef {
	return b.client.Collection(b.cfg.MarketDataCollection)
}

func (b *Backend) Performance() *firestore.CollectionRef {
	return b.client.Collection(b.cfg.PerformanceCollection)
}

// Close closes the Firestore client.
func (b *Backend) Close() error {
	return b.client.Close()
}
