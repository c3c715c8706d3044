package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/atere/internal/config"
	"github.com/MKhiriev/atere/internal/logger"
)

func TestConnect_NoProjectID(t *testing.T) {
	c := NewFirestoreConnector(logger.Nop())

	backend, err := c.Connect(context.Background(), config.PersistenceConfig{})

	assert.Nil(t, backend)
	assert.ErrorIs(t, err, ErrNoProjectID)
}

func TestConnect_EmulatorWithoutHost(t *testing.T) {
	c := NewFirestoreConnector(logger.Nop())

	backend, err := c.Connect(context.Background(), config.PersistenceConfig{
		ProjectID:   "atere-test",
		UseEmulator: true,
	})

	assert.Nil(t, backend)
	assert.ErrorIs(t, err, ErrNoEmulatorHost)
}

// TestConnect_Emulator verifies that the emulator path needs neither
// credentials nor a reachable emulator: the gRPC connection is lazy.
func TestConnect_Emulator(t *testing.T) {
	t.Setenv(EmulatorHostEnv, "")

	c := NewFirestoreConnector(logger.Nop(), WithCredentialPaths())
	cfg := config.DefaultRootConfig().Firebase
	cfg.ProjectID = "atere-test"
	cfg.UseEmulator = true
	cfg.EmulatorHost = "127.0.0.1:18080"

	backend, err := c.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	assert.Equal(t, "127.0.0.1:18080", os.Getenv(EmulatorHostEnv))

	fb, ok := backend.(*Backend)
	require.True(t, ok)
	assert.Equal(t, SourceEmulator, fb.Source())
	require.NotNil(t, fb.Client())
	assert.Equal(t, config.DefaultStrategiesCollection, fb.Strategies().ID)
	assert.Equal(t, config.DefaultMarketDataCollection, fb.MarketData().ID)
	assert.Equal(t, config.DefaultPerformanceCollection, fb.Performance().ID)
}

func TestNewFirestoreConnector_DefaultPaths(t *testing.T) {
	c := NewFirestoreConnector(logger.Nop())
	assert.Equal(t, DefaultCredentialPaths(), c.credentialPaths)

	c = NewFirestoreConnector(logger.Nop(), WithCredentialPaths("/tmp/key.json"))
	assert.Equal(t, []string{"/tmp/key.json"}, c.credentialPaths)
}

// TestManagerLoad_NoCredentialsAnywhere verifies that loading with a project
// id but no service-account key and no ambient credentials still returns a
// config, without a backend.
func TestManagerLoad_NoCredentialsAnywhere(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("HOME", "")
	t.Setenv(EmulatorHostEnv, "")

	connector := NewFirestoreConnector(logger.Nop(),
		WithCredentialPaths(filepath.Join(dir, "missing", "service-account-key.json")))
	manager := config.NewManager(logger.Nop(),
		config.WithEnvironment(map[string]string{
			"FIREBASE_PROJECT_ID": "atere-test",
			"DATA_DIRECTORY":      filepath.Join(dir, "data"),
		}),
		config.WithConnector(connector),
	)

	cfg := manager.Load(context.Background())
	t.Cleanup(func() { _ = manager.Close() })

	require.NotNil(t, cfg)
	assert.Equal(t, "atere-test", cfg.Firebase.ProjectID)
	assert.DirExists(t, filepath.Join(dir, "data"))

	_, ok := manager.Backend()
	assert.False(t, ok)
}
