package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/atere/internal/config"
)

func writeKeyFile(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, serviceAccountFile)
	require.NoError(t, os.WriteFile(p, []byte(`{"type":"service_account"}`), 0o600))
	return p
}

func TestDefaultCredentialPaths_Order(t *testing.T) {
	paths := DefaultCredentialPaths()

	require.GreaterOrEqual(t, len(paths), 2)
	assert.Equal(t, "./service-account-key.json", paths[0])
	assert.Equal(t, "/etc/atere/service-account-key.json", paths[len(paths)-1])

	if dir, err := os.UserConfigDir(); err == nil {
		require.Len(t, paths, 3)
		assert.Equal(t, filepath.Join(dir, "atere", "service-account-key.json"), paths[1])
	}
}

func TestFindCredentialsFile(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "first", serviceAccountFile)
	second := writeKeyFile(t, filepath.Join(root, "second"))
	third := writeKeyFile(t, filepath.Join(root, "third"))

	tests := []struct {
		name   string
		paths  []string
		want   string
		wantOK bool
	}{
		{"first existing wins", []string{first, second, third}, second, true},
		{"order is respected", []string{third, second}, third, true},
		{"none exist", []string{first, filepath.Join(root, "nope.json")}, "", false},
		{"no paths", nil, "", false},
		{"directory is skipped", []string{filepath.Join(root, "second"), third}, third, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findCredentialsFile(tt.paths)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCredentials(t *testing.T) {
	key := writeKeyFile(t, t.TempDir())
	missing := filepath.Join(t.TempDir(), serviceAccountFile)

	t.Run("emulator ignores key files", func(t *testing.T) {
		cfg := config.PersistenceConfig{ProjectID: "p", UseEmulator: true}
		creds := resolveCredentials(cfg, []string{key})
		assert.Equal(t, SourceEmulator, creds.Source)
		assert.Empty(t, creds.Path)
		assert.Len(t, creds.options(), 1)
	})

	t.Run("key file found", func(t *testing.T) {
		cfg := config.PersistenceConfig{ProjectID: "p"}
		creds := resolveCredentials(cfg, []string{missing, key})
		assert.Equal(t, SourceFile, creds.Source)
		assert.Equal(t, key, creds.Path)
		assert.Len(t, creds.options(), 1)
	})

	t.Run("falls back to application default", func(t *testing.T) {
		cfg := config.PersistenceConfig{ProjectID: "p"}
		creds := resolveCredentials(cfg, []string{missing})
		assert.Equal(t, SourceDefault, creds.Source)
		assert.Nil(t, creds.options())
	})
}
