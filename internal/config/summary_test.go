package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(not set)", MaskSecret(""))
	assert.Equal(t, "***", MaskSecret("abc"))
	assert.Equal(t, "****5678", MaskSecret("12345678"))
}

func TestWriteSummary(t *testing.T) {
	cfg := validConfig()
	cfg.Exchanges["binance"] = ExchangeConfig{
		Name:      "binance",
		APIKey:    "key-abcdef",
		APISecret: "secret-123456",
		Timeout:   Duration(DefaultExchangeTimeout),
		Sandbox:   true,
	}
	cfg.Firebase.ProjectID = "atere-prod"

	var buf bytes.Buffer
	cfg.WriteSummary(&buf)
	out := buf.String()

	assert.Contains(t, out, "ATERE CONFIGURATION")
	assert.Contains(t, out, "binance (sandbox)")
	assert.Contains(t, out, "cdef")
	assert.NotContains(t, out, "key-abcdef")
	assert.NotContains(t, out, "secret-123456")
	assert.Contains(t, out, "atere-prod")
	assert.Contains(t, out, "30s")
}
