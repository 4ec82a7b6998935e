package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithDefaults(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, "info", log.Config().Level)
}

func TestNewWithInvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "verbose"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"bad format", func(c *Config) { c.Format = "xml" }, true},
		{"bad output", func(c *Config) { c.Output = "syslog" }, true},
		{"file output without filename", func(c *Config) {
			c.Output = "file"
			c.File.Filename = ""
		}, true},
		{"file output with zero maxsize", func(c *Config) {
			c.Output = "file"
			c.File.MaxSize = 0
		}, true},
		{"console format ok", func(c *Config) { c.Format = "console" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestUserIDContext(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-1")
	assert.Equal(t, "user-1", GetUserID(ctx))
}

func TestGlobalLogger(t *testing.T) {
	require.NoError(t, InitGlobal(DefaultConfig()))
	assert.NotNil(t, L())
}

func TestNamedAndWith(t *testing.T) {
	log, err := New(DefaultConfig())
	require.NoError(t, err)

	named := log.Named("share")
	assert.NotNil(t, named)
	assert.Equal(t, log.Config(), named.Config())
}
