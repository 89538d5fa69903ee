package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadConfig(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)

	return cfg
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

func writeFile(dir, name, content string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}
