package repository_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_cart_storage.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// testStorageContract checks the behaviour every CartStorage adapter shares.
func testStorageContract(t *testing.T, storage port.CartStorage) {
	t.Helper()

	t.Run("load missing key: not found", func(t *testing.T) {
		_, err := storage.Load(t.Context(), randomKey())
		require.ErrorIs(t, err, port.ErrKeyNotFound)
	})

	t.Run("save then load: same payload", func(t *testing.T) {
		key := randomKey()
		payload := randomPayload()

		require.NoError(t, storage.Save(t.Context(), key, payload))

		loaded, err := storage.Load(t.Context(), key)
		require.NoError(t, err)
		assert.JSONEq(t, string(payload), string(loaded))
	})

	t.Run("save twice: last write wins", func(t *testing.T) {
		key := randomKey()
		second := randomPayload()

		require.NoError(t, storage.Save(t.Context(), key, randomPayload()))
		require.NoError(t, storage.Save(t.Context(), key, second))

		loaded, err := storage.Load(t.Context(), key)
		require.NoError(t, err)
		assert.JSONEq(t, string(second), string(loaded))
	})

	t.Run("delete existing key: deleted", func(t *testing.T) {
		key := randomKey()
		require.NoError(t, storage.Save(t.Context(), key, randomPayload()))

		deleted, err := storage.Delete(t.Context(), key)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = storage.Load(t.Context(), key)
		require.ErrorIs(t, err, port.ErrKeyNotFound)
	})

	t.Run("delete missing key: not deleted", func(t *testing.T) {
		deleted, err := storage.Delete(t.Context(), randomKey())
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("empty key: error", func(t *testing.T) {
		_, err := storage.Load(t.Context(), "")
		require.EqualError(t, err, "key is empty")

		err = storage.Save(t.Context(), "", randomPayload())
		require.EqualError(t, err, "key is empty")

		_, err = storage.Delete(t.Context(), "")
		require.EqualError(t, err, "key is empty")
	})
}

func randomKey() string {
	return "cart-" + gofakeit.UUID()
}

func randomPayload() []byte {
	payload, err := json.Marshal([]map[string]any{{
		"id":       gofakeit.UUID(),
		"name":     gofakeit.ProductName(),
		"price":    gofakeit.Number(1, 10000),
		"quantity": gofakeit.Number(1, 5),
	}})
	if err != nil {
		panic(err)
	}

	return payload
}
