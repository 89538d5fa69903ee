package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/port"
)

type postgresStorage struct {
	q *db.Queries
}

// NewPostgresStorage keeps carts in the cart_storage table, one row per key.
func NewPostgresStorage(pool *pgxpool.Pool) port.CartStorage {
	return &postgresStorage{
		q: db.New(pool),
	}
}

// NewPostgresStorageWithTx runs every call on tx; the caller commits or rolls back.
func NewPostgresStorageWithTx(tx pgx.Tx) port.CartStorage {
	return &postgresStorage{
		q: db.New(tx),
	}
}

func (r *postgresStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	payload, err := r.q.GetPayload(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("q.GetPayload: %w", err)
	}

	return payload, nil
}

func (r *postgresStorage) Save(ctx context.Context, key string, payload []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	// the column is JSONB, reject what postgres would reject without a round trip
	if !json.Valid(payload) {
		return fmt.Errorf("payload is not valid JSON")
	}

	// a single upsert is atomic, with or without a caller transaction
	if err := r.q.UpsertPayload(ctx, db.UpsertPayloadParams{
		StorageKey: key,
		Payload:    payload,
	}); err != nil {
		return fmt.Errorf("q.UpsertPayload: %w", err)
	}

	return nil
}

func (r *postgresStorage) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("key is empty")
	}

	rowsAffected, err := r.q.DeletePayload(ctx, key)
	if err != nil {
		return false, fmt.Errorf("q.DeletePayload: %w", err)
	}

	return rowsAffected > 0, nil
}
