package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront/internal/domain"
)

// ErrKeyNotFound is returned by CartStorage.Load when nothing is stored under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// CartStorage is a key/value store holding serialized carts.
type CartStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) (bool, error)
}

// ProductFinder resolves products from the current catalog snapshot.
type ProductFinder interface {
	Find(productID string) (domain.Product, bool)
}
