package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

const DefaultKey = "cart"

// MaxQuantity bounds a single line item, keeping quantities and counts far from int overflow.
const MaxQuantity = 9999

type Op int

const (
	OpRestored Op = iota
	OpAdded
	OpRemoved
	OpCleared
)

func (op Op) String() string {
	switch op {
	case OpRestored:
		return "restored"
	case OpAdded:
		return "added"
	case OpRemoved:
		return "removed"
	case OpCleared:
		return "cleared"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Change is delivered to the Listener once per completed operation.
// OpAdded doubles as the signal to open the cart panel.
type Change struct {
	Op        Op
	ProductID string
	Totals    domain.Totals
}

type Listener func(Change)

type Options struct {
	Key      string
	Policy   PersistPolicy
	Logger   *zap.Logger
	Listener Listener
}

// Store owns the cart and mirrors every mutation to storage.
// It is not safe for concurrent use.
type Store struct {
	storage  port.CartStorage
	key      string
	policy   PersistPolicy
	log      *zap.Logger
	listener Listener

	cart     domain.Cart
	degraded bool
}

func NewStore(storage port.CartStorage, opts Options) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is nil")
	}

	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Store{
		storage:  storage,
		key:      opts.Key,
		policy:   opts.Policy,
		log:      opts.Logger.With(zap.String("cart_key", opts.Key)),
		listener: opts.Listener,
	}, nil
}

// Restore replaces the in-memory cart with the stored one. On any error the
// cart is left empty and usable; a corrupt payload yields *DeserializationError.
func (s *Store) Restore(ctx context.Context) error {
	s.cart = domain.Cart{}

	err := s.restore(ctx)
	s.notify(OpRestored, "")

	return err
}

func (s *Store) restore(ctx context.Context) error {
	payload, err := s.storage.Load(ctx, s.key)
	if errors.Is(err, port.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage.Load: %w", err)
	}

	items, dropped, err := UnmarshalItems(payload)
	if err != nil {
		return &DeserializationError{Key: s.key, Err: err}
	}

	if dropped > 0 {
		s.log.Warn("dropped malformed line items on restore", zap.Int("dropped", dropped))
	}

	s.cart.Items = items

	return nil
}

// Add puts one unit of productID into the cart.
func (s *Store) Add(ctx context.Context, productID string, finder port.ProductFinder) error {
	return s.AddQuantity(ctx, productID, 1, finder)
}

// AddQuantity merges qty units of productID into the cart, copying the product
// as it is in finder when the line is new.
func (s *Store) AddQuantity(ctx context.Context, productID string, qty int, finder port.ProductFinder) error {
	if qty < 1 || qty > MaxQuantity {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}

	if finder == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, productID)
	}

	product, ok := finder.Find(productID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, productID)
	}

	if !product.InStock() {
		return fmt.Errorf("%w: %s", ErrOutOfStock, productID)
	}

	i := s.cart.Index(productID)
	if i >= 0 && s.cart.Items[i].Quantity > MaxQuantity-qty {
		return fmt.Errorf("%w: %d more than the %d in cart exceeds %d", ErrInvalidQuantity, qty, s.cart.Items[i].Quantity, MaxQuantity)
	}

	prev := s.snapshot()

	if i >= 0 {
		s.cart.Items[i].Quantity += qty
	} else {
		s.cart.Items = append(s.cart.Items, domain.LineItem{Product: product.Clone(), Quantity: qty})
	}

	if err := s.commit(ctx, prev); err != nil {
		return err
	}

	s.notify(OpAdded, productID)

	return nil
}

// Remove deletes the line for productID and reports whether one existed.
// The cart is persisted either way.
func (s *Store) Remove(ctx context.Context, productID string) (bool, error) {
	prev := s.snapshot()

	i := s.cart.Index(productID)
	if i >= 0 {
		s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
	}

	if err := s.commit(ctx, prev); err != nil {
		return false, err
	}

	s.notify(OpRemoved, productID)

	return i >= 0, nil
}

// Clear empties the cart and removes the stored payload.
func (s *Store) Clear(ctx context.Context) error {
	prev := s.snapshot()
	s.cart = domain.Cart{}

	if _, err := s.storage.Delete(ctx, s.key); err != nil {
		if err := s.handlePersistErr(fmt.Errorf("%w: storage.Delete: %w", ErrPersist, err), prev); err != nil {
			return err
		}
	} else {
		s.degraded = false
	}

	s.notify(OpCleared, "")

	return nil
}

// Persist writes the whole cart under the store key, overwriting the previous value.
func (s *Store) Persist(ctx context.Context) error {
	payload, err := MarshalItems(s.cart.Items)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if err := s.storage.Save(ctx, s.key, payload); err != nil {
		s.degraded = true
		return fmt.Errorf("%w: storage.Save: %w", ErrPersist, err)
	}

	s.degraded = false

	return nil
}

func (s *Store) Totals() domain.Totals {
	return s.cart.Totals()
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	return s.snapshot()
}

func (s *Store) Len() int {
	return len(s.cart.Items)
}

// Degraded reports whether the last write to storage failed, meaning the
// cart may not survive a reload.
func (s *Store) Degraded() bool {
	return s.degraded
}

func (s *Store) commit(ctx context.Context, prev []domain.LineItem) error {
	if err := s.Persist(ctx); err != nil {
		return s.handlePersistErr(err, prev)
	}

	return nil
}

func (s *Store) handlePersistErr(err error, prev []domain.LineItem) error {
	if s.policy == PersistFail {
		// storage still holds prev, so memory and storage agree again
		s.cart.Items = prev
		s.degraded = false
		return err
	}

	s.degraded = true
	s.log.Warn("cart kept in memory only, it may not survive a reload", zap.Error(err))

	return nil
}

func (s *Store) snapshot() []domain.LineItem {
	if s.cart.Items == nil {
		return nil
	}

	items := make([]domain.LineItem, len(s.cart.Items))
	for i, item := range s.cart.Items {
		items[i] = domain.LineItem{Product: item.Clone(), Quantity: item.Quantity}
	}

	return items
}

func (s *Store) notify(op Op, productID string) {
	if s.listener == nil {
		return
	}

	s.listener(Change{
		Op:        op,
		ProductID: productID,
		Totals:    s.Totals(),
	})
}
