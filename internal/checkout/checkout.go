package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultTimeout    = 15 * time.Second
	idempotencyHeader = "Idempotency-Key"
	maxErrorBody      = 4 << 10
)

var (
	ErrEmptyCart       = errors.New("checkout: cart is empty")
	ErrInFlight        = errors.New("checkout: an order is already being submitted")
	ErrNoRedirect      = errors.New("checkout: order response has no payment link")
	ErrInvalidShipping = errors.New("checkout: invalid shipping info")
	ErrNotConfigured   = errors.New("checkout: order api url is not configured")
)

// OrderError is a non-2xx answer from the order endpoint.
type OrderError struct {
	Status  int
	Message string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("checkout: order rejected with status %d: %s", e.Status, e.Message)
}

// ClearPolicy decides what happens to the cart once a payment link is obtained.
type ClearPolicy int

const (
	// KeepCart leaves the cart intact so it is still there if the buyer comes back.
	KeepCart ClearPolicy = iota
	// ClearAfterRedirect empties the cart once the order endpoint returned a payment link.
	ClearAfterRedirect
)

func ParseClearPolicy(s string) (ClearPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return KeepCart, nil
	case "clear":
		return ClearAfterRedirect, nil
	default:
		return 0, fmt.Errorf("clear policy[%s] is not valid", s)
	}
}

// Cart is the part of the cart store the initiator needs.
type Cart interface {
	Items() []domain.LineItem
	Clear(ctx context.Context) error
}

type Options struct {
	HTTPClient *http.Client
	Policy     ClearPolicy
	Logger     *zap.Logger
}

// Initiator submits the cart as an order and hands back the payment provider redirect.
type Initiator struct {
	baseURL string
	http    *http.Client
	cart    Cart
	policy  ClearPolicy
	log     *zap.Logger

	inFlight atomic.Bool
}

func NewInitiator(baseURL string, c Cart, opts Options) (*Initiator, error) {
	if c == nil {
		return nil, fmt.Errorf("cart is nil")
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Initiator{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    opts.HTTPClient,
		cart:    c,
		policy:  opts.Policy,
		log:     opts.Logger,
	}, nil
}

// Start creates the order and returns the URL the buyer must be sent to.
func (i *Initiator) Start(ctx context.Context, shipping ShippingInfo) (string, error) {
	if i.baseURL == "" {
		return "", ErrNotConfigured
	}

	if err := shipping.Validate(); err != nil {
		return "", err
	}

	items := i.cart.Items()
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	if !i.inFlight.CompareAndSwap(false, true) {
		return "", ErrInFlight
	}
	defer i.inFlight.Store(false)

	redirectURL, err := i.submit(ctx, items, shipping)
	if err != nil {
		return "", err
	}

	i.log.Info("order created, redirecting to payment",
		zap.Int("items", len(items)), zap.String("redirect_host", hostOf(redirectURL)))

	if i.policy == ClearAfterRedirect {
		if err := i.cart.Clear(ctx); err != nil {
			i.log.Warn("cart not cleared after checkout", zap.Error(err))
		}
	}

	return redirectURL, nil
}

func (i *Initiator) submit(ctx context.Context, items []domain.LineItem, shipping ShippingInfo) (string, error) {
	body, err := json.Marshal(orderRequest{
		Items:    mapLineItemsToPayload(items),
		Shipping: mapShippingToPayload(shipping),
	})
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	endpoint, err := url.JoinPath(i.baseURL, "orders")
	if err != nil {
		return "", fmt.Errorf("url.JoinPath: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(idempotencyHeader, uuid.NewString())

	resp, err := i.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", &OrderError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	var payload orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode order response: %w", err)
	}

	redirectURL := strings.TrimSpace(payload.InitPoint)
	if redirectURL == "" {
		return "", ErrNoRedirect
	}

	return redirectURL, nil
}

type orderRequest struct {
	Items    []orderItemPayload `json:"items"`
	Shipping shippingPayload    `json:"shipping"`
}

// orderItemPayload is a line item as the order API reads it: the catalog
// product, keyed by "_id", plus the quantity. "id" is sent too for newer backends.
type orderItemPayload struct {
	CatalogID   string      `json:"_id"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Price       json.Number `json:"price"`
	Quantity    int         `json:"quantity"`
	Stock       *int        `json:"stock,omitempty"`
	Category    string      `json:"category,omitempty"`
	Subcategory string      `json:"subcategory,omitempty"`
	Image       string      `json:"image,omitempty"`
	Description string      `json:"description,omitempty"`
}

func mapLineItemsToPayload(items []domain.LineItem) []orderItemPayload {
	payload := make([]orderItemPayload, 0, len(items))

	for _, item := range items {
		payload = append(payload, orderItemPayload{
			CatalogID:   item.ID,
			ID:          item.ID,
			Name:        item.Name,
			Price:       json.Number(item.Price.String()),
			Quantity:    item.Quantity,
			Stock:       item.Stock,
			Category:    item.Category,
			Subcategory: item.Subcategory,
			Image:       item.Image,
			Description: item.Description,
		})
	}

	return payload
}

type orderResponse struct {
	InitPoint string `json:"init_point"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// errorMessage extracts {"message": ...} from an error body, falling back to the raw text.
func errorMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))

	var payload errorPayload
	if err := json.Unmarshal(b, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		return strings.TrimSpace(payload.Message)
	}

	if text := strings.TrimSpace(string(b)); text != "" {
		return text
	}

	return "order could not be processed"
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
