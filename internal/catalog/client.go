package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
)

const defaultTimeout = 8 * time.Second

var (
	ErrUnavailable = errors.New("catalog: unavailable")
	ErrEmpty       = errors.New("catalog: no products")
)

// FallbackPolicy decides whether Fetch substitutes the fallback dataset when the API fails.
type FallbackPolicy int

const (
	FallbackOnError FallbackPolicy = iota
	FallbackNever
)

func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "on-error":
		return FallbackOnError, nil
	case "never":
		return FallbackNever, nil
	default:
		return 0, fmt.Errorf("fallback policy[%s] is not valid", s)
	}
}

type Options struct {
	HTTPClient *http.Client
	Fallback   *Snapshot
	Policy     FallbackPolicy
	Logger     *zap.Logger
}

// Client reads the product list from the storefront API.
type Client struct {
	baseURL  string
	http     *http.Client
	fallback *Snapshot
	policy   FallbackPolicy
	log      *zap.Logger
}

// NewClient builds a catalog client. An empty baseURL serves the fallback dataset only.
func NewClient(baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("url.Parse: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("base url[%s] must be absolute", baseURL)
		}
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Fallback == nil {
		opts.Fallback = NewSnapshot(DefaultProducts())
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Client{
		baseURL:  baseURL,
		http:     opts.HTTPClient,
		fallback: opts.Fallback,
		policy:   opts.Policy,
		log:      opts.Logger,
	}, nil
}

// Fetch loads the current catalog. Depending on the fallback policy, API
// failures and empty listings are answered with the fallback dataset.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	if c.baseURL == "" {
		return c.fallback, nil
	}

	products, err := c.fetch(ctx)
	if err == nil && len(products) == 0 {
		err = ErrEmpty
	}
	if err == nil {
		return NewSnapshot(products), nil
	}

	if c.policy == FallbackNever {
		return nil, err
	}

	c.log.Warn("catalog api unreachable, using fallback products",
		zap.String("base_url", c.baseURL), zap.Error(err))

	return c.fallback, nil
}

func (c *Client) fetch(ctx context.Context) ([]domain.Product, error) {
	endpoint, err := url.JoinPath(c.baseURL, "products")
	if err != nil {
		return nil, fmt.Errorf("url.JoinPath: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, drainError(resp.Body))
	}

	var payload []productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrUnavailable, err)
	}

	products, skipped := mapPayloadsToDomain(payload)
	for _, err := range skipped {
		c.log.Warn("skipping malformed catalog product", zap.Error(err))
	}

	return products, nil
}

func drainError(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
