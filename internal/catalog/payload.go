package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	errMissingID    = errors.New("product has no id")
	errInvalidPrice = errors.New("product price is not a number")
)

// productPayload mirrors one entry of GET /products. Some deployments send
// numeric ids under "id" and prices or stock as numeric strings, so those are read raw.
type productPayload struct {
	ID          string          `json:"_id"`
	AltID       json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Price       json.RawMessage `json:"price"`
	Stock       json.RawMessage `json:"stock"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// mapPayloadsToDomain keeps the valid products; the rejected ones are reported in skipped.
func mapPayloadsToDomain(payloads []productPayload) (products []domain.Product, skipped []error) {
	products = make([]domain.Product, 0, len(payloads))

	for i, p := range payloads {
		product, err := mapPayloadToDomain(p)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("product #%d %q: %w", i, product.ID, err))
			continue
		}
		products = append(products, product)
	}

	return products, skipped
}

func mapPayloadToDomain(p productPayload) (domain.Product, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = rawScalar(p.AltID)
	}
	if id == "" {
		return domain.Product{}, errMissingID
	}

	price, err := decimal.NewFromString(rawScalar(p.Price))
	if err != nil {
		return domain.Product{ID: id}, fmt.Errorf("%w: %s", errInvalidPrice, p.Price)
	}

	return domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(p.Name),
		Price:       price,
		Stock:       parseStock(p.Stock),
		Category:    strings.TrimSpace(p.Category),
		Subcategory: strings.TrimSpace(p.Subcategory),
		Image:       strings.TrimSpace(p.Image),
		Description: strings.TrimSpace(p.Description),
	}, nil
}

// parseStock reads stock the way the storefront always has: an absent field
// or a non-numeric value is unknown, null and "" count as 0, and a fraction is
// rounded away from zero so that only an exact 0 means out of stock.
func parseStock(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	s := rawScalar(raw)
	if s == "" {
		zero := 0
		return &zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}

	stock := clampInt(d.RoundUp(0))
	return &stock
}

var (
	maxIntDecimal = decimal.NewFromInt(math.MaxInt)
	minIntDecimal = decimal.NewFromInt(math.MinInt)
)

func clampInt(d decimal.Decimal) int {
	switch {
	case d.GreaterThan(maxIntDecimal):
		return math.MaxInt
	case d.LessThan(minIntDecimal):
		return math.MinInt
	default:
		return int(d.IntPart())
	}
}

func rawScalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	return string(raw)
}
