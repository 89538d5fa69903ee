package cart

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// storedItem is the persisted shape of a line item. Older payloads keyed
// products by "_id"; it is read but never written.
type storedItem struct {
	ID          string `json:"id"`
	LegacyID    string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Price       price  `json:"price"`
	Quantity    int    `json:"quantity"`
	Stock       *int   `json:"stock,omitempty"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// price encodes as a bare JSON number and decodes from a number or a numeric string.
type price decimal.Decimal

func (p price) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(p).String()), nil
}

func (p *price) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}

	*p = price(d)
	return nil
}

// MarshalItems encodes line items in the persisted layout, preserving order.
func MarshalItems(items []domain.LineItem) ([]byte, error) {
	stored := make([]storedItem, 0, len(items))
	for _, item := range items {
		stored = append(stored, mapLineItemToStored(item))
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return payload, nil
}

// UnmarshalItems decodes a persisted payload. Empty input is an empty cart.
// Entries without an id or with a quantity outside 1..MaxQuantity are dropped,
// duplicates are merged. The second result counts dropped or merged entries.
func UnmarshalItems(payload []byte) ([]domain.LineItem, int, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, 0, nil
	}

	var stored []storedItem
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, 0, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var (
		items   []domain.LineItem
		dropped int
	)

	for _, s := range stored {
		item := mapStoredToLineItem(s)
		if item.ID == "" || item.Quantity < 1 || item.Quantity > MaxQuantity {
			dropped++
			continue
		}

		if i := (domain.Cart{Items: items}).Index(item.ID); i >= 0 {
			// a merge past MaxQuantity keeps the first entry only
			if items[i].Quantity <= MaxQuantity-item.Quantity {
				items[i].Quantity += item.Quantity
			}
			dropped++
			continue
		}

		items = append(items, item)
	}

	return items, dropped, nil
}

func mapLineItemToStored(item domain.LineItem) storedItem {
	return storedItem{
		ID:          item.ID,
		Name:        item.Name,
		Price:       price(item.Price),
		Quantity:    item.Quantity,
		Stock:       item.Clone().Stock,
		Category:    item.Category,
		Subcategory: item.Subcategory,
		Image:       item.Image,
		Description: item.Description,
	}
}

func mapStoredToLineItem(s storedItem) domain.LineItem {
	id := s.ID
	if id == "" {
		id = s.LegacyID
	}

	return domain.LineItem{
		Product: domain.Product{
			ID:          id,
			Name:        s.Name,
			Price:       decimal.Decimal(s.Price),
			Stock:       s.Stock,
			Category:    s.Category,
			Subcategory: s.Subcategory,
			Image:       s.Image,
			Description: s.Description,
		},
		Quantity: s.Quantity,
	}
}
