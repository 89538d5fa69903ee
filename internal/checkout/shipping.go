package checkout

import (
	"fmt"
	"strings"
)

// ShippingInfo is the delivery form filled in at checkout.
type ShippingInfo struct {
	Street         string
	Number         string
	Floor          string
	BetweenStreets string
	Neighborhood   string
	Phone          string
	Notes          string
}

func (s ShippingInfo) Validate() error {
	var missing []string

	if strings.TrimSpace(s.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(s.Number) == "" {
		missing = append(missing, "number")
	}
	if strings.TrimSpace(s.Phone) == "" {
		missing = append(missing, "phone")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidShipping, strings.Join(missing, ", "))
	}

	return nil
}

// shippingPayload uses the field names the order API expects.
type shippingPayload struct {
	Street         string `json:"calle"`
	Number         string `json:"altura"`
	Floor          string `json:"piso"`
	BetweenStreets string `json:"entreCalles"`
	Neighborhood   string `json:"barrio"`
	Phone          string `json:"telefono"`
	Notes          string `json:"observaciones"`
}

func mapShippingToPayload(s ShippingInfo) shippingPayload {
	return shippingPayload{
		Street:         strings.TrimSpace(s.Street),
		Number:         strings.TrimSpace(s.Number),
		Floor:          strings.TrimSpace(s.Floor),
		BetweenStreets: strings.TrimSpace(s.BetweenStreets),
		Neighborhood:   strings.TrimSpace(s.Neighborhood),
		Phone:          strings.TrimSpace(s.Phone),
		Notes:          strings.TrimSpace(s.Notes),
	}
}
