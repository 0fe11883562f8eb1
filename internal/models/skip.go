package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Skip is a waste container offered for a location, as returned by the
// listing endpoint. Values are never mutated after decoding.
type Skip struct {
	ID               string  `json:"id"`
	Size             int     `json:"size"`
	PriceBeforeVAT   float64 `json:"price_before_vat"`
	VAT              float64 `json:"vat"`
	HirePeriodDays   int     `json:"hire_period_days"`
	AllowedOnRoad    bool    `json:"allowed_on_road"`
	AllowsHeavyWaste bool    `json:"allows_heavy_waste"`
}

// UnmarshalJSON accepts the id as either a JSON string or a number.
func (s *Skip) UnmarshalJSON(data []byte) error {
	type alias Skip
	var raw struct {
		alias
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Skip(raw.alias)
	s.ID = ""

	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
	case id[0] == '"':
		if err := json.Unmarshal(id, &s.ID); err != nil {
			return fmt.Errorf("skip id: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("skip id: %w", err)
		}
		s.ID = n.String()
	}
	return nil
}

// LocationParams identifies where availability is queried.
type LocationParams struct {
	Postcode string `json:"postcode" yaml:"postcode"`
	Area     string `json:"area" yaml:"area"`
}

// Equivalent reports whether both params resolve to the same cache entry.
func (p LocationParams) Equivalent(other LocationParams) bool {
	return strings.EqualFold(p.Postcode, other.Postcode) && strings.EqualFold(p.Area, other.Area)
}

func (p LocationParams) String() string {
	return fmt.Sprintf("%s, %s", p.Postcode, p.Area)
}
