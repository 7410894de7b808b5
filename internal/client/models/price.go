package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is a monetary amount in the catalog currency.
// It always serialises with exactly two decimals.
type Price float64

// RoundPrice rounds v to two decimals, halves away from zero.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParsePrice parses a decimal string such as "12.5" or " 9.999 ".
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("price %q is not finite", s)
	}
	return v, nil
}

// String formats the price with two decimals.
func (p Price) String() string {
	return strconv.FormatFloat(RoundPrice(float64(p)), 'f', 2, 64)
}

func (p Price) MarshalJSON() ([]byte, error) {
	v := float64(p)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("price %v is not finite", v)
	}
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. null leaves p unchanged.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = Price(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(v)
	return nil
}
