package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
)

// RatesNotAvailable is the text carried by a rate that could not be parsed.
const RatesNotAvailable = "Rates Not Available"

// Well-known columns of the Agoda hotel export.
const (
	ColHotelID   = "hotel_id"
	ColHotelName = "hotel_name"
	ColURL       = "url"
	ColCurrency  = "rates_currency"
	ColRatesFrom = "rates_from"
)

// Rate is either an available nightly price or the unavailable marker.
type Rate struct {
	value     float64
	available bool
}

func Available(v float64) Rate { return Rate{value: v, available: true} }

func Unavailable() Rate { return Rate{} }

// ParseRate converts a raw rates_from cell. Anything that is not a decimal
// number becomes Unavailable. Values too large for a float64 are kept as
// infinities.
func ParseRate(raw string) Rate {
	s := strings.TrimSpace(raw)
	if isHex(s) {
		return Unavailable()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Unavailable()
	}
	return Available(v)
}

// isHex reports a 0x/0X mantissa, which ParseFloat accepts but exports never use.
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func (r Rate) Available() bool { return r.available }

// Value returns the price and whether one is available.
func (r Rate) Value() (float64, bool) { return r.value, r.available }

// String renders the rate the way the report prints it: shortest round-trip
// decimal with a trailing ".0" for whole numbers, or RatesNotAvailable.
func (r Rate) String() string {
	if !r.available {
		return RatesNotAvailable
	}
	v := r.value
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if a := math.Abs(v); a >= 1e16 || (a != 0 && a < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MarshalJSON writes a number, or the RatesNotAvailable string.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.available {
		return json.Marshal(RatesNotAvailable)
	}
	// JSON has no NaN or Inf.
	if math.IsNaN(r.value) || math.IsInf(r.value, 0) {
		return json.Marshal(r.String())
	}
	return json.Marshal(r.value)
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*r = Available(t)
	case string:
		if t == RatesNotAvailable {
			*r = Unavailable()
			return nil
		}
		*r = ParseRate(t)
	case nil:
		*r = Unavailable()
	default:
		return fmt.Errorf("rate: unexpected JSON value %T", v)
	}
	return nil
}

// Hotel is one normalized row of the export. Fields holds every column of the
// row except rates_from, whose parsed form lives in RatesFrom.
type Hotel struct {
	ID        string
	Name      string
	URL       string
	Currency  string
	RatesFrom Rate
	Fields    map[string]string
}

// NewHotel builds a Hotel from a header-keyed row.
func NewHotel(row map[string]string) Hotel {
	fields := make(map[string]string, len(row))
	for k, v := range row {
		if k == ColRatesFrom {
			continue
		}
		fields[k] = v
	}
	return Hotel{
		ID:        row[ColHotelID],
		Name:      row[ColHotelName],
		URL:       row[ColURL],
		Currency:  row[ColCurrency],
		RatesFrom: ParseRate(row[ColRatesFrom]),
		Fields:    fields,
	}
}

// Get returns the value of a column; rates_from comes back in its rendered form.
func (h Hotel) Get(col string) (string, bool) {
	if col == ColRatesFrom {
		return h.RatesFrom.String(), true
	}
	v, ok := h.Fields[col]
	return v, ok
}

// Clone returns a copy that shares no maps with h.
func (h Hotel) Clone() Hotel {
	h.Fields = maps.Clone(h.Fields)
	return h
}
