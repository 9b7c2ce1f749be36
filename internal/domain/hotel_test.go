package domain_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"agoda_hotel/internal/domain"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		raw   string
		ok    bool
		value float64
	}{
		{"99.50", true, 99.5},
		{"100", true, 100},
		{" 12.5 ", true, 12.5},
		{"-3", true, -3},
		{"1e3", true, 1000},
		{"N/A", false, 0},
		{"", false, 0},
		{"12,50", false, 0},
		{"1e400", true, math.Inf(1)},
		{"-1e400", true, math.Inf(-1)},
		{"0x1p3", false, 0},
		{"-0X10", false, 0},
	}
	for _, tt := range tests {
		r := domain.ParseRate(tt.raw)
		v, ok := r.Value()
		if ok != tt.ok || (ok && v != tt.value) {
			t.Fatalf("ParseRate(%q) = %v,%v; want %v,%v", tt.raw, v, ok, tt.value, tt.ok)
		}
	}
}

func TestRateString(t *testing.T) {
	tests := []struct {
		rate domain.Rate
		want string
	}{
		{domain.Available(99.5), "99.5"},
		{domain.Available(100), "100.0"},
		{domain.Available(0), "0.0"},
		{domain.Available(1e16), "1e+16"},
		{domain.Available(0.00001), "1e-05"},
		{domain.Available(math.NaN()), "nan"},
		{domain.Available(math.Inf(-1)), "-inf"},
		{domain.Unavailable(), domain.RatesNotAvailable},
	}
	for _, tt := range tests {
		if got := tt.rate.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRateJSON(t *testing.T) {
	b, err := json.Marshal([]domain.Rate{domain.Available(42.5), domain.Unavailable()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `[42.5,"Rates Not Available"]` {
		t.Fatalf("json: %s", b)
	}

	var back []domain.Rate
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := back[0].Value(); !ok || v != 42.5 {
		t.Fatalf("back[0]: %v %v", v, ok)
	}
	if back[1].Available() {
		t.Fatalf("back[1] should be unavailable")
	}

	if err := json.Unmarshal([]byte(`true`), &back[0]); err == nil {
		t.Fatalf("expected error for bool")
	}
}

func TestNewHotel(t *testing.T) {
	h := domain.NewHotel(map[string]string{
		"hotel_id": "7", "hotel_name": "Seven", "url": "s.com",
		"rates_currency": "THB", "rates_from": "abc", "city": "Bangkok",
	})
	if h.ID != "7" || h.Currency != "THB" || h.RatesFrom.Available() {
		t.Fatalf("unexpected: %+v", h)
	}
	if v, ok := h.Get("city"); !ok || v != "Bangkok" {
		t.Fatalf("city: %q", v)
	}
	if v, _ := h.Get(domain.ColRatesFrom); v != domain.RatesNotAvailable {
		t.Fatalf("rates_from: %q", v)
	}
	if _, ok := h.Get("nope"); ok {
		t.Fatalf("unknown column reported present")
	}
}

func TestFormatError(t *testing.T) {
	inner := errors.New("boom")
	var err error = &domain.FormatError{Path: "x.zip", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("Unwrap lost inner error")
	}
	if err.Error() != `"x.zip" is not a valid zip file: boom` {
		t.Fatalf("message: %s", err)
	}
}
