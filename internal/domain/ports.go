package domain

import "context"

// HotelCatalog is the read-only query surface over a loaded export.
type HotelCatalog interface {
	GetAll() []Hotel
	Find(id string) (Hotel, bool, error)
	FindURL(url string) (Hotel, bool, error)
	Len() int
	// Fingerprint changes whenever the records do; caches key on it.
	Fingerprint() string
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}

// Read models & queries
type HotelView struct {
	ID        string            `json:"hotel_id"`
	Name      string            `json:"hotel_name"`
	URL       string            `json:"url"`
	Currency  string            `json:"rates_currency"`
	RatesFrom Rate              `json:"rates_from"`
	Available bool              `json:"rates_available"`
	Extra     map[string]string `json:"extra,omitempty"` // columns beyond the well-known five
}

type PageQuery struct {
	Limit  int
	Cursor *string
}

type HotelsPage struct {
	Items      []HotelView `json:"items"`
	NextCursor *string     `json:"next_cursor,omitempty"`
	Total      int         `json:"total"`
}
