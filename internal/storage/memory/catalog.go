package memory

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"slices"
	"strings"

	"agoda_hotel/internal/adapters/observability"
	"agoda_hotel/internal/domain"
)

// Catalog holds a loaded export in row order. It is never modified after
// New returns, so concurrent readers need no locking.
type Catalog struct {
	hotels      []domain.Hotel
	fingerprint string
}

// New takes ownership of hotels.
func New(hotels []domain.Hotel) *Catalog {
	return &Catalog{hotels: hotels, fingerprint: fingerprint(hotels)}
}

// Fingerprint identifies the catalog's content; two catalogs share it only
// when they hold the same records in the same order.
func (c *Catalog) Fingerprint() string { return c.fingerprint }

func fingerprint(hotels []domain.Hotel) string {
	h := sha1.New()
	for _, ho := range hotels {
		cols := make([]string, 0, len(ho.Fields))
		for k := range ho.Fields {
			cols = append(cols, k)
		}
		slices.Sort(cols)
		for _, k := range cols {
			_, _ = io.WriteString(h, k+"\x1f"+ho.Fields[k]+"\x1f")
		}
		_, _ = io.WriteString(h, ho.ID+"\x1f"+ho.Name+"\x1f"+ho.URL+"\x1f"+ho.Currency+"\x1f"+ho.RatesFrom.String()+"\x1e")
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (c *Catalog) Len() int { return len(c.hotels) }

// GetAll returns a copy of every record in row order.
func (c *Catalog) GetAll() []domain.Hotel {
	out := make([]domain.Hotel, len(c.hotels))
	for i, h := range c.hotels {
		out[i] = h.Clone()
	}
	return out
}

// Find returns the first record whose hotel_id equals id.
func (c *Catalog) Find(id string) (domain.Hotel, bool, error) {
	if id == "" {
		return domain.Hotel{}, false, fmt.Errorf("missing a hotel id: %w", domain.ErrInvalidArgument)
	}
	for _, h := range c.hotels {
		if h.ID == id {
			observability.ObserveLookup("id", true)
			return h.Clone(), true, nil
		}
	}
	observability.ObserveLookup("id", false)
	return domain.Hotel{}, false, nil
}

// FindURL returns the first record whose stored url occurs within url.
// The match is one-way: a record with url "abc" matches "xabcxyz", never the
// reverse.
func (c *Catalog) FindURL(url string) (domain.Hotel, bool, error) {
	if url == "" {
		return domain.Hotel{}, false, fmt.Errorf("missing a hotel url: %w", domain.ErrInvalidArgument)
	}
	for _, h := range c.hotels {
		if strings.Contains(url, h.URL) {
			observability.ObserveLookup("url", true)
			return h.Clone(), true, nil
		}
	}
	observability.ObserveLookup("url", false)
	return domain.Hotel{}, false, nil
}

var _ domain.HotelCatalog = (*Catalog)(nil)
