package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"agoda_hotel/internal/domain"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

type QueryService struct {
	catalog  domain.HotelCatalog
	cache    domain.Cache // nil disables URL memoization
	cacheTTL time.Duration
}

func NewQueryService(c domain.HotelCatalog, cache domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{catalog: c, cache: cache, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.HotelView, error) {
	h, ok, err := s.catalog.Find(id)
	if err != nil {
		return domain.HotelView{}, err
	}
	if !ok {
		return domain.HotelView{}, fmt.Errorf("hotel %q: %w", id, domain.ErrNotFound)
	}
	return toView(h), nil
}

// FindByURL resolves a full hotel URL to the first record whose stored url it
// contains. Hits are memoized because every miss is a full scan.
func (s *QueryService) FindByURL(ctx context.Context, url string) (domain.HotelView, error) {
	key := urlKey(s.catalog.Fingerprint(), url)
	var hv domain.HotelView
	if s.cache != nil && url != "" {
		ok, err := s.cache.Get(ctx, key, &hv)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if ok {
			return hv, nil
		}
	}

	h, ok, err := s.catalog.FindURL(url)
	if err != nil {
		return domain.HotelView{}, err
	}
	if !ok {
		return domain.HotelView{}, fmt.Errorf("hotel url %q: %w", url, domain.ErrNotFound)
	}
	hv = toView(h)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, hv, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return hv, nil
}

// ListHotels pages through the catalog in row order. The cursor is the
// offset of the next item.
func (s *QueryService) ListHotels(ctx context.Context, pg domain.PageQuery) (domain.HotelsPage, error) {
	limit := pg.Limit
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 0 || limit > maxPageLimit {
		return domain.HotelsPage{}, fmt.Errorf("limit %d out of range 1..%d: %w", pg.Limit, maxPageLimit, domain.ErrInvalidArgument)
	}

	offset := 0
	if pg.Cursor != nil && *pg.Cursor != "" {
		n, err := strconv.Atoi(*pg.Cursor)
		if err != nil || n < 0 {
			return domain.HotelsPage{}, fmt.Errorf("bad cursor %q: %w", *pg.Cursor, domain.ErrInvalidArgument)
		}
		offset = n
	}

	all := s.catalog.GetAll()
	out := domain.HotelsPage{Items: []domain.HotelView{}, Total: len(all)}
	if offset >= len(all) {
		return out, nil
	}
	end := min(offset+limit, len(all))
	out.Items = make([]domain.HotelView, 0, end-offset)
	for _, h := range all[offset:end] {
		out.Items = append(out.Items, toView(h))
	}
	if end < len(all) {
		next := strconv.Itoa(end)
		out.NextCursor = &next
	}
	return out, nil
}

// urlKey scopes cached lookups to one catalog so a reloaded or different
// archive never sees another catalog's answers.
func urlKey(catalog, url string) string {
	sum := sha1.Sum([]byte(url))
	return "hotel:url:" + catalog + ":" + hex.EncodeToString(sum[:])
}
