// Package agoda reads the zipped Agoda hotel data export into an in-memory
// catalog.
package agoda

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"agoda_hotel/internal/adapters/observability"
	"agoda_hotel/internal/domain"
	"agoda_hotel/internal/storage/memory"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	errEmptyArchive = errors.New("archive has no entries")
	// ErrMissingRates is returned when data rows exist but the header has no
	// rates_from column.
	ErrMissingRates = errors.New("agoda: header has no " + domain.ColRatesFrom + " column")
)

// Load opens the zip archive at path and parses its first entry.
// Any failure to open path as a zip archive is reported as *domain.FormatError.
func Load(path string) (*memory.Catalog, error) {
	start := time.Now()
	zr, err := zip.OpenReader(path)
	if err != nil {
		observability.ObserveLoad("format_error", 0, 0, time.Since(start))
		return nil, &domain.FormatError{Path: path, Err: err}
	}
	defer zr.Close()

	return load(path, &zr.Reader, start)
}

// LoadReader is Load for an archive already in memory or on another medium.
func LoadReader(ra io.ReaderAt, size int64) (*memory.Catalog, error) {
	start := time.Now()
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		observability.ObserveLoad("format_error", 0, 0, time.Since(start))
		return nil, &domain.FormatError{Path: "<reader>", Err: err}
	}
	return load("<reader>", zr, start)
}

func load(name string, zr *zip.Reader, start time.Time) (*memory.Catalog, error) {
	if len(zr.File) == 0 {
		observability.ObserveLoad("format_error", 0, 0, time.Since(start))
		return nil, &domain.FormatError{Path: name, Err: errEmptyArchive}
	}

	// The export ships a single file; the first directory entry is taken as
	// the payload without looking at its name.
	entry := zr.File[0]
	if n := len(zr.File); n > 1 {
		log.Warn().
			Str("archive", name).
			Str("entry", entry.Name).
			Int("ignored", n-1).
			Msg("archive holds more than one entry, using the first")
	}

	hotels, unavailable, err := readEntry(entry)
	if err != nil {
		observability.ObserveLoad("error", 0, 0, time.Since(start))
		return nil, err
	}

	dur := time.Since(start)
	observability.ObserveLoad("ok", len(hotels), unavailable, dur)
	log.Info().
		Str("archive", name).
		Str("entry", entry.Name).
		Int("records", len(hotels)).
		Int("rates_unavailable", unavailable).
		Dur("duration", dur).
		Msg("catalog loaded")
	return memory.New(hotels), nil
}

func readEntry(f *zip.File) ([]domain.Hotel, int, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, 0, fmt.Errorf("agoda: open entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	hotels, unavailable, err := Parse(rc)
	if err != nil {
		return nil, 0, fmt.Errorf("agoda: entry %q: %w", f.Name, err)
	}
	return hotels, unavailable, nil
}

// Parse reads a decompressed payload: a 3-byte marker followed by CSV with a
// header row. It returns the records in row order and how many of them had
// no usable rate.
func Parse(r io.Reader) ([]domain.Hotel, int, error) {
	// The marker is always dropped; it is only checked to flag odd exports.
	var mark [3]byte
	n, err := io.ReadFull(r, mark[:])
	switch {
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		return nil, 0, nil
	case err != nil:
		return nil, 0, fmt.Errorf("read byte-order mark: %w", err)
	}
	if !bytes.Equal(mark[:n], utf8BOM) {
		log.Warn().Hex("bytes", mark[:n]).Msg("payload does not start with a UTF-8 BOM, dropping 3 bytes anyway")
	}

	cr := csv.NewReader(r)
	cr.Comma = ','
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // short and long rows are tolerated

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	hasRates := slices.Contains(header, domain.ColRatesFrom)

	var (
		hotels      []domain.Hotel
		unavailable int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read row: %w", err)
		}
		if !hasRates {
			return nil, 0, ErrMissingRates
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		h := domain.NewHotel(row)
		if !h.RatesFrom.Available() {
			unavailable++
		}
		hotels = append(hotels, h)
	}
	return hotels, unavailable, nil
}
