package app

import (
	"bufio"
	"fmt"
	"io"

	"agoda_hotel/internal/domain"
)

// ReportLine renders one hotel as printed by the CLI.
func ReportLine(h domain.Hotel) string {
	if !h.RatesFrom.Available() {
		return fmt.Sprintf("%s - '%s': No rates available", h.ID, h.Name)
	}
	return fmt.Sprintf("%s - '%s' from '%s' '%s'", h.ID, h.Name, h.Currency, h.RatesFrom)
}

// WriteReport writes one line per hotel, in the order given.
func WriteReport(w io.Writer, hotels []domain.Hotel) error {
	bw := bufio.NewWriter(w)
	for _, h := range hotels {
		if _, err := fmt.Fprintln(bw, ReportLine(h)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
