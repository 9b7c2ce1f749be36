package app

import (
	"agoda_hotel/internal/domain"
)

// wellKnown columns are lifted into HotelView fields; the rest go to Extra.
var wellKnown = map[string]bool{
	domain.ColHotelID:   true,
	domain.ColHotelName: true,
	domain.ColURL:       true,
	domain.ColCurrency:  true,
	domain.ColRatesFrom: true,
}

func toView(h domain.Hotel) domain.HotelView {
	hv := domain.HotelView{
		ID:        h.ID,
		Name:      h.Name,
		URL:       h.URL,
		Currency:  h.Currency,
		RatesFrom: h.RatesFrom,
		Available: h.RatesFrom.Available(),
	}
	for k, v := range h.Fields {
		if wellKnown[k] {
			continue
		}
		if hv.Extra == nil {
			hv.Extra = make(map[string]string, len(h.Fields))
		}
		hv.Extra[k] = v
	}
	return hv
}
