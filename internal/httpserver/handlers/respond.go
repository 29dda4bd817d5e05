package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"campusgear/internal/services/booking"
	"campusgear/internal/services/lending"
	"campusgear/internal/services/ticketing"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// respondError maps service failures onto the HTTP surface: validation
// problems are 400 with a message naming the problem, missing rows 404,
// ownership violations 403, anything else 500.
func respondError(w http.ResponseWriter, err error) {
	var (
		bookingVal   booking.ValidationError
		lendingVal   lending.ValidationError
		ticketingVal ticketing.ValidationError
		unavailable  *booking.UnavailableError
	)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, booking.ErrForbidden), errors.Is(err, ticketing.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.As(err, &bookingVal), errors.As(err, &lendingVal),
		errors.As(err, &ticketingVal), errors.As(err, &unavailable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
