package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is a recoverable bad-request failure; handlers surface it
// as HTTP 400 and nothing is persisted.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrNoItems     = ValidationError("select at least one equipment item")
	ErrBadWindow   = ValidationError("end date must be after start date")
	ErrBadStatus   = ValidationError("invalid status")
	ErrFinalStatus = ValidationError("only pending reservations can change status")
)

// ErrForbidden marks an access attempt on someone else's reservation.
var ErrForbidden = errors.New("not allowed to view this reservation")

// UnavailableError carries the names of every item that failed the
// availability check, so the caller learns the full conflict set at once.
type UnavailableError struct {
	Names []string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("some items are not available for that time window: %s",
		strings.Join(e.Names, ", "))
}
