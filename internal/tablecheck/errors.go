package tablecheck

import (
	"errors"
	"fmt"
)

var (
	ErrTokenNotFound = errors.New("csrf token not found in reserve page")
	ErrMalformedURL  = errors.New("unexpected reserve URL path")
	ErrBadPayload    = errors.New("timetable response is not valid JSON")
)

// StatusError reports a non-2xx response from the reservation site.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}
