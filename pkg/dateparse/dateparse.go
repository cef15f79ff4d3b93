// Package dateparse normalizes the free-form date strings returned by the
// timelines API into ISO-8601 calendar dates.
package dateparse

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFormat is returned when a date string matches none of the
// accepted layouts.
var ErrInvalidFormat = errors.New("invalid date format")

// Layouts are tried in order; the first one that consumes the whole
// string wins. Missing fields default to the lowest value, so "Jul 2004"
// becomes July 1st and "2004" becomes January 1st.
var layouts = []string{
	"Jan 2 2006",
	"Jan 2006",
	"2006",
}

// ToISO converts dates like "Jul 4 2004", "Jul 2004" or "2004" to
// "2004-07-04" form.
func ToISO(datestring string) (string, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, datestring); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: %q matches none of 'Jan 2 2006', 'Jan 2006', '2006'", ErrInvalidFormat, datestring)
}
