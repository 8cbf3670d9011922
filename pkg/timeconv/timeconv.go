// Package timeconv converts between canonical instants and civil wall-clock
// times in a user's IANA timezone. Slots are hour-granular, so the display
// format pins minutes to ":00".
package timeconv

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimezone indicates a malformed or unknown IANA zone identifier.
var ErrInvalidTimezone = errors.New("invalid timezone identifier")

// SlotLayout renders an hour-granular slot, e.g. "10-03-2024 10:00".
// "00" is a literal in Go layouts, which is exactly what we want here.
const SlotLayout = "02-01-2006 15:00"

// Zone resolves an IANA zone name. An empty name falls back to the process's
// local zone, matching roster entries that carry no timezone.
func Zone(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// ToLocal converts a canonical instant to the civil time in the given zone.
func ToLocal(instant time.Time, zone string) (time.Time, error) {
	loc, err := Zone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return instant.In(loc), nil
}

// ToInstant interprets a civil wall-clock time in the given zone and returns
// the canonical instant. DST rules apply per the IANA database.
func ToInstant(civil time.Time, zone string) (time.Time, error) {
	loc, err := Zone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(civil.Year(), civil.Month(), civil.Day(),
		civil.Hour(), civil.Minute(), civil.Second(), civil.Nanosecond(), loc), nil
}

// FormatSlot renders an instant in the given zone using the fixed slot layout.
func FormatSlot(instant time.Time, zone string) (string, error) {
	local, err := ToLocal(instant, zone)
	if err != nil {
		return "", err
	}
	return local.Format(SlotLayout), nil
}

// TruncateToHour drops sub-hour precision; slots always start on the hour.
func TruncateToHour(t time.Time) time.Time {
	return t.Truncate(time.Hour)
}
