package jwtx

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrNumericDateNotInteger is returned when a numeric date is not a JSON integer.
	ErrNumericDateNotInteger = errors.New("numeric date must be an integer number of seconds")
	// ErrNumericDateOutOfRange is returned when a numeric date does not map to a valid instant.
	ErrNumericDateOutOfRange = errors.New("numeric date out of range")
)

// Bounds of the instants a NumericDate may hold, in seconds since the epoch.
// They span the proleptic Gregorian years -262144 through 262143.
var (
	minNumericDate = time.Date(-262144, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxNumericDate = time.Date(262143, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// NumericDate is an instant encoded as whole seconds since the Unix epoch
// (RFC 7519 section 2).
type NumericDate struct {
	time.Time
}

// NewNumericDate truncates t to whole seconds. Sub-second precision is
// discarded, never rounded.
func NewNumericDate(t time.Time) NumericDate {
	return NumericDate{Time: time.Unix(t.Unix(), 0).UTC()}
}

// MarshalJSON encodes the date as a bare integer.
func (d NumericDate) MarshalJSON() ([]byte, error) {
	sec := d.Unix()
	if sec < minNumericDate || sec > maxNumericDate {
		return nil, fmt.Errorf("%w: %d", ErrNumericDateOutOfRange, sec)
	}
	return strconv.AppendInt(nil, sec, 10), nil
}

// UnmarshalJSON accepts a JSON integer literal only.
func (d *NumericDate) UnmarshalJSON(data []byte) error {
	sec, err := parseNumericDate(bytes.TrimSpace(data))
	if err != nil {
		return err
	}
	d.Time = time.Unix(sec, 0).UTC()
	return nil
}

func parseNumericDate(raw []byte) (int64, error) {
	if len(raw) == 0 || bytes.ContainsAny(raw, ".eE\"") || string(raw) == "null" {
		return 0, fmt.Errorf("%w: %s", ErrNumericDateNotInteger, raw)
	}
	sec, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", ErrNumericDateOutOfRange, raw)
		}
		return 0, fmt.Errorf("%w: %s", ErrNumericDateNotInteger, raw)
	}
	if sec < minNumericDate || sec > maxNumericDate {
		return 0, fmt.Errorf("%w: %d", ErrNumericDateOutOfRange, sec)
	}
	return sec, nil
}
