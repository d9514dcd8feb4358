// Package timecode parses the colon-delimited timestamps the model emits
// for highlight boundaries.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTimestamp reports a timestamp that is not HH:MM:SS or MM:SS
// with non-negative integer fields.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// ParseSeconds converts "HH:MM:SS" or "MM:SS" to total seconds.
// Fields are integers, most significant first.
func ParseSeconds(s string) (int, error) {
	fields := strings.Split(strings.TrimSpace(s), ":")
	if len(fields) != 2 && len(fields) != 3 {
		return 0, fmt.Errorf("%w: %q has %d fields, want 2 or 3", ErrMalformedTimestamp, s, len(fields))
	}
	total := 0
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return 0, fmt.Errorf("%w: non-numeric field %q in %q", ErrMalformedTimestamp, f, s)
		}
		if n < 0 {
			return 0, fmt.Errorf("%w: negative field %q in %q", ErrMalformedTimestamp, f, s)
		}
		total = total*60 + n
	}
	return total, nil
}

// SegmentDuration returns end-start in seconds. ok is false when either
// timestamp is malformed or the range is not strictly increasing, so
// callers can render "duration unknown" instead of dropping the segment.
func SegmentDuration(start, end string) (int, bool) {
	st, err := ParseSeconds(start)
	if err != nil {
		return 0, false
	}
	en, err := ParseSeconds(end)
	if err != nil {
		return 0, false
	}
	if en <= st {
		return 0, false
	}
	return en - st, true
}
