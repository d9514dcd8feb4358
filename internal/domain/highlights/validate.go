// Package highlights holds the structural contract of a highlight collection
// and the pure merge of clip artifacts back into it.
package highlights

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"highlight-reel/internal/timecode"
	"highlight-reel/internal/types"
)

// Cardinality bounds of a highlight collection. The same bounds are declared
// in the generation-time schema; Validate re-checks them regardless of what
// the model claims to guarantee.
const (
	MinHighlights = 3
	MaxHighlights = 5
)

var (
	// ErrInvalidResponse reports model output that is not well-formed JSON.
	ErrInvalidResponse = errors.New("invalid model response")
	// ErrEmptyResult reports a well-formed response whose highlights
	// collection is empty or absent.
	ErrEmptyResult = errors.New("no highlights in model response")
	// ErrSchemaMismatch reports a cardinality or required-field violation.
	ErrSchemaMismatch = errors.New("highlight schema mismatch")
)

// Validate decodes raw model output and enforces the highlights contract:
// a top-level "highlights" array of 3 to 5 objects, each carrying all five
// required fields with correct primitive types.
func Validate(raw []byte) (types.HighlightSet, error) {
	var set types.HighlightSet
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&set); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return types.HighlightSet{}, fmt.Errorf("%w: field %q has type %s", ErrSchemaMismatch, typeErr.Field, typeErr.Value)
		}
		return types.HighlightSet{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	n := len(set.Highlights)
	if n == 0 {
		return types.HighlightSet{}, ErrEmptyResult
	}
	if n < MinHighlights || n > MaxHighlights {
		return types.HighlightSet{}, fmt.Errorf("%w: got %d highlights, want %d to %d", ErrSchemaMismatch, n, MinHighlights, MaxHighlights)
	}

	for i, h := range set.Highlights {
		if h.HighlightNumber <= 0 {
			return types.HighlightSet{}, fmt.Errorf("%w: highlight %d has non-positive highlight_number %d", ErrSchemaMismatch, i+1, h.HighlightNumber)
		}
		for _, f := range []struct{ name, val string }{
			{"start_time", h.StartTime},
			{"end_time", h.EndTime},
			{"reason", h.Reason},
			{"brief_description", h.BriefDescription},
		} {
			if f.val == "" {
				return types.HighlightSet{}, fmt.Errorf("%w: highlight %d is missing %s", ErrSchemaMismatch, i+1, f.name)
			}
		}
	}

	return set, nil
}

// TimeOrderWarnings reports segments whose time range does not parse to a
// strictly increasing pair. A violation is a data-quality condition, not a
// validation failure: the segment stays in the set and fails later at trim
// pre-validation instead.
func TimeOrderWarnings(set types.HighlightSet) []string {
	var out []string
	for _, h := range set.Highlights {
		st, err := timecode.ParseSeconds(h.StartTime)
		if err != nil {
			out = append(out, fmt.Sprintf("highlight %d: %v", h.HighlightNumber, err))
			continue
		}
		en, err := timecode.ParseSeconds(h.EndTime)
		if err != nil {
			out = append(out, fmt.Sprintf("highlight %d: %v", h.HighlightNumber, err))
			continue
		}
		if en <= st {
			out = append(out, fmt.Sprintf("highlight %d: start %s is not before end %s", h.HighlightNumber, h.StartTime, h.EndTime))
		}
	}
	return out
}
