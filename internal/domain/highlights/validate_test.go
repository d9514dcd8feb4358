package highlights

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"highlight-reel/internal/types"
)

func validDoc(n int) []byte {
	var b strings.Builder
	b.WriteString(`{"highlights":[`)
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b,
			`{"highlight_number":%d,"start_time":"00:0%d:00","end_time":"00:0%d:30","reason":"r%d","brief_description":"d%d"}`,
			i, i, i, i, i)
	}
	b.WriteString(`]}`)
	return []byte(b.String())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	set, err := Validate(validDoc(3))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(set.Highlights) != 3 {
		t.Fatalf("expected 3 highlights, got %d", len(set.Highlights))
	}
	if set.Highlights[0].HighlightNumber != 1 || set.Highlights[2].BriefDescription != "d3" {
		t.Fatalf("unexpected decoded set: %+v", set)
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  []byte
		want error
	}{
		{name: "not_json", raw: []byte("here are your highlights!"), want: ErrInvalidResponse},
		{name: "truncated", raw: validDoc(3)[:20], want: ErrInvalidResponse},
		{name: "empty_array", raw: []byte(`{"highlights":[]}`), want: ErrEmptyResult},
		{name: "absent_field", raw: []byte(`{}`), want: ErrEmptyResult},
		{name: "too_few", raw: validDoc(1), want: ErrSchemaMismatch},
		{name: "too_many", raw: validDoc(6), want: ErrSchemaMismatch},
		{
			name: "wrong_type",
			raw:  []byte(`{"highlights":[{"highlight_number":"one","start_time":"00:01","end_time":"00:02","reason":"r","brief_description":"d"}]}`),
			want: ErrSchemaMismatch,
		},
		{
			name: "missing_reason",
			raw: []byte(`{"highlights":[
				{"highlight_number":1,"start_time":"00:01","end_time":"00:02","reason":"r","brief_description":"d"},
				{"highlight_number":2,"start_time":"00:03","end_time":"00:04","reason":"","brief_description":"d"},
				{"highlight_number":3,"start_time":"00:05","end_time":"00:06","reason":"r","brief_description":"d"}]}`),
			want: ErrSchemaMismatch,
		},
		{
			name: "non_positive_number",
			raw: []byte(`{"highlights":[
				{"highlight_number":0,"start_time":"00:01","end_time":"00:02","reason":"r","brief_description":"d"},
				{"highlight_number":2,"start_time":"00:03","end_time":"00:04","reason":"r","brief_description":"d"},
				{"highlight_number":3,"start_time":"00:05","end_time":"00:06","reason":"r","brief_description":"d"}]}`),
			want: ErrSchemaMismatch,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Validate(tc.raw); !errors.Is(err, tc.want) {
				t.Fatalf("Validate err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateRoundTrip(t *testing.T) {
	t.Parallel()

	set, err := Validate(validDoc(4))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	b, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := Validate(b)
	if err != nil {
		t.Fatalf("re-validate: %v", err)
	}
	if !reflect.DeepEqual(set, again) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", set, again)
	}
}

func TestTimeOrderWarnings(t *testing.T) {
	t.Parallel()

	set := types.HighlightSet{Highlights: []types.HighlightSegment{
		{HighlightNumber: 1, StartTime: "00:10", EndTime: "00:20"},
		{HighlightNumber: 2, StartTime: "00:30", EndTime: "00:30"},
		{HighlightNumber: 3, StartTime: "bogus", EndTime: "00:40"},
	}}
	warns := TimeOrderWarnings(set)
	if len(warns) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warns), warns)
	}
	if !strings.Contains(warns[0], "highlight 2") {
		t.Fatalf("unexpected warning: %q", warns[0])
	}
	if !strings.Contains(warns[1], "highlight 3") {
		t.Fatalf("unexpected warning: %q", warns[1])
	}
}
