package highlights

import "highlight-reel/internal/types"

// Attach merges clip artifacts into their originating segments, keyed by
// highlight number. Segments without a matching artifact keep an empty
// ClipURL; artifact keys that reference unknown highlight numbers are
// ignored. The set is never reordered and never loses segments.
func Attach(set types.HighlightSet, artifacts map[int]types.ClipArtifact) types.HighlightSet {
	out := types.HighlightSet{Highlights: make([]types.HighlightSegment, len(set.Highlights))}
	copy(out.Highlights, set.Highlights)
	for i := range out.Highlights {
		if a, ok := artifacts[out.Highlights[i].HighlightNumber]; ok {
			out.Highlights[i].ClipURL = a.PublicURL
		}
	}
	return out
}
