package types

// HighlightSegment is one model-identified noteworthy moment in the source
// video. ClipURL is set only after the segment's clip was trimmed and
// uploaded; absence means trimming failed for that segment.
type HighlightSegment struct {
	HighlightNumber  int    `json:"highlight_number"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Reason           string `json:"reason"`
	BriefDescription string `json:"brief_description"`
	ClipURL          string `json:"clip_url,omitempty"`
}

// HighlightSet is the validated, ordered collection of highlight segments
// for one video. Order is the model's emission order and conveys ranking;
// nothing downstream may reorder or drop segments.
type HighlightSet struct {
	Highlights []HighlightSegment `json:"highlights"`
}

// ClipArtifact is the result of trimming one segment and uploading the cut.
type ClipArtifact struct {
	HighlightNumber int
	PublicURL       string
	StorageURI      string
}

// UploadRef points at the source video in durable storage.
type UploadRef struct {
	PublicURL  string
	StorageURI string
}
