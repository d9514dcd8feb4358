package ports

import (
	"context"
	"io"

	"highlight-reel/internal/types"
)

// Storage persists blobs durably and returns references usable downstream
// without additional auth. Keys derived from keyHint must be
// collision-resistant across runs.
type Storage interface {
	Put(ctx context.Context, r io.Reader, keyHint string) (types.UploadRef, error)
}

// ModelGateway asks the generative model to identify highlights in the
// video at storageURI, constrained to the highlights output schema.
// The raw bytes are untrusted until validated.
type ModelGateway interface {
	GenerateHighlights(ctx context.Context, instruction, storageURI string) ([]byte, error)
}

// Trimmer cuts one time range out of a local source video. Cut points snap
// to the nearest preceding keyframe in the default stream-copy mode, so the
// produced clip may start up to one keyframe interval early.
type Trimmer interface {
	Trim(ctx context.Context, inPath, start, end, outPath string) error
}
