// Package extract drives the generative model with a schema constraint and
// turns its raw output into a validated highlight set.
package extract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"highlight-reel/internal/domain/highlights"
	"highlight-reel/internal/ports"
	"highlight-reel/internal/types"
)

//go:embed prompt.md
var instruction string

// ErrModel reports an underlying transport or model fault. It aborts the
// run immediately: no retries are attempted here, and no partial highlight
// data is usable. The validation failure modes are the sentinels in the
// highlights package.
var ErrModel = errors.New("model request failed")

type Service struct {
	model ports.ModelGateway
}

func New(model ports.ModelGateway) Service {
	return Service{model: model}
}

// Extract asks the model for highlights of the video at storageURI and
// validates the response. On success the returned set has 3 to 5 segments
// with all required fields present, in model emission order.
func (s Service) Extract(ctx context.Context, storageURI string) (types.HighlightSet, error) {
	raw, err := s.model.GenerateHighlights(ctx, instruction, storageURI)
	if err != nil {
		return types.HighlightSet{}, fmt.Errorf("%w: %v", ErrModel, err)
	}

	set, err := highlights.Validate(raw)
	if err != nil {
		return types.HighlightSet{}, err
	}
	return set, nil
}
