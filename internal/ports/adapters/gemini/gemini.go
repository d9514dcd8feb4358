package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"highlight-reel/internal/domain/highlights"
)

const defaultModel = "gemini-1.5-pro"

type Adapter struct {
	client *genai.Client
	model  string
}

// NewClient builds the shared genai client. Construct it once at process
// start and pass it down; tests substitute the ModelGateway port instead.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

func New(client *genai.Client, model string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	return &Adapter{client: client, model: model}
}

// GenerateHighlights sends the instruction plus a reference to the uploaded
// video and asks for JSON conforming to the highlights response schema.
// The declared schema makes conforming output the common case; callers must
// still validate, the constraint is not a guarantee.
func (a *Adapter) GenerateHighlights(ctx context.Context, instruction, storageURI string) ([]byte, error) {
	m := a.client.GenerativeModel(a.model)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = responseSchema()

	resp, err := m.GenerateContent(ctx,
		genai.Text(instruction),
		genai.FileData{MIMEType: "video/mp4", URI: storageURI},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errors.New("gemini: no text parts in response")
	}
	return b.String(), nil
}

// responseSchema is the generation-time constraint: an object with a
// highlights array of 3 to 5 fully-populated segment objects. The genai
// schema cannot express array cardinality, so the bounds live in the
// description and are enforced by the validator.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"highlights"},
		Properties: map[string]*genai.Schema{
			"highlights": {
				Type: genai.TypeArray,
				Description: fmt.Sprintf("The %d to %d most noteworthy segments, best first.",
					highlights.MinHighlights, highlights.MaxHighlights),
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Required: []string{
						"highlight_number", "start_time", "end_time",
						"reason", "brief_description",
					},
					Properties: map[string]*genai.Schema{
						"highlight_number": {
							Type:        genai.TypeInteger,
							Description: "The sequential number of the highlight",
						},
						"start_time": {
							Type:        genai.TypeString,
							Description: "The timestamp where the highlight begins",
						},
						"end_time": {
							Type:        genai.TypeString,
							Description: "The timestamp where the highlight ends",
						},
						"reason": {
							Type:        genai.TypeString,
							Description: "Explanation of why this segment was chosen",
						},
						"brief_description": {
							Type:        genai.TypeString,
							Description: "Very brief summary of the highlight content",
						},
					},
				},
			},
		},
	}
}
