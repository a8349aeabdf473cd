package extract

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/dvloznov/mail-processors/internal/statement"
	"github.com/dvloznov/mail-processors/internal/taxi"
)

// Client extracts typed records from document content via Gemini, using a
// JSON response schema so the model output is machine-checkable.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a Gemini-backed extraction client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("extract.NewClient: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("extract.NewClient: create genai client: %w", err)
	}
	return &Client{genai: client, model: model}, nil
}

// Statement sends a decrypted statement PDF to the model and returns the
// parsed extraction. Transport failures are retried per the backoff policy;
// a *ValidationError means the model response did not conform to the schema
// and is returned without retrying.
func (c *Client) Statement(ctx context.Context, pdfBytes []byte) (*statement.Extraction, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: statementPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: "application/pdf",
						Data:     pdfBytes,
					},
				},
			},
		},
	}

	raw, err := c.generate(ctx, contents, statementSchema())
	if err != nil {
		return nil, err
	}
	return parseExtraction(raw)
}

// Trip sends normalized receipt text to the model and returns the parsed
// trip. Error semantics match Statement.
func (c *Client) Trip(ctx context.Context, content string) (*taxi.Trip, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: tripPrompt + "\n\n" + content},
			},
		},
	}

	raw, err := c.generate(ctx, contents, tripSchema())
	if err != nil {
		return nil, err
	}
	return parseTrip(raw)
}

// generate performs one schema-constrained model call, retrying transient
// transport failures. Exactly one successful response text is returned, so
// retries can never feed duplicate extractions downstream.
func (c *Client) generate(ctx context.Context, contents []*genai.Content, schema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr[float32](0.1),
	}

	var text string
	err := retryTransport(ctx, func() error {
		resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, cfg)
		if err != nil {
			return fmt.Errorf("generate content: %w", err)
		}
		text = resp.Text()
		return nil
	})
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", validationErrorf("empty response from model")
	}
	return text, nil
}
