// Package extract turns account screenshots into raw transaction records by
// calling the Gemini vision model.
//
// The model is an external collaborator: nothing here validates the content
// of what it returns beyond its structure. The consolidation engine decides
// what is usable (see licai.Normalize) and what is a duplicate.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/yunzhu/licai"
)

// DefaultModel is the Gemini model used for extraction.
const DefaultModel = "gemini-2.0-flash"

// prompt asks for the exact contract the engine tolerates: a strict JSON
// array where every field except amount may be absent.
const prompt = `You are a transaction extractor for screenshots of Chinese banking and investment apps.

Task:
- Read ALL deposit and earning rows visible in the attached screenshot.
- Output STRICT JSON only (no comments, no trailing commas, no extra text).
- Output a JSON array of objects.

Each object may have these fields (omit a field you cannot determine, never invent a value):
- "date": string, ISO format "YYYY-MM-DD" (required)
- "amount": number, negative for a loss (required)
- "type": "deposit" or "earning"
- "productName": string, the product's name as printed
- "institution": string, the bank or broker name
- "currency": "CNY", "USD" or "HKD"
- "assetClass": string, e.g. "基金", "股票", "存款"
- "description": string, the row's label text

Rules:
- An earnings row (收益, 昨日收益, 持有收益) is type "earning".
- A purchase or transfer-in row (买入, 转入, 存入) is type "deposit".
- Do NOT wrap the response in code fences.
- Output must begin with "[" and end with "]". Return [] when nothing is legible.`

// Client calls the Gemini API to extract records from screenshots.
type Client struct {
	genai *genai.Client
	model string
	log   zerolog.Logger
}

// NewClient creates a Client. The API key is read from the environment by
// the genai SDK (GEMINI_API_KEY or GOOGLE_API_KEY).
func NewClient(ctx context.Context, log zerolog.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{genai: client, model: DefaultModel, log: log}, nil
}

// WithModel overrides the extraction model.
func (c *Client) WithModel(model string) *Client {
	c.model = model
	return c
}

// ExtractImage sends one screenshot to the model and returns the extracted
// records, structurally parsed but otherwise unvalidated.
func (c *Client) ExtractImage(ctx context.Context, image []byte, mimeType string) ([]licai.ExtractedRecord, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
			},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	records, err := ParseRecords(raw)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int("records", len(records)).Str("model", c.model).Msg("extracted records from screenshot")
	return records, nil
}

// ParseRecords parses the model's raw text output into records, stripping
// markdown fences and surrounding junk the model sometimes adds despite the
// instructions.
func ParseRecords(raw string) ([]licai.ExtractedRecord, error) {
	clean := cleanModelJSON(raw)
	var records []licai.ExtractedRecord
	if err := json.Unmarshal([]byte(clean), &records); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w\nraw response: %s", err, raw)
	}
	return records, nil
}

func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// If there is still junk around the JSON array, keep only the part from
	// the first '[' to the last ']'.
	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

// MIMEType guesses the image MIME type from a filename.
func MIMEType(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png", nil
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".webp":
		return "image/webp", nil
	default:
		return "", fmt.Errorf("unsupported screenshot format %q", filepath.Ext(filename))
	}
}
