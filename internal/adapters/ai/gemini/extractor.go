package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"med-care-tracker/internal/ports/ai"
)

const extractPrompt = `You are reading a photo of a medical prescription.
Extract every medicine and reply with ONLY a JSON array, no prose:
[{"name": "...", "dosage": "500mg", "frequency": "twice a day",
"timings": ["Morning","Night"], "duration_days": 5}]
Use an empty array if you cannot read any medicine.`

// Extractor implementa ai.PrescriptionExtractor sobre el cliente Gemini.
type Extractor struct {
	client *Client
}

func NewExtractor(client *Client) *Extractor {
	return &Extractor{client: client}
}

type extractedDTO struct {
	Name         string   `json:"name"`
	Dosage       string   `json:"dosage"`
	Frequency    string   `json:"frequency"`
	Timings      []string `json:"timings"`
	DurationDays int      `json:"duration_days"`
}

func (e *Extractor) ExtractMedicines(ctx context.Context, image []byte, mimeType string) ([]ai.ExtractedMedicine, error) {
	if e == nil || e.client == nil {
		return nil, ErrNotConfigured
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrBadResponse)
	}

	mime := strings.TrimSpace(mimeType)
	if mime == "" {
		mime = "image/jpeg"
	}

	raw, err := e.client.generate(ctx, []part{
		{Text: extractPrompt},
		{InlineData: &inlineData{
			MimeType: mime,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	})
	if err != nil {
		return nil, err
	}

	var items []extractedDTO
	if err := json.Unmarshal([]byte(stripFences(raw)), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	out := make([]ai.ExtractedMedicine, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		out = append(out, ai.ExtractedMedicine{
			Name:         it.Name,
			Dosage:       it.Dosage,
			Frequency:    it.Frequency,
			Timings:      it.Timings,
			DurationDays: it.DurationDays,
		})
	}
	return out, nil
}
