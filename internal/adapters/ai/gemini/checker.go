package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"med-care-tracker/internal/ports/ai"
)

const checkPromptHeader = `You are checking for risky combinations between
prescribed medicines and over-the-counter remedies the user takes.
Reply with ONLY a JSON array, no prose. Include an entry ONLY for medicines
with a real known interaction with one of the remedies:
[{"medicine_id": "...", "severity": "high|medium",
"summary": "one line", "detail": "longer explanation"}]
Use an empty array when there is nothing relevant.`

// Checker implementa ai.InteractionChecker sobre el cliente Gemini.
type Checker struct {
	client *Client
}

func NewChecker(client *Client) *Checker {
	return &Checker{client: client}
}

type findingDTO struct {
	MedicineID string `json:"medicine_id"`
	Severity   string `json:"severity"`
	Summary    string `json:"summary"`
	Detail     string `json:"detail"`
}

func (c *Checker) CheckInteractions(ctx context.Context, meds []ai.MedicineRef, remedies []string) (map[string]ai.InteractionFinding, error) {
	if c == nil || c.client == nil {
		return nil, ErrNotConfigured
	}

	var sb strings.Builder
	sb.WriteString(checkPromptHeader)
	sb.WriteString("\n\nMedicines:\n")
	for _, m := range meds {
		fmt.Fprintf(&sb, "- id=%s name=%s dosage=%s\n", m.ID, m.Name, m.Dosage)
	}
	sb.WriteString("\nRemedies:\n")
	for _, r := range remedies {
		fmt.Fprintf(&sb, "- %s\n", r)
	}

	raw, err := c.client.generate(ctx, []part{{Text: sb.String()}})
	if err != nil {
		return nil, err
	}

	var items []findingDTO
	if err := json.Unmarshal([]byte(stripFences(raw)), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	out := make(map[string]ai.InteractionFinding, len(items))
	for _, it := range items {
		id := strings.TrimSpace(it.MedicineID)
		if id == "" {
			continue
		}
		out[id] = ai.InteractionFinding{
			Severity: it.Severity,
			Summary:  it.Summary,
			Detail:   it.Detail,
		}
	}
	return out, nil
}
