package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"med-care-tracker/internal/ports/ai"
)

// fakeTransport responde siempre con el mismo status/body y captura el request.
type fakeTransport struct {
	status int
	body   string

	lastURL  string
	lastBody []byte
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.lastURL = req.URL.String()
	if req.Body != nil {
		f.lastBody, _ = io.ReadAll(req.Body)
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(f.body))),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func candidateJSON(t *testing.T, text string) string {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal fake response: %v", err)
	}
	return string(b)
}

func newTestClient(t *testing.T, tr *fakeTransport) *Client {
	t.Helper()
	c, err := NewClient(Config{APIKey: "test-key", Transport: tr})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c
}

func TestExtractor_ParsesFencedJSON(t *testing.T) {
	payload := "```json\n[{\"name\":\"Amoxicillin\",\"dosage\":\"500mg\",\"frequency\":\"twice a day\",\"timings\":[\"Morning\",\"Night\"],\"duration_days\":7}]\n```"
	tr := &fakeTransport{status: http.StatusOK, body: candidateJSON(t, payload)}

	ex := NewExtractor(newTestClient(t, tr))
	got, err := ex.ExtractMedicines(context.Background(), []byte("photo"), "image/png")
	if err != nil {
		t.Fatalf("ExtractMedicines error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 medicine, got %d", len(got))
	}
	m := got[0]
	if m.Name != "Amoxicillin" || m.Dosage != "500mg" || len(m.Timings) != 2 || m.DurationDays != 7 {
		t.Fatalf("unexpected medicine: %#v", m)
	}
}

func TestExtractor_EmptyArrayMeansNothingExtracted(t *testing.T) {
	tr := &fakeTransport{status: http.StatusOK, body: candidateJSON(t, "[]")}

	ex := NewExtractor(newTestClient(t, tr))
	got, err := ex.ExtractMedicines(context.Background(), []byte("photo"), "")
	if err != nil {
		t.Fatalf("ExtractMedicines error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %#v", got)
	}
}

func TestExtractor_UpstreamErrorIsWrapped(t *testing.T) {
	tr := &fakeTransport{status: http.StatusInternalServerError, body: `{"error":"boom"}`}

	ex := NewExtractor(newTestClient(t, tr))
	_, err := ex.ExtractMedicines(context.Background(), []byte("photo"), "")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestExtractor_NonJSONReplyIsBadResponse(t *testing.T) {
	tr := &fakeTransport{status: http.StatusOK, body: candidateJSON(t, "I could not read the image, sorry.")}

	ex := NewExtractor(newTestClient(t, tr))
	_, err := ex.ExtractMedicines(context.Background(), []byte("photo"), "")
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
}

func TestExtractor_SendsInlineImage(t *testing.T) {
	tr := &fakeTransport{status: http.StatusOK, body: candidateJSON(t, "[]")}

	ex := NewExtractor(newTestClient(t, tr))
	if _, err := ex.ExtractMedicines(context.Background(), []byte{0x01, 0x02}, "image/png"); err != nil {
		t.Fatalf("ExtractMedicines error: %v", err)
	}

	var req struct {
		Contents []struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MimeType string `json:"mime_type"`
					Data     string `json:"data"`
				} `json:"inline_data"`
			} `json:"parts"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(tr.lastBody, &req); err != nil {
		t.Fatalf("request body not json: %v", err)
	}
	if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 2 {
		t.Fatalf("expected prompt + image parts, got %s", string(tr.lastBody))
	}
	img := req.Contents[0].Parts[1].InlineData
	if img == nil || img.MimeType != "image/png" || img.Data == "" {
		t.Fatalf("expected inline image data, got %s", string(tr.lastBody))
	}
}

func TestChecker_BuildsFindingsMap(t *testing.T) {
	payload := `[{"medicine_id":"m1","severity":"high","summary":"bleeding risk","detail":"long"},
	             {"medicine_id":"","severity":"medium","summary":"dropped"}]`
	tr := &fakeTransport{status: http.StatusOK, body: candidateJSON(t, payload)}

	ch := NewChecker(newTestClient(t, tr))
	got, err := ch.CheckInteractions(context.Background(),
		[]ai.MedicineRef{{ID: "m1", Name: "Warfarin", Dosage: "5mg"}},
		[]string{"St John's Wort"},
	)
	if err != nil {
		t.Fatalf("CheckInteractions error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected entries without medicine_id dropped, got %#v", got)
	}
	if f := got["m1"]; f.Severity != "high" || f.Summary != "bleeding risk" {
		t.Fatalf("unexpected finding: %#v", f)
	}
}

func TestClient_NotConfiguredWithoutAPIKey(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if c.IsConfigured() {
		t.Fatalf("client without api key must not be configured")
	}

	_, err = NewExtractor(c).ExtractMedicines(context.Background(), []byte("x"), "")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
