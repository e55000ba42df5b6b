package router_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	mem "med-care-tracker/internal/adapters/storage/memory"
	"med-care-tracker/internal/platform/logger"
	"med-care-tracker/internal/ports/ai"
	"med-care-tracker/internal/router"
)

type scriptedExtractor struct {
	result []ai.ExtractedMedicine
	err    error
}

func (s *scriptedExtractor) ExtractMedicines(ctx context.Context, image []byte, mimeType string) ([]ai.ExtractedMedicine, error) {
	return s.result, s.err
}

type scriptedChecker struct {
	result map[string]ai.InteractionFinding
	err    error
}

func (s *scriptedChecker) CheckInteractions(ctx context.Context, meds []ai.MedicineRef, remedies []string) (map[string]ai.InteractionFinding, error) {
	return s.result, s.err
}

func newTestServer(t *testing.T, ex ai.PrescriptionExtractor, ch ai.InteractionChecker) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Extractor: ex,
		Checker:   ch,
		Repo:      mem.NewCareRepo(),
		Log:       logger.Noop(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_ScanToggleHistory(t *testing.T) {
	ex := &scriptedExtractor{result: []ai.ExtractedMedicine{
		{Name: "Amoxicillin", Dosage: "500mg", Frequency: "twice a day", Timings: []string{"Morning", "Night"}, DurationDays: 7},
	}}
	ch := &scriptedChecker{}
	ts := newTestServer(t, ex, ch)

	// 1) Escanear receta
	st, body := doReq(t, ts.URL, "POST", "/prescriptions/scan", map[string]any{
		"image_base64": base64.StdEncoding.EncodeToString([]byte("fake-photo")),
		"mime_type":    "image/jpeg",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 scan, got %d body=%s", st, string(body))
	}

	var scan struct {
		Medicines []struct {
			ID string `json:"id"`
		} `json:"medicines"`
		Doses []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"doses"`
	}
	_ = json.Unmarshal(body, &scan)
	if len(scan.Medicines) != 1 {
		t.Fatalf("expected 1 medicine, body=%s", string(body))
	}
	if len(scan.Doses) != 20 {
		t.Fatalf("expected 20 doses (2 slots x 10 days), got %d", len(scan.Doses))
	}

	doseID := scan.Doses[0].ID

	// 2) Marcar toma
	st, body = doReq(t, ts.URL, "POST", "/doses/"+doseID+"/status", map[string]any{"status": "taken"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 toggle, got %d body=%s", st, string(body))
	}
	var toggled struct {
		Changed bool `json:"changed"`
		Dose    struct {
			Status string `json:"status"`
		} `json:"dose"`
	}
	_ = json.Unmarshal(body, &toggled)
	if !toggled.Changed || toggled.Dose.Status != "taken" {
		t.Fatalf("expected changed taken dose, body=%s", string(body))
	}

	// 3) Repetir el mismo estado: no-op
	st, body = doReq(t, ts.URL, "POST", "/doses/"+doseID+"/status", map[string]any{"status": "taken"})
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	_ = json.Unmarshal(body, &toggled)
	if toggled.Changed {
		t.Fatalf("expected no-op on same status, body=%s", string(body))
	}

	// 4) Historial: una sola entrada, la más reciente primero
	st, body = doReq(t, ts.URL, "GET", "/history", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 history, got %d", st)
	}
	var history []struct {
		MedicineName string `json:"medicine_name"`
		Status       string `json:"status"`
	}
	_ = json.Unmarshal(body, &history)
	if len(history) != 1 || history[0].Status != "taken" || history[0].MedicineName != "Amoxicillin" {
		t.Fatalf("unexpected history: %s", string(body))
	}

	// 5) Toma inexistente: no-op silencioso
	st, body = doReq(t, ts.URL, "POST", "/doses/nope/status", map[string]any{"status": "missed"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 silent no-op, got %d", st)
	}
	_ = json.Unmarshal(body, &toggled)
	if toggled.Changed {
		t.Fatalf("unknown dose must not change state")
	}
}

func TestHTTP_Scan_NothingExtracted(t *testing.T) {
	ts := newTestServer(t, &scriptedExtractor{result: nil}, nil)

	st, _ := doReq(t, ts.URL, "POST", "/prescriptions/scan", map[string]any{
		"image_base64": base64.StdEncoding.EncodeToString([]byte("blurry")),
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 nothing extracted, got %d", st)
	}

	// Sin mutación: el snapshot sigue vacío.
	st, body := doReq(t, ts.URL, "GET", "/care", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 care, got %d", st)
	}
	var care struct {
		Medicines []any `json:"medicines"`
		Doses     []any `json:"doses"`
	}
	_ = json.Unmarshal(body, &care)
	if len(care.Medicines) != 0 || len(care.Doses) != 0 {
		t.Fatalf("failed scan must not mutate state: %s", string(body))
	}
}

func TestHTTP_Scan_UpstreamFailure(t *testing.T) {
	ts := newTestServer(t, &scriptedExtractor{err: errors.New("model down")}, nil)

	st, _ := doReq(t, ts.URL, "POST", "/prescriptions/scan", map[string]any{
		"image_base64": base64.StdEncoding.EncodeToString([]byte("photo")),
	})
	if st != http.StatusBadGateway {
		t.Fatalf("expected 502 on upstream failure, got %d", st)
	}
}

func TestHTTP_Remedies_SetSemantics(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	st, body := doReq(t, ts.URL, "POST", "/remedies", map[string]any{"name": "Ginger"})
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	st, body = doReq(t, ts.URL, "POST", "/remedies", map[string]any{"name": "Ginger"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 on duplicate, got %d", st)
	}

	var remedies []string
	_ = json.Unmarshal(body, &remedies)
	if len(remedies) != 1 {
		t.Fatalf("expected set semantics, got %v", remedies)
	}

	st, body = doReq(t, ts.URL, "DELETE", "/remedies/Ginger", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 delete, got %d", st)
	}
	_ = json.Unmarshal(body, &remedies)
	if len(remedies) != 0 {
		t.Fatalf("expected empty remedies, got %v", remedies)
	}
}

func TestHTTP_Interactions_ShortCircuitAndOverwrite(t *testing.T) {
	ch := &scriptedChecker{}
	ex := &scriptedExtractor{result: []ai.ExtractedMedicine{
		{Name: "Warfarin", Dosage: "5mg", Timings: []string{"Morning"}},
	}}
	ts := newTestServer(t, ex, ch)

	// Sin medicamentos ni remedios: mapa vacío.
	st, body := doReq(t, ts.URL, "POST", "/interactions/check", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 short-circuit, got %d", st)
	}
	var findings map[string]struct {
		Severity string `json:"severity"`
	}
	_ = json.Unmarshal(body, &findings)
	if len(findings) != 0 {
		t.Fatalf("expected empty mapping, got %s", string(body))
	}

	// Con medicamento y remedio: el hallazgo del checker se aplica.
	_, body = doReq(t, ts.URL, "POST", "/prescriptions/scan", map[string]any{
		"image_base64": base64.StdEncoding.EncodeToString([]byte("photo")),
	})
	var scan struct {
		Medicines []struct {
			ID string `json:"id"`
		} `json:"medicines"`
	}
	_ = json.Unmarshal(body, &scan)
	medID := scan.Medicines[0].ID

	doReq(t, ts.URL, "POST", "/remedies", map[string]any{"name": "St John's Wort"})
	ch.result = map[string]ai.InteractionFinding{
		medID: {Severity: "high", Summary: "bleeding risk", Detail: "detail"},
	}

	st, body = doReq(t, ts.URL, "POST", "/interactions/check", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 check, got %d body=%s", st, string(body))
	}
	_ = json.Unmarshal(body, &findings)
	if findings[medID].Severity != "high" {
		t.Fatalf("expected high severity finding, got %s", string(body))
	}

	// La anotación quedó en el snapshot.
	_, body = doReq(t, ts.URL, "GET", "/care", nil)
	var care struct {
		Medicines []struct {
			Interaction *struct {
				Severity string `json:"severity"`
			} `json:"interaction"`
		} `json:"medicines"`
	}
	_ = json.Unmarshal(body, &care)
	if care.Medicines[0].Interaction == nil || care.Medicines[0].Interaction.Severity != "high" {
		t.Fatalf("expected annotation persisted in snapshot: %s", string(body))
	}
}

func TestHTTP_Reset_ClearsEverything(t *testing.T) {
	ex := &scriptedExtractor{result: []ai.ExtractedMedicine{
		{Name: "A", Timings: []string{"Morning"}},
	}}
	ts := newTestServer(t, ex, nil)

	doReq(t, ts.URL, "POST", "/prescriptions/scan", map[string]any{
		"image_base64": base64.StdEncoding.EncodeToString([]byte("photo")),
	})
	doReq(t, ts.URL, "POST", "/remedies", map[string]any{"name": "Ginger"})

	st, body := doReq(t, ts.URL, "POST", "/care/reset", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 reset, got %d", st)
	}
	var care struct {
		Medicines []any `json:"medicines"`
		Doses     []any `json:"doses"`
		History   []any `json:"history"`
		Remedies  []any `json:"remedies"`
	}
	_ = json.Unmarshal(body, &care)
	if len(care.Medicines) != 0 || len(care.Doses) != 0 || len(care.History) != 0 || len(care.Remedies) != 0 {
		t.Fatalf("expected empty aggregate after reset: %s", string(body))
	}
}

func TestHTTP_Doses_FilterByDate(t *testing.T) {
	ex := &scriptedExtractor{result: []ai.ExtractedMedicine{
		{Name: "A", Timings: []string{"Morning", "Night"}},
	}}
	ts := newTestServer(t, ex, nil)

	_, body := doReq(t, ts.URL, "POST", "/prescriptions/scan", map[string]any{
		"image_base64": base64.StdEncoding.EncodeToString([]byte("photo")),
	})
	var scan struct {
		Doses []struct {
			Date string `json:"date"`
		} `json:"doses"`
	}
	_ = json.Unmarshal(body, &scan)
	today := scan.Doses[0].Date

	st, body := doReq(t, ts.URL, "GET", "/doses?date="+today, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 doses, got %d", st)
	}
	var doses []struct {
		Date string `json:"date"`
	}
	_ = json.Unmarshal(body, &doses)
	if len(doses) != 2 {
		t.Fatalf("expected 2 doses for %s, got %d", today, len(doses))
	}

	st, _ = doReq(t, ts.URL, "GET", "/doses?date=not-a-date", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", st)
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
