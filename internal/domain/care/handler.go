package care

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/care", getCareHandler(svc))
	r.Post("/care/reset", resetCareHandler(svc))

	r.Post("/prescriptions/scan", scanPrescriptionHandler(svc))

	r.Post("/medicines", addMedicinesHandler(svc))
	r.Get("/doses", listDosesHandler(svc))
	r.Post("/doses/{doseID}/status", setDoseStatusHandler(svc))
	r.Get("/history", listHistoryHandler(svc))

	r.Post("/remedies", addRemedyHandler(svc))
	r.Delete("/remedies/{name}", removeRemedyHandler(svc))

	r.Post("/interactions/check", checkInteractionsHandler(svc))
}

// interactionResponse es la anotación de riesgo de un medicamento.
type interactionResponse struct {
	Severity string `json:"severity" enums:"high,medium"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail"`
}

// medicineResponse representa un medicamento devuelto por la API.
type medicineResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Dosage       string               `json:"dosage"`
	Frequency    string               `json:"frequency"`
	Timings      []string             `json:"timings"`
	DurationDays int                  `json:"duration_days"`
	Interaction  *interactionResponse `json:"interaction,omitempty"`
}

// doseResponse representa una toma programada.
type doseResponse struct {
	ID           string     `json:"id"`
	MedicineID   string     `json:"medicine_id"`
	MedicineName string     `json:"medicine_name"`
	Date         string     `json:"date"` // yyyy-mm-dd
	Slot         string     `json:"slot"`
	Status       DoseStatus `json:"status" enums:"pending,taken,missed"`
}

// historyEntryResponse es un cambio de estado registrado en el historial.
type historyEntryResponse struct {
	ID           string     `json:"id"`
	MedicineName string     `json:"medicine_name"`
	Slot         string     `json:"slot"`
	DoseDate     string     `json:"dose_date"`
	ChangedAt    time.Time  `json:"changed_at"`
	Status       DoseStatus `json:"status"`
}

// careStateResponse es el snapshot completo del agregado.
type careStateResponse struct {
	Medicines        []medicineResponse     `json:"medicines"`
	Doses            []doseResponse         `json:"doses"`
	History          []historyEntryResponse `json:"history"`
	Remedies         []string               `json:"remedies"`
	LastExtractionAt *time.Time             `json:"last_extraction_at,omitempty"`
}

// getCareHandler godoc
// @Summary Snapshot del estado de cuidado
// @Description Devuelve el agregado completo: medicamentos, tomas, historial (más reciente primero), remedios y marca de última extracción.
// @Tags care
// @Produce json
// @Success 200 {object} careStateResponse
// @Router /care [get]
func getCareHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, toStateResponse(svc.Store().Snapshot()))
	}
}

// resetCareHandler godoc
// @Summary Borrar todo
// @Description Resetea el agregado completo (medicamentos, tomas, historial, remedios, última extracción) a vacío.
// @Tags care
// @Produce json
// @Success 200 {object} careStateResponse
// @Router /care/reset [post]
func resetCareHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Store().ClearAll(r.Context())
		writeJSON(w, http.StatusOK, toStateResponse(svc.Store().Snapshot()))
	}
}

// scanRequest es la foto de la receta a extraer.
type scanRequest struct {
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"` // opcional, default image/jpeg
}

type scanResponse struct {
	Medicines []medicineResponse `json:"medicines"`
	Doses     []doseResponse     `json:"doses"`
}

// scanPrescriptionHandler godoc
// @Summary Escanear receta
// @Description Manda la foto al extractor de IA, da de alta los medicamentos leídos y genera el calendario de tomas de 10 días. Si no se pudo extraer nada, no se muta nada y responde 422 para que el cliente ofrezca reintentar.
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param payload body scanRequest true "Imagen en base64"
// @Success 201 {object} scanResponse
// @Failure 400 {string} string "invalid json / imagen vacía"
// @Failure 422 {string} string "nothing extracted"
// @Failure 502 {string} string "fallo del colaborador de extracción"
// @Failure 503 {string} string "extractor no configurado"
// @Router /prescriptions/scan [post]
func scanPrescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		image, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.ImageBase64))
		if err != nil || len(image) == 0 {
			http.Error(w, "image_base64 must be non-empty base64", http.StatusBadRequest)
			return
		}

		meds, err := svc.ScanPrescription(r.Context(), image, req.MimeType)
		if err != nil {
			switch {
			case errors.Is(err, ErrNothingExtracted):
				http.Error(w, "nothing extracted", http.StatusUnprocessableEntity)
			case errors.Is(err, ErrExtractorUnavailable):
				http.Error(w, "extractor not configured", http.StatusServiceUnavailable)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid input", http.StatusBadRequest)
			default:
				http.Error(w, "extraction failed", http.StatusBadGateway)
			}
			return
		}

		// Las tomas recién generadas son las de los medicamentos nuevos.
		snap := svc.Store().Snapshot()
		ids := make(map[string]bool, len(meds))
		for _, m := range meds {
			ids[m.ID] = true
		}
		doses := make([]doseResponse, 0)
		for _, d := range snap.Doses {
			if ids[d.MedicineID] {
				doses = append(doses, toDoseResponse(d))
			}
		}

		out := scanResponse{Medicines: make([]medicineResponse, 0, len(meds)), Doses: doses}
		for _, m := range meds {
			out.Medicines = append(out.Medicines, toMedicineResponse(m))
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

// medicineRequest es un medicamento de ingreso manual.
type medicineRequest struct {
	Name         string   `json:"name"`
	Dosage       string   `json:"dosage"`
	Frequency    string   `json:"frequency"`
	Timings      []string `json:"timings"`
	DurationDays int      `json:"duration_days"`
}

type addMedicinesRequest struct {
	Medicines []medicineRequest `json:"medicines"`
}

// addMedicinesHandler godoc
// @Summary Alta manual de medicamentos
// @Description Agrega medicamentos sin generar calendario de tomas (camino de ingreso directo).
// @Tags medicines
// @Accept json
// @Produce json
// @Param payload body addMedicinesRequest true "Medicamentos a agregar"
// @Success 201 {array} medicineResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /medicines [post]
func addMedicinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addMedicinesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		inputs := make([]MedicineInput, 0, len(req.Medicines))
		for _, m := range req.Medicines {
			inputs = append(inputs, MedicineInput{
				Name:         m.Name,
				Dosage:       m.Dosage,
				Frequency:    m.Frequency,
				Timings:      m.Timings,
				DurationDays: m.DurationDays,
			})
		}

		meds, err := svc.AddMedicines(r.Context(), inputs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out := make([]medicineResponse, 0, len(meds))
		for _, m := range meds {
			out = append(out, toMedicineResponse(m))
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

// listDosesHandler godoc
// @Summary Listar tomas
// @Description Lista las tomas programadas, opcionalmente filtradas por fecha calendario.
// @Tags doses
// @Produce json
// @Param date query string false "Fecha yyyy-mm-dd"
// @Success 200 {array} doseResponse
// @Failure 400 {string} string "date inválida"
// @Router /doses [get]
func listDosesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := strings.TrimSpace(r.URL.Query().Get("date"))
		if date != "" {
			if _, err := time.Parse(DateLayout, date); err != nil {
				http.Error(w, "date must be yyyy-mm-dd", http.StatusBadRequest)
				return
			}
		}

		snap := svc.Store().Snapshot()
		out := make([]doseResponse, 0, len(snap.Doses))
		for _, d := range snap.Doses {
			if date != "" && d.Date != date {
				continue
			}
			out = append(out, toDoseResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// doseStatusRequest es el estado deseado para una toma.
type doseStatusRequest struct {
	Status DoseStatus `json:"status" enums:"pending,taken,missed"`
}

type doseStatusResponse struct {
	Dose    *doseResponse `json:"dose,omitempty"`
	Changed bool          `json:"changed"`
}

// setDoseStatusHandler godoc
// @Summary Cambiar estado de una toma
// @Description Fija el estado de la toma (pending/taken/missed). Toma inexistente o estado ya vigente: no-op silencioso, changed=false, sin entrada de historial.
// @Tags doses
// @Accept json
// @Produce json
// @Param doseID path string true "ID de la toma"
// @Param payload body doseStatusRequest true "Estado deseado"
// @Success 200 {object} doseStatusResponse
// @Failure 400 {string} string "invalid json / status desconocido"
// @Router /doses/{doseID}/status [post]
func setDoseStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req doseStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if !ValidDoseStatus(req.Status) {
			http.Error(w, "status must be pending|taken|missed", http.StatusBadRequest)
			return
		}

		doseID := chi.URLParam(r, "doseID")
		d, changed := svc.Store().ToggleDose(r.Context(), doseID, req.Status)

		resp := doseStatusResponse{Changed: changed}
		if d.ID != "" {
			dr := toDoseResponse(d)
			resp.Dose = &dr
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// listHistoryHandler godoc
// @Summary Historial de cambios
// @Description Devuelve el historial de cambios de estado, más reciente primero, acotado a las últimas 100 entradas.
// @Tags history
// @Produce json
// @Success 200 {array} historyEntryResponse
// @Router /history [get]
func listHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := svc.Store().Snapshot()
		out := make([]historyEntryResponse, 0, len(snap.History))
		for _, h := range snap.History {
			out = append(out, toHistoryResponse(h))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// remedyRequest es el nombre de un remedio de venta libre.
type remedyRequest struct {
	Name string `json:"name"`
}

// addRemedyHandler godoc
// @Summary Agregar remedio
// @Description Agrega un remedio con semántica de conjunto: repetir el mismo nombre (match exacto) es no-op.
// @Tags remedies
// @Accept json
// @Produce json
// @Param payload body remedyRequest true "Nombre del remedio"
// @Success 200 {array} string "lista de remedios resultante"
// @Failure 400 {string} string "invalid json / nombre vacío"
// @Router /remedies [post]
func addRemedyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req remedyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}

		svc.Store().AddRemedy(r.Context(), name)
		writeJSON(w, http.StatusOK, svc.Store().Snapshot().Remedies)
	}
}

// removeRemedyHandler godoc
// @Summary Quitar remedio
// @Description Quita un remedio por nombre (match exacto). No-op si no estaba.
// @Tags remedies
// @Produce json
// @Param name path string true "Nombre del remedio"
// @Success 200 {array} string "lista de remedios resultante"
// @Router /remedies/{name} [delete]
func removeRemedyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Store().RemoveRemedy(r.Context(), chi.URLParam(r, "name"))
		writeJSON(w, http.StatusOK, svc.Store().Snapshot().Remedies)
	}
}

// checkInteractionsHandler godoc
// @Summary Chequear interacciones
// @Description Cruza medicamentos contra remedios vía el colaborador de IA y sobreescribe las anotaciones de interacción de todos los medicamentos. Sin medicamentos o sin remedios responde mapa vacío sin invocar al colaborador. Si el colaborador falla, las anotaciones existentes quedan intactas.
// @Tags interactions
// @Produce json
// @Success 200 {object} map[string]interactionResponse
// @Failure 502 {string} string "fallo del colaborador"
// @Failure 503 {string} string "checker no configurado"
// @Router /interactions/check [post]
func checkInteractionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		findings, err := svc.CheckInteractions(r.Context())
		if err != nil {
			if errors.Is(err, ErrCheckerUnavailable) {
				http.Error(w, "interaction checker not configured", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "interaction check failed", http.StatusBadGateway)
			return
		}

		out := make(map[string]interactionResponse, len(findings))
		for id, ia := range findings {
			out[id] = interactionResponse{
				Severity: string(ia.Severity),
				Summary:  ia.Summary,
				Detail:   ia.Detail,
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toMedicineResponse(m Medicine) medicineResponse {
	out := medicineResponse{
		ID:           m.ID,
		Name:         m.Name,
		Dosage:       m.Dosage,
		Frequency:    m.Frequency,
		Timings:      m.Timings,
		DurationDays: m.DurationDays,
	}
	if m.Interaction != nil {
		out.Interaction = &interactionResponse{
			Severity: string(m.Interaction.Severity),
			Summary:  m.Interaction.Summary,
			Detail:   m.Interaction.Detail,
		}
	}
	return out
}

func toDoseResponse(d Dose) doseResponse {
	return doseResponse{
		ID:           d.ID,
		MedicineID:   d.MedicineID,
		MedicineName: d.MedicineName,
		Date:         d.Date,
		Slot:         d.Slot,
		Status:       d.Status,
	}
}

func toHistoryResponse(h HistoryEntry) historyEntryResponse {
	return historyEntryResponse{
		ID:           h.ID,
		MedicineName: h.MedicineName,
		Slot:         h.Slot,
		DoseDate:     h.DoseDate,
		ChangedAt:    h.ChangedAt,
		Status:       h.Status,
	}
}

func toStateResponse(s State) careStateResponse {
	out := careStateResponse{
		Medicines:        make([]medicineResponse, 0, len(s.Medicines)),
		Doses:            make([]doseResponse, 0, len(s.Doses)),
		History:          make([]historyEntryResponse, 0, len(s.History)),
		Remedies:         s.Remedies,
		LastExtractionAt: s.LastExtractionAt,
	}
	for _, m := range s.Medicines {
		out.Medicines = append(out.Medicines, toMedicineResponse(m))
	}
	for _, d := range s.Doses {
		out.Doses = append(out.Doses, toDoseResponse(d))
	}
	for _, h := range s.History {
		out.History = append(out.History, toHistoryResponse(h))
	}
	return out
}

// writeJSON vive acá y no en un helper compartido: un solo módulo de
// handlers todavía no justifica un paquete común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
