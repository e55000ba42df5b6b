// Package snapshot define la forma persistida del agregado de cuidado:
// un único blob JSON con todo el estado. Lo comparten los adapters SQL
// (sqlite y postgres guardan el mismo payload, cambia solo la tabla).
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"med-care-tracker/internal/domain/care"
)

type interactionDTO struct {
	Severity string `json:"severity"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail"`
}

type medicineDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Dosage       string          `json:"dosage"`
	Frequency    string          `json:"frequency"`
	Timings      []string        `json:"timings"`
	DurationDays int             `json:"duration_days"`
	Interaction  *interactionDTO `json:"interaction,omitempty"`
}

type doseDTO struct {
	ID           string `json:"id"`
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	Date         string `json:"date"`
	Slot         string `json:"slot"`
	Status       string `json:"status"`
}

type historyEntryDTO struct {
	ID           string    `json:"id"`
	MedicineName string    `json:"medicine_name"`
	Slot         string    `json:"slot"`
	DoseDate     string    `json:"dose_date"`
	ChangedAt    time.Time `json:"changed_at"`
	Status       string    `json:"status"`
}

type stateDTO struct {
	Medicines        []medicineDTO     `json:"medicines"`
	Doses            []doseDTO         `json:"doses"`
	History          []historyEntryDTO `json:"history"`
	Remedies         []string          `json:"remedies"`
	LastExtractionAt *time.Time        `json:"last_extraction_at,omitempty"`
}

// Encode serializa el estado completo a un blob JSON.
func Encode(s care.State) ([]byte, error) {
	dto := stateDTO{
		Medicines:        make([]medicineDTO, 0, len(s.Medicines)),
		Doses:            make([]doseDTO, 0, len(s.Doses)),
		History:          make([]historyEntryDTO, 0, len(s.History)),
		Remedies:         append([]string{}, s.Remedies...),
		LastExtractionAt: s.LastExtractionAt,
	}

	for _, m := range s.Medicines {
		md := medicineDTO{
			ID:           m.ID,
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Timings:      append([]string{}, m.Timings...),
			DurationDays: m.DurationDays,
		}
		if m.Interaction != nil {
			md.Interaction = &interactionDTO{
				Severity: string(m.Interaction.Severity),
				Summary:  m.Interaction.Summary,
				Detail:   m.Interaction.Detail,
			}
		}
		dto.Medicines = append(dto.Medicines, md)
	}

	for _, d := range s.Doses {
		dto.Doses = append(dto.Doses, doseDTO{
			ID:           d.ID,
			MedicineID:   d.MedicineID,
			MedicineName: d.MedicineName,
			Date:         d.Date,
			Slot:         d.Slot,
			Status:       string(d.Status),
		})
	}

	for _, h := range s.History {
		dto.History = append(dto.History, historyEntryDTO{
			ID:           h.ID,
			MedicineName: h.MedicineName,
			Slot:         h.Slot,
			DoseDate:     h.DoseDate,
			ChangedAt:    h.ChangedAt,
			Status:       string(h.Status),
		})
	}

	return json.Marshal(dto)
}

// Decode rehidrata el estado desde el blob. Un payload no parseable es
// error: el Store decide qué hacer (hoy: warn y arrancar vacío).
func Decode(raw []byte) (care.State, error) {
	var dto stateDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return care.State{}, fmt.Errorf("snapshot: decode: %w", err)
	}

	out := care.State{
		Medicines:        make([]care.Medicine, 0, len(dto.Medicines)),
		Doses:            make([]care.Dose, 0, len(dto.Doses)),
		History:          make([]care.HistoryEntry, 0, len(dto.History)),
		Remedies:         append([]string{}, dto.Remedies...),
		LastExtractionAt: dto.LastExtractionAt,
	}

	for _, m := range dto.Medicines {
		med := care.Medicine{
			ID:           m.ID,
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Timings:      append([]string{}, m.Timings...),
			DurationDays: m.DurationDays,
		}
		if m.Interaction != nil {
			med.Interaction = &care.Interaction{
				Severity: care.Severity(m.Interaction.Severity),
				Summary:  m.Interaction.Summary,
				Detail:   m.Interaction.Detail,
			}
		}
		out.Medicines = append(out.Medicines, med)
	}

	for _, d := range dto.Doses {
		out.Doses = append(out.Doses, care.Dose{
			ID:           d.ID,
			MedicineID:   d.MedicineID,
			MedicineName: d.MedicineName,
			Date:         d.Date,
			Slot:         d.Slot,
			Status:       care.DoseStatus(d.Status),
		})
	}

	for _, h := range dto.History {
		out.History = append(out.History, care.HistoryEntry{
			ID:           h.ID,
			MedicineName: h.MedicineName,
			Slot:         h.Slot,
			DoseDate:     h.DoseDate,
			ChangedAt:    h.ChangedAt,
			Status:       care.DoseStatus(h.Status),
		})
	}

	return out, nil
}
