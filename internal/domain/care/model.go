package care

import "time"

// DateLayout es el formato de fecha calendario de una toma (ISO, sin hora).
const DateLayout = "2006-01-02"

// Interaction es la anotación de riesgo adjunta a un medicamento.
// Se reemplaza completa cada vez que termina un chequeo de interacciones.
type Interaction struct {
	Severity Severity
	Summary  string
	Detail   string
}

// Medicine representa un medicamento recetado (extraído por IA o ingresado a mano).
// Inmutable salvo Interaction.
type Medicine struct {
	ID   string
	Name string

	Dosage    string // texto libre: "500mg"
	Frequency string // texto libre: "cada 8 horas"

	// Timings son los slots del día en que se toma, en orden de declaración
	// (ej: "Morning", "Night").
	Timings []string

	DurationDays int

	Interaction *Interaction // nil si no hay interacción conocida
}

// Dose es una administración programada: un medicamento, una fecha, un slot.
type Dose struct {
	ID string

	MedicineID string
	// MedicineName va desnormalizado para que editar/borrar el medicamento
	// no deje huérfana la vista de la toma.
	MedicineName string

	Date   string // DateLayout, sin componente horario
	Slot   string
	Status DoseStatus
}

// HistoryEntry es el registro inmutable de un cambio de estado de una toma.
type HistoryEntry struct {
	ID string

	MedicineName string
	Slot         string
	DoseDate     string // fecha calendario de la toma (DateLayout)

	// ChangedAt es el instante real del cambio; no confundir con DoseDate.
	ChangedAt time.Time

	Status DoseStatus
}

// State es el agregado completo que se persiste como una sola unidad:
// se rehidrata entero al arrancar y se reescribe entero tras cada mutación.
type State struct {
	Medicines []Medicine
	Doses     []Dose

	// History va de más reciente a más antiguo, acotado a HistoryCapacity.
	History []HistoryEntry

	// Remedies son nombres de remedios caseros / de venta libre ingresados
	// por el usuario. Únicos (match exacto), conservando orden de ingreso.
	Remedies []string

	LastExtractionAt *time.Time
}

// Clone devuelve una copia del estado segura para lectores externos.
func (s State) Clone() State {
	out := State{
		Medicines: make([]Medicine, len(s.Medicines)),
		Doses:     append([]Dose(nil), s.Doses...),
		History:   append([]HistoryEntry(nil), s.History...),
		Remedies:  append([]string(nil), s.Remedies...),
	}
	for i, m := range s.Medicines {
		if m.Timings != nil {
			m.Timings = append([]string(nil), m.Timings...)
		}
		if m.Interaction != nil {
			ia := *m.Interaction
			m.Interaction = &ia
		}
		out.Medicines[i] = m
	}
	if s.LastExtractionAt != nil {
		t := *s.LastExtractionAt
		out.LastExtractionAt = &t
	}
	return out
}
