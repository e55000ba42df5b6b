package ai

// ExtractedMedicine es un medicamento tal como lo devuelve el colaborador
// de extracción, antes de asignarle identidad en el dominio.
type ExtractedMedicine struct {
	Name         string
	Dosage       string
	Frequency    string
	Timings      []string
	DurationDays int
}

// MedicineRef es la referencia mínima de un medicamento que se envía al
// chequeo de interacciones.
type MedicineRef struct {
	ID     string
	Name   string
	Dosage string
}

// InteractionFinding es el hallazgo del chequeo para un medicamento.
type InteractionFinding struct {
	Severity string // "high" | "medium"
	Summary  string
	Detail   string
}
