package care

// DoseStatus define el ciclo de vida de una toma.
// @Enum pending, taken, missed
type DoseStatus string

const (
	DoseStatusPending DoseStatus = "pending"
	DoseStatusTaken   DoseStatus = "taken"
	DoseStatusMissed  DoseStatus = "missed"
)

// ValidDoseStatus indica si s es uno de los estados conocidos.
func ValidDoseStatus(s DoseStatus) bool {
	switch s {
	case DoseStatusPending, DoseStatusTaken, DoseStatusMissed:
		return true
	default:
		return false
	}
}

// Severity define la severidad de una interacción detectada.
// @Enum high, medium
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)
