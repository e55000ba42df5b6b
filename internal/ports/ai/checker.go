package ai

import "context"

// InteractionChecker cruza los medicamentos recetados contra los remedios
// ingresados por el usuario y devuelve hallazgos por ID de medicamento.
// Un medicamento sin entrada en el mapa no tiene interacción conocida.
type InteractionChecker interface {
	CheckInteractions(ctx context.Context, meds []MedicineRef, remedies []string) (map[string]InteractionFinding, error)
}
