package ai

import "context"

// PrescriptionExtractor recibe la foto de una receta y devuelve los
// medicamentos estructurados que el modelo pudo leer. Una lista vacía
// no es error del colaborador: significa "no se extrajo nada".
type PrescriptionExtractor interface {
	ExtractMedicines(ctx context.Context, image []byte, mimeType string) ([]ExtractedMedicine, error)
}
