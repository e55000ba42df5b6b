package care

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"med-care-tracker/internal/platform/logger"
	"med-care-tracker/internal/ports/ai"
)

var (
	// ErrExtractorUnavailable / ErrCheckerUnavailable: el colaborador de IA
	// no está configurado en este proceso.
	ErrExtractorUnavailable = errors.New("prescription extractor not available")
	ErrCheckerUnavailable   = errors.New("interaction checker not available")
)

// Service es la frontera de orquestación con los colaboradores externos
// (extracción de recetas y chequeo de interacciones). Todos los errores de
// colaborador se cortan acá: hacia adentro del Store solo entran mutaciones
// ya validadas, y un fallo nunca deja estado a medias.
type Service struct {
	store     *Store
	extractor ai.PrescriptionExtractor
	checker   ai.InteractionChecker
	log       logger.Logger
}

func NewService(store *Store, extractor ai.PrescriptionExtractor, checker ai.InteractionChecker, log logger.Logger) *Service {
	return &Service{
		store:     store,
		extractor: extractor,
		checker:   checker,
		log:       log,
	}
}

// Store expone el contenedor de estado (lecturas y mutaciones directas).
func (s *Service) Store() *Store { return s.store }

// MedicineInput es el dato crudo de un medicamento (extraído o manual).
type MedicineInput struct {
	Name         string
	Dosage       string
	Frequency    string
	Timings      []string
	DurationDays int
}

// AddMedicines da de alta medicamentos por ingreso directo, sin generar
// calendario de tomas.
func (s *Service) AddMedicines(ctx context.Context, inputs []MedicineInput) ([]Medicine, error) {
	meds, err := buildMedicines(inputs)
	if err != nil {
		return nil, err
	}
	s.store.AddMedicines(ctx, meds)
	return meds, nil
}

// ScanPrescription manda la imagen al colaborador de extracción y, si hubo
// resultados, da de alta los medicamentos y genera su calendario de tomas.
// Fallo del colaborador o cero resultados: no se muta nada y el caller
// recibe un error distinguible para ofrecer reintento.
func (s *Service) ScanPrescription(ctx context.Context, image []byte, mimeType string) ([]Medicine, error) {
	if s.extractor == nil {
		return nil, ErrExtractorUnavailable
	}
	if len(image) == 0 {
		return nil, ErrInvalidInput
	}

	extracted, err := s.extractor.ExtractMedicines(ctx, image, mimeType)
	if err != nil {
		s.log.Warn("care: extraction failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("extract medicines: %w", err)
	}

	inputs := make([]MedicineInput, 0, len(extracted))
	for _, e := range extracted {
		inputs = append(inputs, MedicineInput{
			Name:         e.Name,
			Dosage:       e.Dosage,
			Frequency:    e.Frequency,
			Timings:      e.Timings,
			DurationDays: e.DurationDays,
		})
	}

	meds, err := buildMedicines(inputs)
	if err != nil || len(meds) == 0 {
		return nil, ErrNothingExtracted
	}

	s.store.GenerateSchedule(ctx, meds)
	return meds, nil
}

// CheckInteractions cruza medicamentos contra remedios vía el colaborador y
// aplica el resultado como sobreescritura total de anotaciones.
// Sin medicamentos o sin remedios: corto circuito, mapa vacío, el
// colaborador NO se invoca y las anotaciones existentes quedan como están.
// Fallo del colaborador: error al caller, anotaciones intactas.
func (s *Service) CheckInteractions(ctx context.Context) (map[string]Interaction, error) {
	snap := s.store.Snapshot()
	if len(snap.Medicines) == 0 || len(snap.Remedies) == 0 {
		return map[string]Interaction{}, nil
	}

	if s.checker == nil {
		return nil, ErrCheckerUnavailable
	}

	refs := make([]ai.MedicineRef, 0, len(snap.Medicines))
	for _, m := range snap.Medicines {
		refs = append(refs, ai.MedicineRef{ID: m.ID, Name: m.Name, Dosage: m.Dosage})
	}

	findings, err := s.checker.CheckInteractions(ctx, refs, snap.Remedies)
	if err != nil {
		s.log.Warn("care: interaction check failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("check interactions: %w", err)
	}

	result := make(map[string]Interaction, len(findings))
	for id, f := range findings {
		result[id] = Interaction{
			Severity: parseSeverity(f.Severity),
			Summary:  f.Summary,
			Detail:   f.Detail,
		}
	}

	s.store.UpdateInteractions(ctx, result)
	return result, nil
}

// buildMedicines normaliza entradas y les asigna identidad. Entradas sin
// nombre o sin slots se descartan; si no sobrevive ninguna con inputs no
// vacíos, es ErrInvalidInput.
func buildMedicines(inputs []MedicineInput) ([]Medicine, error) {
	meds := make([]Medicine, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}

		timings := make([]string, 0, len(in.Timings))
		for _, t := range in.Timings {
			if t = strings.TrimSpace(t); t != "" {
				timings = append(timings, t)
			}
		}
		if len(timings) == 0 {
			continue
		}

		meds = append(meds, Medicine{
			ID:           uuid.NewString(),
			Name:         name,
			Dosage:       strings.TrimSpace(in.Dosage),
			Frequency:    strings.TrimSpace(in.Frequency),
			Timings:      timings,
			DurationDays: in.DurationDays,
		})
	}

	if len(inputs) > 0 && len(meds) == 0 {
		return nil, ErrInvalidInput
	}
	return meds, nil
}

func parseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return SeverityHigh
	default:
		// Severidad desconocida: se degrada a medium en vez de descartar
		// el hallazgo.
		return SeverityMedium
	}
}
