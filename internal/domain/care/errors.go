package care

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNothingExtracted indica que el colaborador de extracción no devolvió
	// ningún medicamento (o falló). Es recuperable: no hubo mutación de estado
	// y el caller puede ofrecer reintentar.
	ErrNothingExtracted = errors.New("nothing extracted")
)
