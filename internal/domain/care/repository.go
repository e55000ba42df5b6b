package care

import "context"

// Repository es el puerto de persistencia del snapshot completo de State.
// Load devuelve (estado, true) si había snapshot guardado, o (vacío, false)
// si todavía no existe ninguno.
type Repository interface {
	Load(ctx context.Context) (State, bool, error)
	Save(ctx context.Context, s State) error
}
