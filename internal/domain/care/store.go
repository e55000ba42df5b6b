package care

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"med-care-tracker/internal/platform/logger"
)

// Store es la única fuente de verdad del agregado State.
// Se construye una vez al arrancar el proceso con un Repository inyectado;
// cada mutación se aplica completa en memoria, se persiste el snapshot
// entero y recién después se notifica a los suscriptores.
//
// Todas las operaciones son totales: no devuelven error. Un fallo de
// persistencia se loguea pero nunca deja el estado en memoria a medias.
type Store struct {
	mu   sync.Mutex
	repo Repository
	log  logger.Logger
	now  func() time.Time

	medicines []Medicine
	doses     []Dose
	history   *ledger
	remedies  []string

	lastExtractionAt *time.Time

	subs []func(State)
}

func NewStore(repo Repository, log logger.Logger) *Store {
	s := &Store{
		repo:      repo,
		log:       log,
		now:       time.Now,
		medicines: make([]Medicine, 0),
		doses:     make([]Dose, 0),
		history:   newLedger(HistoryCapacity),
		remedies:  make([]string, 0),
	}
	s.rehydrate()
	return s
}

// rehydrate carga el snapshot persistido (si existe). Un snapshot ilegible
// o incompatible no es fatal: se loguea y se arranca vacío.
func (s *Store) rehydrate() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	st, ok, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn("care: stored snapshot unreadable, starting empty", map[string]any{
			"error": err.Error(),
		})
		return
	}
	if !ok {
		return
	}

	if st.Medicines != nil {
		s.medicines = st.Medicines
	}
	if st.Doses != nil {
		s.doses = st.Doses
	}
	s.history.seed(st.History)
	if st.Remedies != nil {
		s.remedies = st.Remedies
	}
	s.lastExtractionAt = st.LastExtractionAt
}

// Subscribe registra un callback que recibe cada nuevo snapshot tras una
// mutación confirmada. La notificación es síncrona y en orden de mutación;
// el callback no debe llamar de vuelta al Store.
func (s *Store) Subscribe(fn func(State)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot devuelve una copia del estado actual.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AddMedicines agrega medicamentos sin generar calendario
// (camino de ingreso manual).
func (s *Store) AddMedicines(ctx context.Context, list []Medicine) {
	if len(list) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.medicines = append(s.medicines, list...)
	s.commitLocked(ctx)
}

// GenerateSchedule agrega los medicamentos y las tomas de los próximos
// ScheduleHorizonDays días, y marca el instante de la última extracción.
// Siempre agrega, nunca reemplaza: re-extraer la misma receta acumula
// un segundo juego de medicamentos y tomas (decisión registrada en DESIGN.md).
func (s *Store) GenerateSchedule(ctx context.Context, list []Medicine) {
	if len(list) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.medicines = append(s.medicines, list...)
	s.doses = append(s.doses, BuildSchedule(list, now)...)
	s.lastExtractionAt = &now

	s.commitLocked(ctx)
}

// ToggleDose fija el estado de una toma. Es un no-op silencioso si el ID
// no existe, si el estado pedido no es válido, o si la toma ya está en ese
// estado (ni historial ni persistencia en esos casos). Devuelve la toma
// resultante y si hubo cambio.
func (s *Store) ToggleDose(ctx context.Context, doseID string, status DoseStatus) (Dose, bool) {
	if !ValidDoseStatus(status) {
		return Dose{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.doses {
		if s.doses[i].ID == doseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Dose{}, false
	}
	if s.doses[idx].Status == status {
		return s.doses[idx], false
	}

	s.doses[idx].Status = status
	d := s.doses[idx]

	s.history.record(HistoryEntry{
		ID:           uuid.NewString(),
		MedicineName: d.MedicineName,
		Slot:         d.Slot,
		DoseDate:     d.Date,
		ChangedAt:    s.now(),
		Status:       status,
	})

	s.commitLocked(ctx)
	return d, true
}

// AddRemedy agrega un remedio con semántica de conjunto: si ya existe
// (match exacto, sensible a mayúsculas) es un no-op. Nombres en blanco
// se ignoran.
func (s *Store) AddRemedy(ctx context.Context, name string) {
	if name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.remedies {
		if r == name {
			return
		}
	}
	s.remedies = append(s.remedies, name)
	s.commitLocked(ctx)
}

// RemoveRemedy quita un remedio por nombre. No-op si no estaba.
func (s *Store) RemoveRemedy(ctx context.Context, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.remedies {
		if r == name {
			s.remedies = append(s.remedies[:i], s.remedies[i+1:]...)
			s.commitLocked(ctx)
			return
		}
	}
}

// UpdateInteractions reescribe las anotaciones de interacción de TODOS los
// medicamentos: si el medicamento aparece en findings se reemplaza entera,
// si no aparece se limpia. Es una pasada de sobreescritura total, no un
// merge incremental.
func (s *Store) UpdateInteractions(ctx context.Context, findings map[string]Interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.medicines {
		if ia, ok := findings[s.medicines[i].ID]; ok {
			ia := ia
			s.medicines[i].Interaction = &ia
		} else {
			s.medicines[i].Interaction = nil
		}
	}
	s.commitLocked(ctx)
}

// ClearAll resetea el agregado completo a su estado inicial.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.medicines = make([]Medicine, 0)
	s.doses = make([]Dose, 0)
	s.history.reset()
	s.remedies = make([]string, 0)
	s.lastExtractionAt = nil

	s.commitLocked(ctx)
}

func (s *Store) snapshotLocked() State {
	st := State{
		Medicines:        s.medicines,
		Doses:            s.doses,
		History:          s.history.list(),
		Remedies:         s.remedies,
		LastExtractionAt: s.lastExtractionAt,
	}
	return st.Clone()
}

// commitLocked persiste el snapshot y notifica suscriptores.
// Se llama con el mutex tomado, siempre después de aplicar la mutación
// completa en memoria: pase lo que pase con la persistencia, nunca queda
// un estado a medio aplicar.
func (s *Store) commitLocked(ctx context.Context) {
	snap := s.snapshotLocked()

	if err := s.repo.Save(ctx, snap); err != nil {
		s.log.Error("care: persist snapshot failed", map[string]any{
			"error": err.Error(),
		})
	}

	for _, fn := range s.subs {
		fn(snap)
	}
}
