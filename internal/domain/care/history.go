package care

// HistoryCapacity es el tope duro del historial de cambios.
const HistoryCapacity = 100

// ledger es el historial acotado, ordenado de más reciente a más antiguo.
// La capacidad se respeta en la inserción (se desaloja el más antiguo),
// no con un recorte posterior: la memoria queda acotada aunque el usuario
// togglee a alta frecuencia.
type ledger struct {
	capacity int
	entries  []HistoryEntry
}

func newLedger(capacity int) *ledger {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &ledger{
		capacity: capacity,
		entries:  make([]HistoryEntry, 0, capacity),
	}
}

// record antepone e al frente del historial. Si el buffer está lleno,
// primero desaloja la entrada más antigua (la cola).
func (l *ledger) record(e HistoryEntry) {
	if len(l.entries) >= l.capacity {
		l.entries = l.entries[:l.capacity-1]
	}
	l.entries = append([]HistoryEntry{e}, l.entries...)
}

// list devuelve una copia del historial, más reciente primero.
func (l *ledger) list() []HistoryEntry {
	return append([]HistoryEntry(nil), l.entries...)
}

func (l *ledger) len() int { return len(l.entries) }

func (l *ledger) reset() {
	l.entries = l.entries[:0]
}

// seed carga entradas rehidratadas (ya en orden más reciente primero),
// truncando a la capacidad si el snapshot venía más largo.
func (l *ledger) seed(entries []HistoryEntry) {
	l.entries = l.entries[:0]
	for _, e := range entries {
		if len(l.entries) >= l.capacity {
			break
		}
		l.entries = append(l.entries, e)
	}
}
