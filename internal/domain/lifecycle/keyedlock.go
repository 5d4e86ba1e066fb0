package lifecycle

import "sync"

// KeyedLock serializa operaciones por id de entidad.
// Dos transiciones concurrentes sobre la misma cita/sesión se ejecutan una
// después de la otra: la segunda siempre ve el estado que dejó la primera.
// El valor cero está listo para usar.
type KeyedLock struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Lock bloquea la key y devuelve la función para liberarla.
// Las entradas se eliminan cuando nadie las espera, así el mapa no crece
// con cada id que pasó por el servicio.
func (l *KeyedLock) Lock(key string) (unlock func()) {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = make(map[string]*lockEntry)
	}
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
