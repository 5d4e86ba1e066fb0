// Package lifecycle contiene el motor de transiciones de estado compartido
// por citas y sesiones de telemedicina: una tabla dirigida de transiciones
// permitidas y un lock por entidad para serializar read-modify-write.
package lifecycle

// Table mapea cada estado a los estados alcanzables desde él.
// Un estado sin salidas es terminal.
type Table[S comparable] map[S][]S

// Allowed indica si la transición from -> to está en la tabla.
// No hay auto-transiciones implícitas: from -> from solo es válido
// si la tabla lo lista explícitamente (ninguna de las nuestras lo hace).
func (t Table[S]) Allowed(from, to S) bool {
	for _, s := range t[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal indica si el estado no tiene transiciones de salida.
func (t Table[S]) Terminal(from S) bool {
	return len(t[from]) == 0
}
