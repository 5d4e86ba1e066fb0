package owners

import "time"

// Owner es el propietario humano de uno o más pacientes.
// Email es único cuando no está vacío (el teléfono-only es común en recepción).
type Owner struct {
	ID       string
	FullName string
	Phone    string
	Email    string
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
