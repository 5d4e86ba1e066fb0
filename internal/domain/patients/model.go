package patients

import "time"

// Patient es el animal atendido en la clínica. Un paciente desactivado
// (Active=false) queda fuera de todas las lecturas: la desactivación es el
// resultado de un merge de duplicados, no un borrado.
type Patient struct {
	ID        string
	Name      string
	Species   string
	Breed     string
	BirthDate *time.Time
	OwnerID   string
	Active    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
