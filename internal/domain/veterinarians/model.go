package veterinarians

import (
	"strings"
	"time"
)

// Veterinarian representa el registro profesional del servicio de agenda.
// Email y LicenseNumber son únicos en todo el registro.
type Veterinarian struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	LicenseNumber  string
	Specialization string
	Active         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName lo calcula el backend; el front lo muestra tal cual.
func (v Veterinarian) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}
