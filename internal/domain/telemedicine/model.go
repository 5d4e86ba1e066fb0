package telemedicine

import (
	"time"

	"riavet-api/internal/domain/lifecycle"
)

// Status es el estado de una sesión de telemedicina.
// @Enum SCHEDULED, IN_PROGRESS, COMPLETED, CANCELED
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCanceled   Status = "CANCELED"
)

// statusTable documenta el grafo de la sesión. A diferencia de las citas,
// este dominio no expone un setStatus arbitrario: solo Start y End recorren
// estas aristas. CANCELED existe en el enum pero ninguna operación lo
// alcanza (no hay cancelación de sesiones definida).
var statusTable = lifecycle.Table[Status]{
	StatusScheduled:  {StatusInProgress},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  nil,
	StatusCanceled:   nil,
}

// Session es una consulta remota. StartedAt/EndedAt se setean exactamente
// una vez, en la transición que los produce, y nunca se reescriben.
type Session struct {
	ID             string
	PatientID      string
	VeterinarianID string
	ScheduledAt    time.Time
	StartedAt      *time.Time
	EndedAt        *time.Time
	Status         Status
	MeetingURL     string
	Notes          string

	CreatedAt time.Time
	UpdatedAt time.Time
}
