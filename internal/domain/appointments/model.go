package appointments

import (
	"fmt"
	"strings"
	"time"

	"riavet-api/internal/domain/lifecycle"
)

// Status es el estado de una cita.
// @Enum PENDING, CONFIRMED, COMPLETED, CANCELED
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

// statusTable define las transiciones válidas de una cita.
// COMPLETED y CANCELED son terminales: sin salidas, ni siquiera a sí mismos.
var statusTable = lifecycle.Table[Status]{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
	StatusCompleted: nil,
	StatusCanceled:  nil,
}

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCanceled:
		return StatusCanceled, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// Appointment es una cita de la agenda. Solo el servicio muta Status,
// y únicamente por los caminos de statusTable.
type Appointment struct {
	ID             string
	PatientID      string
	VeterinarianID string
	ScheduledAt    time.Time
	Status         Status

	// Motivo libre registrado al cancelar; no se valida ni se interpreta.
	CancelReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}
