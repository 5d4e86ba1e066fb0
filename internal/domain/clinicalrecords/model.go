package clinicalrecords

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusPending   Status = "PENDING"
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusPending:
		return StatusPending, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown record status %q", raw)
	}
}

// ClinicalRecord es la historia clínica de una atención. Los campos de texto
// largos (diagnóstico, procedimientos, órdenes) se guardan como texto libre,
// igual que los digita el veterinario.
type ClinicalRecord struct {
	ID             string
	PatientID      string
	VeterinarianID string
	Diagnosis      string
	Procedures     string
	Attachments    string
	MedicalOrders  string
	Prescription   string
	FollowUpDate   *time.Time
	Status         Status

	CreatedAt time.Time
}
