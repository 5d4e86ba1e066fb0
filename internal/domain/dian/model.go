package dian

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusSent     Status = "SENT"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// SubmissionRecord es el rastro persistido de una radicación ante la DIAN:
// se crea en PENDING antes de llamar a la autoridad y se actualiza con el
// veredicto (ACCEPTED/REJECTED) una vez responde.
type SubmissionRecord struct {
	ID         string
	InvoiceID  string
	XMLPayload string
	Status     Status
	DianCode   string
	Message    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
