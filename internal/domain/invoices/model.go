package invoices

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusSent     Status = "SENT"
	StatusPaid     Status = "PAID"
	StatusCanceled Status = "CANCELED"
)

// ParseStatus acepta el valor en cualquier combinación de mayúsculas.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusSent:
		return StatusSent, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusCanceled:
		return StatusCanceled, nil
	default:
		return "", fmt.Errorf("unknown invoice status %q", raw)
	}
}

type Invoice struct {
	ID        string
	PatientID string
	Date      time.Time
	Total     decimal.Decimal
	Status    Status
	Items     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
