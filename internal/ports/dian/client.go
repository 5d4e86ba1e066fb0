// Package dian define el puerto hacia la autoridad tributaria. Los adaptadores
// (gateway HTTP real, simulador local) viven en internal/adapters/dian.
package dian

import "context"

// Submission es la factura electrónica a radicar ante la autoridad.
type Submission struct {
	InvoiceID  string
	XMLPayload string
}

// Result es la respuesta de la autoridad. Accepted=false con error nil es un
// rechazo de negocio (la radicación llegó pero fue devuelta con causa).
type Result struct {
	Accepted bool
	DianCode string
	Message  string
}

type Client interface {
	Submit(ctx context.Context, sub Submission) (Result, error)
}
