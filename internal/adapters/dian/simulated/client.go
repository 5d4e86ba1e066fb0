// Package simulated emula la autoridad tributaria para entornos de desarrollo:
// latencia de red artificial y un veredicto aleatorio con 90% de aceptación.
package simulated

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dianport "riavet-api/internal/ports/dian"
)

var rejectionReasons = []string{
	"Información del contribuyente inválida",
	"Formato XML incorrecto",
	"NIT no autorizado para facturación electrónica",
	"Numeración fuera de rango autorizado",
	"Datos fiscales inconsistentes",
}

type Client struct {
	mu  sync.Mutex
	rng *rand.Rand
	log *zap.Logger
}

// New recibe el generador inyectado; los tests pasan uno con semilla fija.
func New(rng *rand.Rand, log *zap.Logger) *Client {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{rng: rng, log: log}
}

func (c *Client) Submit(ctx context.Context, sub dianport.Submission) (dianport.Result, error) {
	c.log.Info("simulating dian submission", zap.String("invoice_id", sub.InvoiceID))

	c.mu.Lock()
	latency := time.Duration(c.rng.Intn(1000)+500) * time.Millisecond
	accepted := c.rng.Float64() < 0.9
	reason := rejectionReasons[c.rng.Intn(len(rejectionReasons))]
	c.mu.Unlock()

	select {
	case <-time.After(latency):
	case <-ctx.Done():
		return dianport.Result{}, ctx.Err()
	}

	result := dianport.Result{
		Accepted: accepted,
		DianCode: generateDianCode(),
	}
	if accepted {
		result.Message = "Factura aceptada por la DIAN"
	} else {
		result.Message = "Factura rechazada: " + reason
	}

	c.log.Info("simulated dian response",
		zap.String("dian_code", result.DianCode),
		zap.Bool("accepted", result.Accepted),
	)
	return result, nil
}

func generateDianCode() string {
	return "DIAN-" + strings.ToUpper(uuid.NewString()[:8])
}
