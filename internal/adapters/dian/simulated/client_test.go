package simulated

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	dianport "riavet-api/internal/ports/dian"
)

func TestClient_Submit_DianCodeFormat(t *testing.T) {
	c := New(rand.New(rand.NewSource(1)), nil)

	res, err := c.Submit(context.Background(), dianport.Submission{
		InvoiceID:  "inv-1",
		XMLPayload: "<Invoice/>",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if !strings.HasPrefix(res.DianCode, "DIAN-") || len(res.DianCode) != len("DIAN-")+8 {
		t.Fatalf("unexpected dian code %q", res.DianCode)
	}
	if res.DianCode != strings.ToUpper(res.DianCode) {
		t.Fatalf("expected uppercase dian code, got %q", res.DianCode)
	}
	if res.Message == "" {
		t.Fatal("expected a message")
	}
}

func TestClient_Submit_HonorsContextCancellation(t *testing.T) {
	c := New(rand.New(rand.NewSource(1)), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// La latencia simulada es de al menos 500ms; el deadline gana.
	_, err := c.Submit(ctx, dianport.Submission{InvoiceID: "inv-1", XMLPayload: "<Invoice/>"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}
