package dian

import (
	"context"
	"errors"
	"testing"

	dianport "riavet-api/internal/ports/dian"
)

type testRepo struct {
	byInvoiceID map[string]SubmissionRecord
}

func newTestRepo() *testRepo {
	return &testRepo{byInvoiceID: map[string]SubmissionRecord{}}
}

func (r *testRepo) Create(ctx context.Context, rec SubmissionRecord) error {
	r.byInvoiceID[rec.InvoiceID] = rec
	return nil
}

func (r *testRepo) Update(ctx context.Context, rec SubmissionRecord) error {
	if _, ok := r.byInvoiceID[rec.InvoiceID]; !ok {
		return ErrNotFound
	}
	r.byInvoiceID[rec.InvoiceID] = rec
	return nil
}

func (r *testRepo) GetByInvoiceID(ctx context.Context, invoiceID string) (SubmissionRecord, error) {
	rec, ok := r.byInvoiceID[invoiceID]
	if !ok {
		return SubmissionRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) ExistsByInvoiceID(ctx context.Context, invoiceID string) (bool, error) {
	_, ok := r.byInvoiceID[invoiceID]
	return ok, nil
}

// testClient registra cada llamada; result/err se configuran por test.
type testClient struct {
	calls  int
	result dianport.Result
	err    error
}

func (c *testClient) Submit(ctx context.Context, sub dianport.Submission) (dianport.Result, error) {
	c.calls++
	return c.result, c.err
}

func TestService_Submit_Accepted(t *testing.T) {
	client := &testClient{result: dianport.Result{
		Accepted: true,
		DianCode: "DIAN-AB12CD34",
		Message:  "Factura aceptada por la DIAN",
	}}
	svc := NewService(newTestRepo(), client, nil)

	rec, err := svc.Submit(context.Background(), SubmitInput{
		InvoiceID:  "inv-1",
		XMLPayload: "<Invoice/>",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if rec.Status != StatusAccepted {
		t.Fatalf("expected ACCEPTED, got %s", rec.Status)
	}
	if rec.DianCode != "DIAN-AB12CD34" {
		t.Fatalf("unexpected dian code %q", rec.DianCode)
	}
	if client.calls != 1 {
		t.Fatalf("expected 1 client call, got %d", client.calls)
	}
}

func TestService_Submit_Rejected(t *testing.T) {
	client := &testClient{result: dianport.Result{
		Accepted: false,
		DianCode: "DIAN-99999999",
		Message:  "Factura rechazada: Formato XML incorrecto",
	}}
	svc := NewService(newTestRepo(), client, nil)

	rec, err := svc.Submit(context.Background(), SubmitInput{
		InvoiceID:  "inv-1",
		XMLPayload: "<Invoice/>",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if rec.Status != StatusRejected {
		t.Fatalf("expected REJECTED, got %s", rec.Status)
	}
	if rec.Message == "" {
		t.Fatal("expected rejection message")
	}
}

func TestService_Submit_ClientErrorStoresRejected(t *testing.T) {
	client := &testClient{err: errors.New("connection refused")}
	repo := newTestRepo()
	svc := NewService(repo, client, nil)

	rec, err := svc.Submit(context.Background(), SubmitInput{
		InvoiceID:  "inv-1",
		XMLPayload: "<Invoice/>",
	})
	if err != nil {
		t.Fatalf("Submit should not fail on client error, got %v", err)
	}
	if rec.Status != StatusRejected {
		t.Fatalf("expected REJECTED, got %s", rec.Status)
	}

	stored, err := svc.StatusByInvoiceID(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("StatusByInvoiceID returned error: %v", err)
	}
	if stored.Status != StatusRejected {
		t.Fatalf("expected REJECTED persisted, got %s", stored.Status)
	}
}

func TestService_Submit_DedupBeforeClientCall(t *testing.T) {
	client := &testClient{result: dianport.Result{Accepted: true, DianCode: "DIAN-AB12CD34"}}
	svc := NewService(newTestRepo(), client, nil)

	if _, err := svc.Submit(context.Background(), SubmitInput{
		InvoiceID:  "inv-1",
		XMLPayload: "<Invoice/>",
	}); err != nil {
		t.Fatalf("first Submit returned error: %v", err)
	}

	_, err := svc.Submit(context.Background(), SubmitInput{
		InvoiceID:  "inv-1",
		XMLPayload: "<Invoice/>",
	})
	if !errors.Is(err, ErrDuplicateInvoice) {
		t.Fatalf("expected ErrDuplicateInvoice, got %v", err)
	}
	// El duplicado nunca debe salir hacia la autoridad.
	if client.calls != 1 {
		t.Fatalf("expected 1 client call total, got %d", client.calls)
	}
}

func TestService_StatusByInvoiceID_NotFound(t *testing.T) {
	svc := NewService(newTestRepo(), &testClient{}, nil)
	if _, err := svc.StatusByInvoiceID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
