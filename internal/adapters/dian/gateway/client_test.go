package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dianport "riavet-api/internal/ports/dian"
)

func TestClient_Submit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/invoices" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Errorf("expected api key header, got %q", got)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["invoiceId"] != "inv-1" {
			t.Errorf("unexpected invoiceId %q", body["invoiceId"])
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"dianCode": "DIAN-AB12CD34",
			"message":  "Factura aceptada por la DIAN",
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL, "secret", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	res, err := c.Submit(context.Background(), dianport.Submission{
		InvoiceID:  "inv-1",
		XMLPayload: "<Invoice/>",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !res.Accepted || res.DianCode != "DIAN-AB12CD34" {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestClient_Submit_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(srv.URL, "", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := c.Submit(context.Background(), dianport.Submission{
		InvoiceID:  "inv-1",
		XMLPayload: "<Invoice/>",
	}); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}
