package clinicalrecords

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	byID map[string]ClinicalRecord
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]ClinicalRecord{}}
}

func (r *testRepo) Create(ctx context.Context, rec ClinicalRecord) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Update(ctx context.Context, rec ClinicalRecord) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (ClinicalRecord, error) {
	rec, ok := r.byID[id]
	if !ok {
		return ClinicalRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]ClinicalRecord, error) {
	out := make([]ClinicalRecord, 0)
	for _, rec := range r.byID {
		if filter.PatientID != "" && rec.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *testRepo) ListByVeterinarian(ctx context.Context, veterinarianID string) ([]ClinicalRecord, error) {
	out := make([]ClinicalRecord, 0)
	for _, rec := range r.byID {
		if rec.VeterinarianID == veterinarianID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestService_Create_DefaultsActive(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	rec, err := svc.Create(context.Background(), CreateInput{
		PatientID:      "pat-1",
		VeterinarianID: "vet-1",
		Diagnosis:      "Otitis externa",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Status != StatusActive {
		t.Fatalf("expected ACTIVE, got %s", rec.Status)
	}
}

func TestService_Create_InvalidStatus(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	_, err := svc.Create(context.Background(), CreateInput{
		PatientID:      "pat-1",
		VeterinarianID: "vet-1",
		Diagnosis:      "Otitis externa",
		Status:         "CLOSED",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestService_Create_RequiresDiagnosis(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	_, err := svc.Create(context.Background(), CreateInput{
		PatientID:      "pat-1",
		VeterinarianID: "vet-1",
		Diagnosis:      "   ",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_List_CombinedFilters(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	mk := func(patientID, status string) {
		t.Helper()
		if _, err := svc.Create(context.Background(), CreateInput{
			PatientID:      patientID,
			VeterinarianID: "vet-1",
			Diagnosis:      "Control",
			Status:         status,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	mk("pat-1", "ACTIVE")
	mk("pat-1", "COMPLETED")
	mk("pat-2", "ACTIVE")

	got, err := svc.List(context.Background(), "pat-1", "active")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].PatientID != "pat-1" || got[0].Status != StatusActive {
		t.Fatalf("expected single pat-1/ACTIVE record, got %#v", got)
	}

	all, err := svc.List(context.Background(), "", "")
	if err != nil {
		t.Fatalf("List all returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records unfiltered, got %d", len(all))
	}
}

func TestService_ListByVeterinarian(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.Create(context.Background(), CreateInput{
		PatientID: "pat-1", VeterinarianID: "vet-1", Diagnosis: "Control",
	}); err != nil {
		t.Fatalf("Create #1: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{
		PatientID: "pat-2", VeterinarianID: "vet-2", Diagnosis: "Control",
	}); err != nil {
		t.Fatalf("Create #2: %v", err)
	}

	got, err := svc.ListByVeterinarian(context.Background(), "vet-2")
	if err != nil {
		t.Fatalf("ListByVeterinarian returned error: %v", err)
	}
	if len(got) != 1 || got[0].VeterinarianID != "vet-2" {
		t.Fatalf("expected only vet-2 records, got %#v", got)
	}
}

func TestService_Update_FullReplace(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	rec, err := svc.Create(context.Background(), CreateInput{
		PatientID:      "pat-1",
		VeterinarianID: "vet-1",
		Diagnosis:      "Otitis externa",
		Procedures:     "Lavado ótico",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Update(context.Background(), rec.ID, UpdateInput{
		Diagnosis: "Otitis externa resuelta",
		Status:    "completed",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Diagnosis != "Otitis externa resuelta" {
		t.Fatalf("unexpected diagnosis %q", got.Diagnosis)
	}
	if got.Status != StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", got.Status)
	}
	// Escritura completa: procedures no enviado queda vacío.
	if got.Procedures != "" {
		t.Fatalf("expected procedures cleared, got %q", got.Procedures)
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := NewService(newTestRepo(), nil)
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
