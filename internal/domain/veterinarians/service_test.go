package veterinarians

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Veterinarian
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Veterinarian{}}
}

func (r *testRepo) Create(ctx context.Context, v Veterinarian) error {
	if v.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[v.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) Update(ctx context.Context, v Veterinarian) error {
	if _, ok := r.byID[v.ID]; !ok {
		return ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Veterinarian, error) {
	v, ok := r.byID[id]
	if !ok {
		return Veterinarian{}, ErrNotFound
	}
	return v, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (Veterinarian, error) {
	for _, v := range r.byID {
		if strings.EqualFold(v.Email, email) {
			return v, nil
		}
	}
	return Veterinarian{}, ErrNotFound
}

func (r *testRepo) GetByLicenseNumber(ctx context.Context, licenseNumber string) (Veterinarian, error) {
	for _, v := range r.byID {
		if v.LicenseNumber == licenseNumber {
			return v, nil
		}
	}
	return Veterinarian{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context, onlyActive bool) ([]Veterinarian, error) {
	out := make([]Veterinarian, 0)
	for _, v := range r.byID {
		if onlyActive && !v.Active {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *testRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	for _, v := range r.byID {
		if v.ID == excludeID {
			continue
		}
		if strings.EqualFold(v.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *testRepo) ExistsByLicenseNumber(ctx context.Context, licenseNumber, excludeID string) (bool, error) {
	for _, v := range r.byID {
		if v.ID == excludeID {
			continue
		}
		if v.LicenseNumber == licenseNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func validInput() CreateInput {
	return CreateInput{
		FirstName:     "Laura",
		LastName:      "Gomez",
		Email:         "laura@riavet.co",
		LicenseNumber: "VET-001",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsActiveTrue(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	v, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !v.Active {
		t.Fatalf("expected active by default")
	}
	if v.CreatedAt != now || v.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
	if v.FullName() != "Laura Gomez" {
		t.Fatalf("unexpected full name %q", v.FullName())
	}
}

func TestService_Create_NormalizesEmail(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	in := validInput()
	in.Email = "  Laura@Riavet.CO "
	v, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if v.Email != "laura@riavet.co" {
		t.Fatalf("expected normalized email, got %q", v.Email)
	}
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	in := validInput()
	in.Email = "LAURA@riavet.co" // distinta capitalización, mismo email
	in.LicenseNumber = "VET-002"
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestService_Create_DuplicateLicense(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	in := validInput()
	in.Email = "otra@riavet.co"
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrDuplicateLicense) {
		t.Fatalf("expected ErrDuplicateLicense, got %v", err)
	}
}

func TestService_Update_ExcludesOwnRecordFromUniqueness(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	v, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Re-enviar el mismo email/licencia del propio registro no es duplicado.
	phone := "3001234567"
	updated, err := svc.Update(context.Background(), v.ID, UpdateInput{
		Email:       &v.Email,
		PhoneNumber: &phone,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.PhoneNumber != phone {
		t.Fatalf("expected phone updated, got %q", updated.PhoneNumber)
	}
}

func TestService_Update_RejectsEmailTakenByOther(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("Create #1 returned error: %v", err)
	}

	other := validInput()
	other.Email = "pedro@riavet.co"
	other.LicenseNumber = "VET-002"
	v2, err := svc.Create(context.Background(), other)
	if err != nil {
		t.Fatalf("Create #2 returned error: %v", err)
	}

	taken := "laura@riavet.co"
	_, err = svc.Update(context.Background(), v2.ID, UpdateInput{Email: &taken})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestService_Update_FreedEmailCanBeReused(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	v1, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create #1 returned error: %v", err)
	}

	other := validInput()
	other.Email = "pedro@riavet.co"
	other.LicenseNumber = "VET-002"
	v2, err := svc.Create(context.Background(), other)
	if err != nil {
		t.Fatalf("Create #2 returned error: %v", err)
	}

	// v1 libera su email; v2 lo toma.
	freed := "laura@riavet.co"
	moved := "laura.nueva@riavet.co"
	if _, err := svc.Update(context.Background(), v1.ID, UpdateInput{Email: &moved}); err != nil {
		t.Fatalf("Update freeing email returned error: %v", err)
	}
	if _, err := svc.Update(context.Background(), v2.ID, UpdateInput{Email: &freed}); err != nil {
		t.Fatalf("Update reusing freed email returned error: %v", err)
	}
}

func TestService_Deactivate(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	v, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	later := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return later }

	got, err := svc.Deactivate(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}
	if got.Active {
		t.Fatalf("expected inactive after deactivate")
	}
	if got.UpdatedAt != later {
		t.Fatalf("expected UpdatedAt refreshed on deactivate")
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_OnlyActive(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	v1, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create #1 returned error: %v", err)
	}
	other := validInput()
	other.Email = "pedro@riavet.co"
	other.LicenseNumber = "VET-002"
	if _, err := svc.Create(context.Background(), other); err != nil {
		t.Fatalf("Create #2 returned error: %v", err)
	}
	if _, err := svc.Deactivate(context.Background(), v1.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	active, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(active) != 1 || active[0].Email != "pedro@riavet.co" {
		t.Fatalf("expected only the active vet, got %#v", active)
	}
}
