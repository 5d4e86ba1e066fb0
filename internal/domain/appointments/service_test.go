package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"riavet-api/internal/domain/veterinarians"
)

// -------------------------
// Test repo + vet directory
// -------------------------

type testRepo struct {
	mu   sync.Mutex
	byID map[string]Appointment
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Appointment{}}
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) ListByVeterinarian(ctx context.Context, veterinarianID string) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Appointment, 0)
	for _, a := range r.byID {
		if a.VeterinarianID == veterinarianID {
			out = append(out, a)
		}
	}
	return out, nil
}

type testVets struct {
	byID map[string]veterinarians.Veterinarian
}

func (d *testVets) GetByID(ctx context.Context, id string) (veterinarians.Veterinarian, error) {
	v, ok := d.byID[id]
	if !ok {
		return veterinarians.Veterinarian{}, veterinarians.ErrNotFound
	}
	return v, nil
}

func newService(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	vets := &testVets{byID: map[string]veterinarians.Veterinarian{
		"vet-1": {ID: "vet-1", Active: true},
		"vet-2": {ID: "vet-2", Active: false},
	}}
	return NewService(repo, vets, nil), repo
}

func createPending(t *testing.T, svc *Service) Appointment {
	t.Helper()
	a, err := svc.Create(context.Background(), CreateInput{
		PatientID:      "pat-1",
		VeterinarianID: "vet-1",
		ScheduledAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return a
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_StartsPending(t *testing.T) {
	svc, _ := newService(t)

	now := time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a := createPending(t, svc)
	if a.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", a.Status)
	}
	if a.CreatedAt != now || a.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_UnknownVeterinarian(t *testing.T) {
	svc, repo := newService(t)

	_, err := svc.Create(context.Background(), CreateInput{
		PatientID:      "pat-1",
		VeterinarianID: "vet-missing",
		ScheduledAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrVeterinarianNotFound) {
		t.Fatalf("expected ErrVeterinarianNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestService_Create_InactiveVeterinarian(t *testing.T) {
	svc, repo := newService(t)

	_, err := svc.Create(context.Background(), CreateInput{
		PatientID:      "pat-1",
		VeterinarianID: "vet-2",
		ScheduledAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrVeterinarianInactive) {
		t.Fatalf("expected ErrVeterinarianInactive, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestService_UpdateStatus_ValidPath(t *testing.T) {
	svc, _ := newService(t)
	a := createPending(t, svc)

	a2, err := svc.UpdateStatus(context.Background(), a.ID, StatusConfirmed)
	if err != nil {
		t.Fatalf("PENDING->CONFIRMED returned error: %v", err)
	}
	if a2.Status != StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", a2.Status)
	}

	a3, err := svc.UpdateStatus(context.Background(), a.ID, StatusCompleted)
	if err != nil {
		t.Fatalf("CONFIRMED->COMPLETED returned error: %v", err)
	}
	if a3.Status != StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", a3.Status)
	}
}

func TestService_UpdateStatus_RejectsInvalidPairs(t *testing.T) {
	svc, _ := newService(t)

	cases := []struct {
		name    string
		prepare func(t *testing.T) string // devuelve id en el estado deseado
		target  Status
	}{
		{
			name: "pending to completed skips confirmation",
			prepare: func(t *testing.T) string {
				return createPending(t, svc).ID
			},
			target: StatusCompleted,
		},
		{
			name: "confirmed back to pending",
			prepare: func(t *testing.T) string {
				a := createPending(t, svc)
				if _, err := svc.UpdateStatus(context.Background(), a.ID, StatusConfirmed); err != nil {
					t.Fatalf("setup: %v", err)
				}
				return a.ID
			},
			target: StatusPending,
		},
		{
			name: "completed is terminal",
			prepare: func(t *testing.T) string {
				a := createPending(t, svc)
				if _, err := svc.UpdateStatus(context.Background(), a.ID, StatusConfirmed); err != nil {
					t.Fatalf("setup: %v", err)
				}
				if _, err := svc.UpdateStatus(context.Background(), a.ID, StatusCompleted); err != nil {
					t.Fatalf("setup: %v", err)
				}
				return a.ID
			},
			target: StatusCanceled,
		},
		{
			name: "no self transition",
			prepare: func(t *testing.T) string {
				a := createPending(t, svc)
				if _, err := svc.UpdateStatus(context.Background(), a.ID, StatusConfirmed); err != nil {
					t.Fatalf("setup: %v", err)
				}
				return a.ID
			},
			target: StatusConfirmed,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			id := c.prepare(t)

			before, err := svc.GetByID(context.Background(), id)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}

			_, err = svc.UpdateStatus(context.Background(), id, c.target)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}

			after, err := svc.GetByID(context.Background(), id)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if after.Status != before.Status || after.UpdatedAt != before.UpdatedAt {
				t.Fatalf("rejected transition must not write: before=%v after=%v", before, after)
			}
		})
	}
}

func TestService_Cancel_FromPending_StoresReason(t *testing.T) {
	svc, _ := newService(t)
	a := createPending(t, svc)

	got, err := svc.Cancel(context.Background(), a.ID, "no-show")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if got.Status != StatusCanceled {
		t.Fatalf("expected CANCELED, got %s", got.Status)
	}
	if got.CancelReason != "no-show" {
		t.Fatalf("expected reason stored, got %q", got.CancelReason)
	}

	// Una cita cancelada es terminal para cualquier transición posterior.
	_, err = svc.UpdateStatus(context.Background(), a.ID, StatusConfirmed)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after cancel, got %v", err)
	}
}

func TestService_Cancel_AlreadyCanceled(t *testing.T) {
	svc, _ := newService(t)
	a := createPending(t, svc)

	if _, err := svc.Cancel(context.Background(), a.ID, ""); err != nil {
		t.Fatalf("first Cancel returned error: %v", err)
	}
	_, err := svc.Cancel(context.Background(), a.ID, "")
	if !errors.Is(err, ErrAlreadyCanceled) {
		t.Fatalf("expected ErrAlreadyCanceled, got %v", err)
	}
}

func TestService_Cancel_AlreadyCompleted(t *testing.T) {
	svc, _ := newService(t)
	a := createPending(t, svc)

	if _, err := svc.UpdateStatus(context.Background(), a.ID, StatusConfirmed); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), a.ID, StatusCompleted); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := svc.Cancel(context.Background(), a.ID, "too late")
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestService_Cancel_ConcurrentOnlyOneWins(t *testing.T) {
	svc, _ := newService(t)
	a := createPending(t, svc)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Cancel(context.Background(), a.ID, "race")
		}(i)
	}
	wg.Wait()

	wins, terminal := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyCanceled):
			terminal++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful cancel, got %d", wins)
	}
	if terminal != callers-1 {
		t.Fatalf("expected %d already-canceled errors, got %d", callers-1, terminal)
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus(" confirmed "); err != nil || s != StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %q err=%v", s, err)
	}
	if _, err := ParseStatus("nope"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
