package patients

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Patient
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Patient{}}
}

func (r *testRepo) Create(ctx context.Context, p Patient) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Patient) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context, search string) ([]Patient, error) {
	out := make([]Patient, 0)
	for _, p := range r.byID {
		if !p.Active {
			continue
		}
		if search != "" {
			term := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(p.Name), term) &&
				!strings.Contains(strings.ToLower(p.Species), term) {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func TestService_Create_Defaults(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	p, err := svc.Create(context.Background(), CreateInput{Name: "Rocky", Species: "Perro"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !p.Active {
		t.Fatal("expected new patient to be active")
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestService_Create_RequiresNameAndSpecies(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.Create(context.Background(), CreateInput{Name: "  ", Species: "Gato"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "Misu", Species: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank species, got %v", err)
	}
}

func TestService_GetByID_HidesInactive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	p, err := svc.Create(context.Background(), CreateInput{Name: "Rocky", Species: "Perro"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	stored := repo.byID[p.ID]
	stored.Active = false
	repo.byID[p.ID] = stored

	if _, err := svc.GetByID(context.Background(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive patient, got %v", err)
	}
}

func TestService_List_SearchMatchesSpecies(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.Create(context.Background(), CreateInput{Name: "Rocky", Species: "Perro"}); err != nil {
		t.Fatalf("Create #1: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "Misu", Species: "Gato"}); err != nil {
		t.Fatalf("Create #2: %v", err)
	}

	got, err := svc.List(context.Background(), "GATO")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Misu" {
		t.Fatalf("expected only Misu, got %#v", got)
	}
}

func TestService_Merge_SelfMergeRejected(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	p, err := svc.Create(context.Background(), CreateInput{Name: "Rocky", Species: "Perro"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Merge(context.Background(), p.ID, p.ID); !errors.Is(err, ErrSelfMerge) {
		t.Fatalf("expected ErrSelfMerge, got %v", err)
	}
}

func TestService_Merge_CopiesMissingFieldsAndDeactivates(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	main, err := svc.Create(context.Background(), CreateInput{Name: "Rocky", Species: "Perro"})
	if err != nil {
		t.Fatalf("Create main: %v", err)
	}

	birth := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
	dup, err := svc.Create(context.Background(), CreateInput{
		Name:      "Roky",
		Species:   "Perro",
		Breed:     "Labrador",
		BirthDate: &birth,
		OwnerID:   "owner-1",
	})
	if err != nil {
		t.Fatalf("Create dup: %v", err)
	}

	merged, err := svc.Merge(context.Background(), main.ID, dup.ID)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}

	if merged.Breed != "Labrador" {
		t.Fatalf("expected breed copied from duplicate, got %q", merged.Breed)
	}
	if merged.BirthDate == nil || !merged.BirthDate.Equal(birth) {
		t.Fatalf("expected birth date copied from duplicate, got %v", merged.BirthDate)
	}
	if merged.OwnerID != "owner-1" {
		t.Fatalf("expected owner copied from duplicate, got %q", merged.OwnerID)
	}
	// El nombre del principal se conserva.
	if merged.Name != "Rocky" {
		t.Fatalf("expected main name kept, got %q", merged.Name)
	}

	if repo.byID[dup.ID].Active {
		t.Fatal("expected duplicate to be deactivated")
	}
	if _, err := svc.GetByID(context.Background(), dup.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected duplicate hidden after merge, got %v", err)
	}
}

func TestService_Merge_KeepsMainFields(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	main, err := svc.Create(context.Background(), CreateInput{
		Name:    "Rocky",
		Species: "Perro",
		Breed:   "Criollo",
		OwnerID: "owner-1",
	})
	if err != nil {
		t.Fatalf("Create main: %v", err)
	}
	dup, err := svc.Create(context.Background(), CreateInput{
		Name:    "Roky",
		Species: "Perro",
		Breed:   "Labrador",
		OwnerID: "owner-2",
	})
	if err != nil {
		t.Fatalf("Create dup: %v", err)
	}

	merged, err := svc.Merge(context.Background(), main.ID, dup.ID)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	if merged.Breed != "Criollo" || merged.OwnerID != "owner-1" {
		t.Fatalf("expected main fields untouched, got breed=%q owner=%q", merged.Breed, merged.OwnerID)
	}
}
