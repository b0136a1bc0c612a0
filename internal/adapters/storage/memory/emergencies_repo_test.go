package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Pnicolasgiordano/hb-emergencias/internal/domain/emergencies"
)

func sample(id string) emergencies.Emergency {
	return emergencies.Emergency{
		ID:        id,
		Socio:     "4171",
		Nombre:    "Ana",
		Sintomas:  "dolor de pecho",
		Lat:       -34.9,
		Lng:       -56.2,
		Status:    emergencies.StatusNuevo,
		CreatedAt: time.Now(),
	}
}

func TestRepo_ListNewestFirst(t *testing.T) {
	repo := NewEmergenciesRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, sample(fmt.Sprintf("id-%d", i))); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"id-2", "id-1", "id-0"}
	for i, w := range want {
		if items[i].ID != w {
			t.Fatalf("pos %d: id = %q, want %q", i, items[i].ID, w)
		}
	}
}

func TestRepo_GetByIDNotFound(t *testing.T) {
	repo := NewEmergenciesRepo()

	if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepo_UpdateKeepsOrder(t *testing.T) {
	repo := NewEmergenciesRepo()
	ctx := context.Background()

	_ = repo.Create(ctx, sample("a"))
	_ = repo.Create(ctx, sample("b"))

	e, _ := repo.GetByID(ctx, "a")
	e.Status = emergencies.StatusEnAtencion
	if err := repo.Update(ctx, e); err != nil {
		t.Fatalf("update: %v", err)
	}

	items, _ := repo.List(ctx)
	if items[0].ID != "b" || items[1].ID != "a" {
		t.Fatalf("order changed after update: %q, %q", items[0].ID, items[1].ID)
	}
	if items[1].Status != emergencies.StatusEnAtencion {
		t.Fatalf("update not visible in list")
	}
}

func TestRepo_UpdateUnknownID(t *testing.T) {
	repo := NewEmergenciesRepo()

	if err := repo.Update(context.Background(), sample("ghost")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepo_ConcurrentCreates(t *testing.T) {
	repo := NewEmergenciesRepo()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_ = repo.Create(ctx, sample(fmt.Sprintf("c-%d", i)))
		}(i)
	}
	wg.Wait()

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != n {
		t.Fatalf("list size = %d, want %d", len(items), n)
	}
}
