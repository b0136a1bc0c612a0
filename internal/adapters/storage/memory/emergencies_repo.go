package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Pnicolasgiordano/hb-emergencias/internal/domain/emergencies"
)

var (
	ErrNotFound = errors.New("not found")
)

// emergenciesRepo guarda todo en memoria: ids ordenados (más nuevo primero)
// más un índice por id. net/http atiende en paralelo, así que el acceso va
// detrás de un RWMutex.
type emergenciesRepo struct {
	mu      sync.RWMutex
	ordered []string
	byID    map[string]emergencies.Emergency
}

func NewEmergenciesRepo() emergencies.Repository {
	return &emergenciesRepo{
		byID: make(map[string]emergencies.Emergency),
	}
}

func (r *emergenciesRepo) Create(ctx context.Context, e emergencies.Emergency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("emergency id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("emergency already exists")
	}

	// Insertamos al principio para que lo más nuevo salga arriba.
	r.ordered = append([]string{e.ID}, r.ordered...)
	r.byID[e.ID] = e
	return nil
}

func (r *emergenciesRepo) List(ctx context.Context) ([]emergencies.Emergency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]emergencies.Emergency, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *emergenciesRepo) GetByID(ctx context.Context, id string) (emergencies.Emergency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return emergencies.Emergency{}, ErrNotFound
	}
	return e, nil
}

func (r *emergenciesRepo) Update(ctx context.Context, e emergencies.Emergency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("emergency id required")
	}
	if _, exists := r.byID[e.ID]; !exists {
		return ErrNotFound
	}
	// Update no cambia el orden: la posición la fija la creación.
	r.byID[e.ID] = e
	return nil
}
