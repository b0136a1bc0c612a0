package emergencies

import "context"

type Repository interface {
	// Create inserta al principio del orden de listado (lo más nuevo arriba).
	Create(ctx context.Context, e Emergency) error
	// List devuelve todas las emergencias, más reciente primero.
	List(ctx context.Context) ([]Emergency, error)
	GetByID(ctx context.Context, id string) (Emergency, error)
	Update(ctx context.Context, e Emergency) error
}
