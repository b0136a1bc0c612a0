package emergencies

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Socio         string
	Nombre        string
	Telefono      string
	Sintomas      string
	Observaciones string

	Lat *float64
	Lng *float64

	// Informativos, se guardan tal cual llegan.
	DistanceKm *float64
	EtaMin     *float64
}

// Create valida y registra una emergencia nueva. Si falla la validación no
// se escribe nada.
func (s *Service) Create(ctx context.Context, in CreateInput) (Emergency, error) {
	if strings.TrimSpace(in.Socio) == "" {
		return Emergency{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Nombre) == "" {
		return Emergency{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Sintomas) == "" {
		return Emergency{}, ErrInvalidInput
	}
	if in.Lat == nil || in.Lng == nil {
		return Emergency{}, ErrInvalidInput
	}

	e := Emergency{
		ID:            uuid.NewString(),
		Socio:         strings.TrimSpace(in.Socio),
		Nombre:        strings.TrimSpace(in.Nombre),
		Telefono:      strings.TrimSpace(in.Telefono),
		Sintomas:      strings.TrimSpace(in.Sintomas),
		Observaciones: strings.TrimSpace(in.Observaciones),
		Lat:           *in.Lat,
		Lng:           *in.Lng,
		DistanceKm:    in.DistanceKm,
		EtaMin:        in.EtaMin,
		Status:        StatusNuevo,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Emergency{}, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]Emergency, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Emergency, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Emergency{}, ErrNotFound
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Emergency{}, ErrNotFound
	}
	return e, nil
}

// ChangeStatus asigna el estado pedido sin mirar el estado actual: cualquier
// transición entre los tres estados está permitida, incluso hacia atrás o
// repetida (recepción usa esto para corregir toques de más). Al entrar a
// en_atencion se estampa TakenAt; al entrar a finalizado, ClosedAt.
func (s *Service) ChangeStatus(ctx context.Context, id string, target Status) (Emergency, error) {
	if !target.Valid() {
		return Emergency{}, ErrInvalidStatus
	}

	e, err := s.GetByID(ctx, id)
	if err != nil {
		return Emergency{}, err
	}

	e.Status = target
	switch target {
	case StatusEnAtencion:
		t := s.now()
		e.TakenAt = &t
	case StatusFinalizado:
		t := s.now()
		e.ClosedAt = &t
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return Emergency{}, err
	}
	return e, nil
}
