package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Pnicolasgiordano/hb-emergencias/internal/domain/emergencies"
)

// Tabla esperada:
//
//	CREATE TABLE emergencias (
//	    id           TEXT PRIMARY KEY,
//	    socio        TEXT NOT NULL,
//	    nombre       TEXT NOT NULL,
//	    telefono     TEXT NOT NULL DEFAULT '',
//	    sintomas     TEXT NOT NULL,
//	    observaciones TEXT NOT NULL DEFAULT '',
//	    lat          DOUBLE PRECISION NOT NULL,
//	    lng          DOUBLE PRECISION NOT NULL,
//	    distance_km  DOUBLE PRECISION,
//	    eta_min      DOUBLE PRECISION,
//	    status       TEXT NOT NULL,
//	    created_at   TIMESTAMPTZ NOT NULL,
//	    taken_at     TIMESTAMPTZ,
//	    closed_at    TIMESTAMPTZ
//	);
type EmergenciesRepo struct {
	db *sql.DB
}

func NewEmergenciesRepo(db *sql.DB) *EmergenciesRepo {
	return &EmergenciesRepo{db: db}
}

func (r *EmergenciesRepo) Create(ctx context.Context, e emergencies.Emergency) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO emergencias (
			id, socio, nombre, telefono,
			sintomas, observaciones,
			lat, lng, distance_km, eta_min,
			status, created_at, taken_at, closed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		e.ID,
		e.Socio,
		e.Nombre,
		e.Telefono,
		e.Sintomas,
		e.Observaciones,
		e.Lat,
		e.Lng,
		toNullFloat(e.DistanceKm),
		toNullFloat(e.EtaMin),
		string(e.Status),
		e.CreatedAt,
		toNullTime(e.TakenAt),
		toNullTime(e.ClosedAt),
	)
	return err
}

func (r *EmergenciesRepo) Update(ctx context.Context, e emergencies.Emergency) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE emergencias
		SET
			status = $2,
			taken_at = $3,
			closed_at = $4
		WHERE id = $1
	`,
		e.ID,
		string(e.Status),
		toNullTime(e.TakenAt),
		toNullTime(e.ClosedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmergenciesRepo) GetByID(ctx context.Context, id string) (emergencies.Emergency, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return emergencies.Emergency{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, socio, nombre, telefono,
			sintomas, observaciones,
			lat, lng, distance_km, eta_min,
			status, created_at, taken_at, closed_at
		FROM emergencias
		WHERE id = $1
	`, id)

	e, err := scanEmergency(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return emergencies.Emergency{}, ErrNotFound
		}
		return emergencies.Emergency{}, err
	}
	return e, nil
}

func (r *EmergenciesRepo) List(ctx context.Context) ([]emergencies.Emergency, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, socio, nombre, telefono,
			sintomas, observaciones,
			lat, lng, distance_km, eta_min,
			status, created_at, taken_at, closed_at
		FROM emergencias
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]emergencies.Emergency, 0)
	for rows.Next() {
		e, err := scanEmergency(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmergency(row rowScanner) (emergencies.Emergency, error) {
	var (
		e        emergencies.Emergency
		status   string
		dist     sql.NullFloat64
		eta      sql.NullFloat64
		takenAt  sql.NullTime
		closedAt sql.NullTime
	)

	if err := row.Scan(
		&e.ID,
		&e.Socio,
		&e.Nombre,
		&e.Telefono,
		&e.Sintomas,
		&e.Observaciones,
		&e.Lat,
		&e.Lng,
		&dist,
		&eta,
		&status,
		&e.CreatedAt,
		&takenAt,
		&closedAt,
	); err != nil {
		return emergencies.Emergency{}, err
	}

	e.Status = emergencies.Status(status)
	if dist.Valid {
		v := dist.Float64
		e.DistanceKm = &v
	}
	if eta.Valid {
		v := eta.Float64
		e.EtaMin = &v
	}
	if takenAt.Valid {
		t := takenAt.Time
		e.TakenAt = &t
	}
	if closedAt.Valid {
		t := closedAt.Time
		e.ClosedAt = &t
	}

	return e, nil
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
