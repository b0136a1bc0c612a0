package router

import (
	"database/sql"
	"net/http"

	mem "github.com/Pnicolasgiordano/hb-emergencias/internal/adapters/storage/memory"
	pg "github.com/Pnicolasgiordano/hb-emergencias/internal/adapters/storage/postgres"
	"github.com/Pnicolasgiordano/hb-emergencias/internal/domain/emergencies"
	"github.com/Pnicolasgiordano/hb-emergencias/internal/middleware"
	"github.com/Pnicolasgiordano/hb-emergencias/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory (se pierde todo al
	// reiniciar, igual que el MVP original).
	DB *sql.DB

	// Opcional: DSN para abrir Postgres si no te pasan DB explícita.
	DSN string

	// Opcional: logger para el middleware de requests.
	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// La app del socio corre en otro origen.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var repo emergencies.Repository

	db := opts.DB
	if db == nil && opts.DSN != "" {
		opened, err := pg.Open(opts.DSN)
		if err == nil {
			db = opened
		} else if opts.Logger != nil {
			opts.Logger.Warn("postgres no disponible, usando memoria", map[string]any{"error": err.Error()})
		}
	}

	if db != nil {
		repo = pg.NewEmergenciesRepo(db)
	} else {
		repo = mem.NewEmergenciesRepo()
	}

	svc := emergencies.NewService(repo)

	emergencies.RegisterRoutes(r, svc)

	return r
}
