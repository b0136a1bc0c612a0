package emergencies

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/emergencies", func(er chi.Router) {
		er.Post("/", createEmergencyHandler(svc))
		er.Get("/", listEmergenciesHandler(svc))

		// Botones de recepción: cambiar estado de triage.
		er.Patch("/{emergencyID}/status", changeStatusHandler(svc))
	})
}

type createEmergencyRequest struct {
	Socio         string   `json:"socio"`
	Nombre        string   `json:"nombre"`
	Telefono      string   `json:"telefono"`
	Sintomas      string   `json:"sintomas"`
	Observaciones string   `json:"observaciones"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	DistanceKm    *float64 `json:"distanceKm"`
	EtaMin        *float64 `json:"etaMin"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

type emergencyResponse struct {
	ID            string     `json:"id"`
	Socio         string     `json:"socio"`
	Nombre        string     `json:"nombre"`
	Telefono      string     `json:"telefono"`
	Sintomas      string     `json:"sintomas"`
	Observaciones string     `json:"observaciones"`
	Lat           float64    `json:"lat"`
	Lng           float64    `json:"lng"`
	DistanceKm    *float64   `json:"distanceKm,omitempty"`
	EtaMin        *float64   `json:"etaMin,omitempty"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	TakenAt       *time.Time `json:"takenAt,omitempty"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type missingFieldsResponse struct {
	Error    string   `json:"error"`
	Required []string `json:"required"`
}

// Lista fija, igual para cualquier campo faltante: la app muestra el
// formulario completo de nuevo, no necesita saber cuál faltó.
var requiredFields = []string{"socio", "nombre", "sintomas", "lat(number)", "lng(number)"}

func createEmergencyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEmergencyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				// p.ej. lat como string: mismo 400 que un campo faltante
				writeMissingFields(w)
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		e, err := svc.Create(r.Context(), CreateInput{
			Socio:         req.Socio,
			Nombre:        req.Nombre,
			Telefono:      req.Telefono,
			Sintomas:      req.Sintomas,
			Observaciones: req.Observaciones,
			Lat:           req.Lat,
			Lng:           req.Lng,
			DistanceKm:    req.DistanceKm,
			EtaMin:        req.EtaMin,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeMissingFields(w)
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusCreated, toEmergencyResponse(e))
	}
}

func listEmergenciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		out := make([]emergencyResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEmergencyResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func changeStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "emergencyID")

		var req changeStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "status inválido"})
			return
		}

		e, err := svc.ChangeStatus(r.Context(), id, Status(req.Status))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidStatus):
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "status inválido"})
			case errors.Is(err, ErrNotFound):
				writeJSON(w, http.StatusNotFound, errorResponse{Error: "No encontrado"})
			default:
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			}
			return
		}

		writeJSON(w, http.StatusOK, toEmergencyResponse(e))
	}
}

func toEmergencyResponse(e Emergency) emergencyResponse {
	return emergencyResponse{
		ID:            e.ID,
		Socio:         e.Socio,
		Nombre:        e.Nombre,
		Telefono:      e.Telefono,
		Sintomas:      e.Sintomas,
		Observaciones: e.Observaciones,
		Lat:           e.Lat,
		Lng:           e.Lng,
		DistanceKm:    e.DistanceKm,
		EtaMin:        e.EtaMin,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		TakenAt:       e.TakenAt,
		ClosedAt:      e.ClosedAt,
	}
}

func writeMissingFields(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, missingFieldsResponse{
		Error:    "Faltan datos",
		Required: requiredFields,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
