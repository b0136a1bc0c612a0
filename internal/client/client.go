// Package client implementa el lado socio/recepción del intake: perfil
// cacheado, cálculo de distancia/ETA contra el hospital y el único POST de
// envío. Un envío es fire-and-forget: sin reintentos y sin seguimiento
// posterior a la confirmación.
package client

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/Pnicolasgiordano/hb-emergencias/internal/geo"
	"github.com/Pnicolasgiordano/hb-emergencias/internal/platform/httpclient"
)

var (
	// ErrUnreachable: no hubo respuesta HTTP (red caída, timeout, DNS).
	ErrUnreachable = errors.New("no se pudo contactar al backend")
	// ErrBadResponse: el backend respondió 2xx pero el body no es el JSON
	// esperado.
	ErrBadResponse = errors.New("respuesta inesperada del backend")
)

type Options struct {
	BaseURL string
	// Timeout del request completo. El original no acotaba la llamada;
	// acá es explícito y con default.
	Timeout time.Duration

	HospitalLat float64
	HospitalLng float64
	AvgSpeedKmh float64
}

type Client struct {
	http *httpclient.Client

	hospitalLat float64
	hospitalLng float64
	avgSpeedKmh float64
}

func New(opts Options) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(opts.BaseURL, opts.Timeout)
	if err != nil {
		return nil, err
	}

	speed := opts.AvgSpeedKmh
	if speed <= 0 {
		speed = geo.DefaultAvgSpeedKmh
	}

	return &Client{
		http:        hc,
		hospitalLat: opts.HospitalLat,
		hospitalLng: opts.HospitalLng,
		avgSpeedKmh: speed,
	}, nil
}

// Incident son los datos por episodio: se limpian después de un envío
// exitoso, a diferencia del Profile.
type Incident struct {
	Sintomas      string
	Observaciones string

	// Posición del dispositivo al momento del envío.
	Lat float64
	Lng float64
}

// Emergency refleja el registro tal como lo devuelve el backend.
type Emergency struct {
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
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	TakenAt       *time.Time `json:"takenAt,omitempty"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
}

type submitPayload struct {
	Socio         string  `json:"socio"`
	Nombre        string  `json:"nombre"`
	Telefono      string  `json:"telefono,omitempty"`
	Sintomas      string  `json:"sintomas"`
	Observaciones string  `json:"observaciones,omitempty"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	DistanceKm    float64 `json:"distanceKm"`
	EtaMin        float64 `json:"etaMin"`
}

// Submit calcula distancia/ETA contra el hospital y hace el único POST.
// No reintenta. Los tres modos de falla se distinguen por tipo:
// ErrUnreachable, *httpclient.HTTPError y ErrBadResponse.
func (c *Client) Submit(ctx context.Context, p Profile, in Incident) (Emergency, error) {
	km := geo.DistanceKm(in.Lat, in.Lng, c.hospitalLat, c.hospitalLng)
	eta := geo.EstimateEtaMinutes(km, c.avgSpeedKmh)

	payload := submitPayload{
		Socio:         p.Socio,
		Nombre:        p.Nombre,
		Telefono:      p.Telefono,
		Sintomas:      in.Sintomas,
		Observaciones: in.Observaciones,
		Lat:           in.Lat,
		Lng:           in.Lng,
		DistanceKm:    math.Round(km*100) / 100,
		EtaMin:        float64(eta),
	}

	var out Emergency
	if err := c.do(ctx, http.MethodPost, "/emergencies", payload, &out); err != nil {
		return Emergency{}, err
	}
	return out, nil
}

// List trae el tablero de recepción, más reciente primero.
func (c *Client) List(ctx context.Context) ([]Emergency, error) {
	var out []Emergency
	if err := c.do(ctx, http.MethodGet, "/emergencies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus cambia el estado de triage de una emergencia (botones de
// recepción).
func (c *Client) SetStatus(ctx context.Context, id, status string) (Emergency, error) {
	body := map[string]string{"status": status}

	var out Emergency
	if err := c.do(ctx, http.MethodPatch, "/emergencies/"+id+"/status", body, &out); err != nil {
		return Emergency{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.http.DoJSON(ctx, method, path, body, out)
	if err == nil {
		return nil
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var decodeErr *httpclient.DecodeError
	if errors.As(err, &decodeErr) {
		return fmt.Errorf("%w: %v", ErrBadResponse, decodeErr.Cause)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
