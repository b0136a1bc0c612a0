// Comando de línea para el flujo del socio y de recepción:
//
//	emergencia enviar -sintomas "dolor de pecho" -lat -34.9 -lng -56.2
//	emergencia listar
//	emergencia estado -id <id> -status en_atencion
//
// El perfil (nombre, socio, teléfono) se pide una sola vez con flags y queda
// cacheado en PROFILE_PATH; los envíos siguientes lo reutilizan.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Pnicolasgiordano/hb-emergencias/internal/client"
	"github.com/Pnicolasgiordano/hb-emergencias/internal/config"
	"github.com/Pnicolasgiordano/hb-emergencias/internal/platform/httpclient"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()

	c, err := client.New(client.Options{
		BaseURL:     cfg.APIBase,
		Timeout:     cfg.HTTPTimeout,
		HospitalLat: cfg.HospitalLat,
		HospitalLng: cfg.HospitalLng,
		AvgSpeedKmh: cfg.AvgSpeedKmh,
	})
	if err != nil {
		fail("configuración inválida: %v", err)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "enviar":
		runEnviar(ctx, c, cfg.ProfilePath, os.Args[2:])
	case "listar":
		runListar(ctx, c)
	case "estado":
		runEstado(ctx, c, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func runEnviar(ctx context.Context, c *client.Client, profilePath string, args []string) {
	fs := flag.NewFlagSet("enviar", flag.ExitOnError)
	nombre := fs.String("nombre", "", "nombre del socio (queda cacheado)")
	socio := fs.String("socio", "", "número de socio (queda cacheado)")
	telefono := fs.String("telefono", "", "teléfono de contacto (opcional)")
	sintomas := fs.String("sintomas", "", "síntomas (obligatorio)")
	obs := fs.String("obs", "", "observaciones (opcional)")
	lat := fs.Float64("lat", 0, "latitud del dispositivo")
	lng := fs.Float64("lng", 0, "longitud del dispositivo")
	_ = fs.Parse(args)

	profile, err := client.LoadProfile(profilePath)
	if err != nil {
		fail("leyendo perfil: %v", err)
	}

	// Flags pisan lo cacheado; lo cacheado cubre lo no pasado.
	if strings.TrimSpace(*nombre) != "" {
		profile.Nombre = strings.TrimSpace(*nombre)
	}
	if strings.TrimSpace(*socio) != "" {
		profile.Socio = strings.TrimSpace(*socio)
	}
	if strings.TrimSpace(*telefono) != "" {
		profile.Telefono = strings.TrimSpace(*telefono)
	}

	if !profile.Complete() {
		fail("faltan datos del perfil: pasá -nombre y -socio la primera vez")
	}
	if strings.TrimSpace(*sintomas) == "" {
		fail("faltan los síntomas: pasá -sintomas")
	}

	e, err := c.Submit(ctx, profile, client.Incident{
		Sintomas:      *sintomas,
		Observaciones: *obs,
		Lat:           *lat,
		Lng:           *lng,
	})
	if err != nil {
		failSubmit(err)
	}

	// Perfil recién después del envío exitoso, como la app.
	if err := client.SaveProfile(profilePath, profile); err != nil {
		fmt.Fprintf(os.Stderr, "aviso: no se pudo guardar el perfil: %v\n", err)
	}

	fmt.Printf("Emergencia enviada: %s\n", e.ID)
	fmt.Printf("  %s (Socio %s)\n", e.Nombre, e.Socio)
	fmt.Printf("  Síntomas: %s\n", e.Sintomas)
	if e.EtaMin != nil {
		fmt.Printf("  A ~%.0f minutos del hospital\n", *e.EtaMin)
	}
	fmt.Printf("  Recibida: %s\n", e.CreatedAt.Local().Format("02/01/2006 15:04"))
}

func runListar(ctx context.Context, c *client.Client) {
	items, err := c.List(ctx)
	if err != nil {
		failSubmit(err)
	}

	if len(items) == 0 {
		fmt.Println("Sin emergencias.")
		return
	}

	for _, e := range items {
		eta := "-"
		if e.EtaMin != nil {
			eta = fmt.Sprintf("~%.0f min", *e.EtaMin)
		}
		fmt.Printf("%s  [%s]  %s (socio %s)  %s  ETA %s\n",
			e.CreatedAt.Local().Format("15:04"), e.Status, e.Nombre, e.Socio, e.Sintomas, eta)
	}
}

func runEstado(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("estado", flag.ExitOnError)
	id := fs.String("id", "", "id de la emergencia")
	status := fs.String("status", "", "nuevo | en_atencion | finalizado")
	_ = fs.Parse(args)

	if *id == "" || *status == "" {
		fail("pasá -id y -status")
	}

	e, err := c.SetStatus(ctx, *id, *status)
	if err != nil {
		failSubmit(err)
	}

	fmt.Printf("%s -> %s\n", e.ID, e.Status)
	if e.TakenAt != nil {
		fmt.Printf("  Tomada: %s\n", e.TakenAt.Local().Format("02/01/2006 15:04"))
	}
	if e.ClosedAt != nil {
		fmt.Printf("  Cerrada: %s\n", e.ClosedAt.Local().Format("02/01/2006 15:04"))
	}
}

// failSubmit distingue los tres modos de falla de cara al usuario, sin
// reintentar ninguno.
func failSubmit(err error) {
	var httpErr *httpclient.HTTPError
	switch {
	case errors.As(err, &httpErr):
		fail("el backend rechazó el pedido (HTTP %d): %s", httpErr.StatusCode, httpErr.Body)
	case errors.Is(err, client.ErrBadResponse):
		fail("respuesta ilegible del backend: %v", err)
	default:
		fail("sin conexión con el backend: %v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: emergencia <enviar|listar|estado> [flags]")
}
