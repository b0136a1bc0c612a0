package emergencies

import "time"

// Status define el estado de triage de una emergencia.
// @Enum nuevo, en_atencion, finalizado
type Status string

const (
	StatusNuevo      Status = "nuevo"
	StatusEnAtencion Status = "en_atencion"
	StatusFinalizado Status = "finalizado"
)

// Valid reporta si s es uno de los tres estados reconocidos.
func (s Status) Valid() bool {
	switch s {
	case StatusNuevo, StatusEnAtencion, StatusFinalizado:
		return true
	}
	return false
}

// Emergency representa un pedido de emergencia de un socio del plan.
type Emergency struct {
	ID string

	Socio  string // número de socio
	Nombre string
	// Teléfono de contacto, puede venir vacío.
	Telefono string

	Sintomas      string
	Observaciones string

	// Posición del dispositivo al momento del envío.
	Lat float64
	Lng float64

	// Calculados por el cliente, informativos: el servicio no los recalcula
	// ni los valida.
	DistanceKm *float64
	EtaMin     *float64

	Status Status

	CreatedAt time.Time
	// TakenAt se estampa al pasar a en_atencion; ClosedAt al pasar a
	// finalizado. Una re-entrada al mismo estado los vuelve a estampar.
	TakenAt  *time.Time
	ClosedAt *time.Time
}
