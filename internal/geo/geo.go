// Package geo calcula distancia y ETA entre el socio y el hospital.
// Funciones puras, sin estado; la precisión de haversine alcanza de sobra
// para una estimación de llegada.
package geo

import "math"

const (
	// Radio terrestre en km.
	earthRadiusKm = 6371

	// DefaultAvgSpeedKmh es la velocidad promedio asumida para el traslado.
	DefaultAvgSpeedKmh = 30
)

// DistanceKm devuelve la distancia ortodrómica (haversine) en km entre dos
// puntos dados en grados decimales. No valida rangos: valores fuera de
// ±90/±180 producen un resultado matemáticamente definido pero sin sentido
// geográfico; es responsabilidad del caller.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// EstimateEtaMinutes estima minutos de viaje con velocidad promedio fija.
// Piso de 1 minuto aunque la distancia sea cero (demora mínima de despacho).
// Sin tope superior.
func EstimateEtaMinutes(km, avgSpeedKmh float64) int {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAvgSpeedKmh
	}
	minutes := int(math.Round(km / avgSpeedKmh * 60))
	if minutes < 1 {
		return 1
	}
	return minutes
}
