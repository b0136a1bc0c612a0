package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port  string
	DBDSN string // vacío = store en memoria

	// Logging
	LogLevel  string
	LogFormat string
	AppName   string

	// Cliente de intake
	APIBase     string        // base del backend de recepción
	ProfilePath string        // cache local del perfil del socio
	HTTPTimeout time.Duration // timeout explícito del POST (el original no tenía ninguno)

	// Hospital de destino para el cálculo de distancia/ETA
	HospitalLat float64
	HospitalLng float64
	AvgSpeedKmh float64
}

// Load lee .env si existe y después el entorno. Todo tiene default de
// desarrollo: el binario levanta sin configurar nada.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignorando .env: %v", err)
	}

	return Config{
		Port:  getEnv("PORT", "3000"),
		DBDSN: os.Getenv("DB_DSN"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		AppName:   getEnv("APP_NAME", "hb-emergencias"),

		APIBase:     getEnv("API_BASE", "http://127.0.0.1:3000"),
		ProfilePath: getEnv("PROFILE_PATH", defaultProfilePath()),
		HTTPTimeout: getDuration("HTTP_TIMEOUT", 10*time.Second),

		// Default: Hospital Británico, Montevideo.
		HospitalLat: getFloat("HOSPITAL_LAT", -34.8941),
		HospitalLng: getFloat("HOSPITAL_LNG", -56.1636),
		AvgSpeedKmh: getFloat("AVG_SPEED_KMH", 30),
	}
}

func defaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hb-perfil.json"
	}
	return home + "/.hb-perfil.json"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q inválido, usando %v", key, v, def)
		return def
	}
	return f
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s=%q inválido, usando %v", key, v, def)
		return def
	}
	return d
}
