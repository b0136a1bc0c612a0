package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Profile es el perfil del socio que la app guarda localmente después de la
// primera carga, para prellenar los envíos siguientes. Nunca viaja al backend
// como tal: sus campos se copian dentro de cada emergencia.
type Profile struct {
	Nombre   string `json:"nombre"`
	Socio    string `json:"socio"`
	Telefono string `json:"telefono"`
}

// Complete reporta si el perfil tiene los campos que el backend exige.
func (p Profile) Complete() bool {
	return strings.TrimSpace(p.Nombre) != "" && strings.TrimSpace(p.Socio) != ""
}

// LoadProfile lee el perfil cacheado. Si el archivo no existe devuelve un
// perfil vacío sin error: es el primer uso.
func LoadProfile(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Profile{}, nil
		}
		return Profile{}, err
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// SaveProfile persiste el perfil para los próximos envíos.
func SaveProfile(path string, p Profile) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
