package connection

import (
	"errors"
	"strings"
)

var ErrMissingCredentials = errors.New("endpoint url and api key are required")

// Holder guarda el destino remoto de una sesión.
// "Connected" es una marca local: no se valida contra el servicio remoto.
type Holder struct {
	endpointURL string
	apiKey      string
	connected   bool
}

// Connect fija url + key. Si falta alguno, no cambia nada.
func (h *Holder) Connect(endpointURL, apiKey string) error {
	endpointURL = strings.TrimSpace(endpointURL)
	apiKey = strings.TrimSpace(apiKey)

	if endpointURL == "" || apiKey == "" {
		return ErrMissingCredentials
	}

	h.endpointURL = strings.TrimRight(endpointURL, "/")
	h.apiKey = apiKey
	h.connected = true
	return nil
}

func (h *Holder) Connected() bool { return h.connected }

func (h *Holder) EndpointURL() string { return h.endpointURL }

func (h *Holder) APIKey() string { return h.apiKey }

// MaskedKey muestra solo los últimos 4 caracteres.
func (h *Holder) MaskedKey() string {
	return Mask(h.apiKey)
}

func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", 8) + secret[len(secret)-4:]
}
