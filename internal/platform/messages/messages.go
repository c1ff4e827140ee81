package messages

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// IDs de mensajes. Deben existir en locales/active.<lang>.json.
const (
	ConnectSuccess     = "connect_success"
	ConnectMissing     = "connect_missing"
	SubmitNotConnected = "submit_not_connected"
	SubmitNoValid      = "submit_no_valid"
	SubmitInvalidAge   = "submit_invalid_age"
	SubmitSuccess      = "submit_success"
	SubmitDiscarded    = "submit_discarded"
	SubmitError        = "submit_error"
	EntryRemoveLast    = "entry_remove_last"
)

// Kind clasifica una notificación para la UI.
type Kind string

const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice es la notificación one-shot que ve el usuario.
type Notice struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type Catalog struct {
	bundle      *i18n.Bundle
	defaultLang string
	languages   []string
}

// New carga todos los locales embebidos. defaultLang se usa cuando
// el cliente no pide un idioma soportado.
func New(defaultLang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("messages: read locales: %w", err)
	}

	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		code := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if code == "" {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("messages: load %s: %w", name, err)
		}
		langs = append(langs, code)
	}

	defaultLang = strings.TrimSpace(defaultLang)
	if defaultLang == "" {
		defaultLang = "en"
	}

	return &Catalog{bundle: bundle, defaultLang: defaultLang, languages: langs}, nil
}

func (c *Catalog) Languages() []string {
	return append([]string(nil), c.languages...)
}

// For devuelve un Printer para los idiomas pedidos (acepta valores de Accept-Language).
func (c *Catalog) For(langs ...string) Printer {
	all := make([]string, 0, len(langs)+1)
	for _, l := range langs {
		if strings.TrimSpace(l) != "" {
			all = append(all, l)
		}
	}
	all = append(all, c.defaultLang)
	return Printer{loc: i18n.NewLocalizer(c.bundle, all...)}
}

type Printer struct {
	loc *i18n.Localizer
}

// Text traduce id con datos de template. Si falta la traducción devuelve el id.
func (p Printer) Text(id string, data map[string]any) string {
	if p.loc == nil {
		return id
	}
	msg, err := p.loc.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// Count traduce un mensaje con plural. {{.Count}} queda disponible en el template.
func (p Printer) Count(id string, n int) string {
	if p.loc == nil {
		return id
	}
	msg, err := p.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: map[string]any{"Count": n},
		PluralCount:  n,
	})
	if err != nil || msg == "" {
		return id
	}
	return msg
}
