package web

import (
	"embed"
	"errors"
	"html/template"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/domain/sessions"
	"medical-data-entry/internal/platform/logger"
	"medical-data-entry/internal/platform/messages"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/index.html"))

// Prefijo de los inputs de entries: "e.<entryID>.<field>".
const fieldPrefix = "e."

type pageData struct {
	Base    string
	Session sessions.View
	Notice  *messages.Notice
	Genders []entries.Gender
}

type page struct {
	svc     *sessions.Service
	catalog *messages.Catalog
	log     logger.Logger
}

// RegisterRoutes monta la página HTML. Cada acción es un POST que
// redirige a /ui/{sessionID} (post/redirect/get).
func RegisterRoutes(r chi.Router, svc *sessions.Service, catalog *messages.Catalog, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	p := &page{svc: svc, catalog: catalog, log: log}

	r.Get("/", p.newSession)

	r.Route("/ui/{sessionID}", func(ur chi.Router) {
		ur.Get("/", p.render)

		ur.Post("/connect", p.connect)
		ur.Post("/setup/toggle", p.toggleSetup)
		ur.Post("/save", p.action(nil))
		ur.Post("/entries/add", p.action(p.addEntry))
		ur.Post("/entries/{entryID}/remove", p.action(p.removeEntry))
		ur.Post("/entries/{entryID}/capture/{field}", p.action(p.captureTime))
		ur.Post("/submit", p.action(p.submit))
	})
}

func (p *page) newSession(w http.ResponseWriter, r *http.Request) {
	v, err := p.svc.Create(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, base(v.ID), http.StatusSeeOther)
}

func (p *page) render(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	v, err := p.svc.Get(r.Context(), id)
	if errors.Is(err, sessions.ErrNotFound) {
		// Sesión vencida o inventada: arrancar una nueva.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Base:    base(v.ID),
		Session: v,
		Genders: []entries.Gender{entries.GenderMale, entries.GenderFemale, entries.GenderOther},
	}
	if n, ok, _ := p.svc.TakeNotice(r.Context(), id); ok {
		data.Notice = &n
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		p.log.Error("render page", map[string]any{"session_id": id, "err": err})
	}
}

func (p *page) connect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	_, err := p.svc.Connect(r.Context(), id, r.PostFormValue("endpoint_url"), r.PostFormValue("api_key"))
	if errors.Is(err, sessions.ErrNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	p.notify(r, id, sessions.ConnectNotice(p.printer(r), err))
	http.Redirect(w, r, base(id), http.StatusSeeOther)
}

func (p *page) toggleSetup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if _, err := p.svc.ToggleSetup(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, base(id), http.StatusSeeOther)
}

// actionFunc corre después de guardar los campos del formulario.
// Devuelve la notificación a mostrar, si hay.
type actionFunc func(r *http.Request, id string) (*messages.Notice, error)

func (p *page) action(fn actionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		notice, err := p.saveFields(r, id)
		if err == nil && notice == nil && fn != nil {
			notice, err = fn(r, id)
		}
		if errors.Is(err, sessions.ErrNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		if err != nil {
			notice = &messages.Notice{Kind: messages.KindError, Text: err.Error()}
		}
		if notice != nil {
			p.notify(r, id, *notice)
		}
		http.Redirect(w, r, base(id), http.StatusSeeOther)
	}
}

// saveFields aplica los inputs "e.<id>.<field>" del formulario en orden de clave.
// Un valor inválido (p.ej. gender fuera del set) no frena al resto: se
// guardan los demás y se informa el primero que falló.
func (p *page) saveFields(r *http.Request, id string) (*messages.Notice, error) {
	var notice *messages.Notice
	for _, key := range slices.Sorted(maps.Keys(r.PostForm)) {
		values := r.PostForm[key]
		if !strings.HasPrefix(key, fieldPrefix) || len(values) == 0 {
			continue
		}
		rest := strings.TrimPrefix(key, fieldPrefix)
		dot := strings.LastIndex(rest, ".")
		if dot <= 0 {
			continue
		}
		entryID, field := rest[:dot], entries.Field(rest[dot+1:])

		_, err := p.svc.UpdateEntry(r.Context(), id, entryID, field, values[0])
		switch {
		case err == nil, errors.Is(err, sessions.ErrEntryNotFound):
			// un entry borrado en otra pestaña no es error
		case errors.Is(err, sessions.ErrNotFound):
			return nil, err
		case notice == nil:
			notice = &messages.Notice{Kind: messages.KindError, Text: err.Error()}
		}
	}
	return notice, nil
}

func (p *page) addEntry(r *http.Request, id string) (*messages.Notice, error) {
	_, err := p.svc.AddEntry(r.Context(), id)
	return nil, err
}

func (p *page) removeEntry(r *http.Request, id string) (*messages.Notice, error) {
	removed, err := p.svc.RemoveEntry(r.Context(), id, chi.URLParam(r, "entryID"))
	if err != nil {
		return nil, err
	}
	if n, ok := sessions.RemoveNotice(p.printer(r), removed); ok {
		return &n, nil
	}
	return nil, nil
}

func (p *page) captureTime(r *http.Request, id string) (*messages.Notice, error) {
	_, err := p.svc.CaptureTime(r.Context(), id, chi.URLParam(r, "entryID"), entries.Field(chi.URLParam(r, "field")))
	return nil, err
}

func (p *page) submit(r *http.Request, id string) (*messages.Notice, error) {
	res, err := p.svc.Submit(r.Context(), id)
	if errors.Is(err, sessions.ErrNotFound) {
		return nil, err
	}
	n := sessions.SubmitNotice(p.printer(r), res, err)
	return &n, nil
}

func (p *page) notify(r *http.Request, id string, n messages.Notice) {
	if err := p.svc.SetNotice(r.Context(), id, n); err != nil {
		p.log.Warn("set notice", map[string]any{"session_id": id, "err": err})
	}
}

func (p *page) printer(r *http.Request) messages.Printer {
	if p.catalog == nil {
		return messages.Printer{}
	}
	return p.catalog.For(r.Header.Get("Accept-Language"))
}

func base(sessionID string) string {
	return "/ui/" + sessionID
}
