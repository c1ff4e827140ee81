package sessions

import (
	"sync"
	"time"

	"medical-data-entry/internal/domain/connection"
	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/platform/messages"
)

// Session es una instancia del formulario: sus entries, su conexión y el
// toggle del panel de setup. Todo acceso pasa por mu.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	store     *entries.Store
	conn      connection.Holder
	showSetup bool
	notice    *messages.Notice // one-shot, lo consume la UI
}

func newSession(id string, createdAt time.Time, ids entries.IDGenerator) *Session {
	return &Session{
		ID:        id,
		CreatedAt: createdAt,
		store:     entries.NewStore(ids),
		showSetup: true,
	}
}

// View es una foto inmutable de la sesión (la API key nunca sale en claro).
type View struct {
	ID           string
	CreatedAt    time.Time
	Connected    bool
	EndpointURL  string
	APIKeyMasked string
	ShowSetup    bool
	Entries      []entries.Entry
}

// view asume mu tomado.
func (s *Session) view() View {
	return View{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		Connected:    s.conn.Connected(),
		EndpointURL:  s.conn.EndpointURL(),
		APIKeyMasked: s.conn.MaskedKey(),
		ShowSetup:    s.showSetup,
		Entries:      s.store.List(),
	}
}
