package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "medical-data-entry/docs"
	sinks "medical-data-entry/internal/adapters/records"
	mem "medical-data-entry/internal/adapters/storage/memory"
	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/domain/sessions"
	"medical-data-entry/internal/domain/submission"
	"medical-data-entry/internal/middleware"
	"medical-data-entry/internal/platform/logger"
	"medical-data-entry/internal/platform/messages"
	"medical-data-entry/internal/ports/records"
	"medical-data-entry/internal/web"
)

type Options struct {
	Logger  logger.Logger     // nil => Nop
	Catalog *messages.Catalog // nil => se carga con "en"

	// Opcional: si viene, reemplaza la factory por esquema (tests).
	Opener records.Opener

	Policy            submission.Policy
	HTTPClientTimeout time.Duration
	RecordsTable      string        // "" => records.DefaultTable
	SessionTTL        time.Duration // <= 0 => memory.DefaultSessionTTL

	// Opcionales (tests deterministas).
	Clock       entries.Clock
	IDGenerator func() entries.IDGenerator
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	catalog := opts.Catalog
	if catalog == nil {
		c, err := messages.New("en")
		if err != nil {
			// los locales van embebidos: si no cargan, el binario está roto
			panic(err)
		}
		catalog = c
	}

	opener := opts.Opener
	if opener == nil {
		opener = sinks.NewFactory(
			sinks.WithTimeout(opts.HTTPClientTimeout),
			sinks.WithTable(opts.RecordsTable),
		)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	pipeline := submission.NewPipeline(opener,
		submission.WithPolicy(opts.Policy),
		submission.WithLogger(log.With(map[string]any{"component": "submission"})),
	)

	sessionsSvc := sessions.NewService(mem.NewSessionRepo(mem.WithSessionTTL(opts.SessionTTL)), pipeline,
		sessions.WithClock(opts.Clock),
		sessions.WithIDGenerator(opts.IDGenerator),
		sessions.WithLogger(log.With(map[string]any{"component": "sessions"})),
	)

	// Rutas por módulo
	sessions.RegisterRoutes(r, sessionsSvc, catalog)
	web.RegisterRoutes(r, sessionsSvc, catalog, log.With(map[string]any{"component": "web"}))

	return r
}
