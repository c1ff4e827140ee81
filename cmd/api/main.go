package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	sinks "medical-data-entry/internal/adapters/records"
	"medical-data-entry/internal/domain/connection"
	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/domain/sessions"
	"medical-data-entry/internal/domain/submission"
	"medical-data-entry/internal/platform/config"
	"medical-data-entry/internal/platform/logger"
	"medical-data-entry/internal/platform/messages"
	"medical-data-entry/internal/ports/records"
	"medical-data-entry/internal/router"
)

// @title Medical Data Entry API
// @version 1.0
// @description Carga de registros de pacientes y envío a un almacén remoto (PostgREST / Postgres).
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:           "medical-data-entry",
		Short:         "Patient record entry and submission service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(submitCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (JSON API + HTML page)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}

func policyFrom(cfg *config.Config) submission.Policy {
	if cfg.ContinueOnFailure() {
		return submission.ContinueOnFailure
	}
	return submission.StopOnFirstFailure
}

func runServer(cfg *config.Config) error {
	log := newLogger(cfg)

	catalog, err := messages.New(cfg.DefaultLang)
	if err != nil {
		return err
	}

	r := router.NewRouter(router.Options{
		Logger:            log,
		Catalog:           catalog,
		Policy:            policyFrom(cfg),
		HTTPClientTimeout: cfg.HTTPClientTimeout,
		RecordsTable:      cfg.RecordsTable,
		SessionTTL:        cfg.SessionTTL,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":          cfg.Addr(),
			"submit_policy": cfg.SubmitPolicy,
			"session_ttl":   cfg.SessionTTL.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("server error", map[string]any{"err": err})
			return err
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down", map[string]any{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"err": err})
		return err
	}
	return nil
}

type submitOptions struct {
	File              string
	Endpoint          string
	APIKey            string
	ContinueOnFailure bool
	Lang              string
	Timeout           time.Duration
	Table             string
}

func submitCmd() *cobra.Command {
	var opts submitOptions

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a JSON file of patient entries without the UI",
		Example: `  medical-data-entry submit --file entries.json \
    --endpoint https://abc.supabase.co --api-key $SUPABASE_ANON_KEY`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.Lang == "" {
				opts.Lang = cfg.DefaultLang
			}
			if opts.Timeout <= 0 {
				opts.Timeout = cfg.HTTPClientTimeout
			}
			if opts.Table == "" {
				opts.Table = cfg.RecordsTable
			}
			if !cmd.Flags().Changed("continue-on-failure") {
				opts.ContinueOnFailure = cfg.ContinueOnFailure()
			}

			f, err := os.Open(opts.File)
			if err != nil {
				return err
			}
			defer f.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runSubmit(ctx, f, cmd.OutOrStdout(), opts, newLogger(cfg), nil)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "JSON array of entries (age, gender, doctorName, disease, startTime, endTime)")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "PostgREST base URL (https://...) or postgres:// DSN")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "API key (also used as the Postgres password when the DSN has none)")
	cmd.Flags().BoolVar(&opts.ContinueOnFailure, "continue-on-failure", false, "keep submitting after a failed record")
	cmd.Flags().StringVar(&opts.Lang, "lang", "", "language for messages (en, es)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "HTTP client timeout")
	cmd.Flags().StringVar(&opts.Table, "table", "", "destination table (default RECORDS_TABLE)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// fileEntry acepta age como número o texto.
type fileEntry struct {
	Age        any    `json:"age"`
	Gender     string `json:"gender"`
	DoctorName string `json:"doctorName"`
	Disease    string `json:"disease"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// loadEntries arma un Store con el contenido del archivo para reusar sus validaciones.
func loadEntries(r io.Reader) ([]entries.Entry, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var in []fileEntry
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	if len(in) == 0 {
		return nil, submission.ErrNoValidEntries
	}

	store := entries.NewStore(&entries.CounterGenerator{})
	for i, fe := range in {
		e := store.List()[0]
		if i > 0 {
			e = store.Add()
		}

		age := ""
		if fe.Age != nil {
			age = fmt.Sprint(fe.Age)
		}
		for field, value := range map[entries.Field]string{
			entries.FieldAge:        age,
			entries.FieldGender:     fe.Gender,
			entries.FieldDoctorName: fe.DoctorName,
			entries.FieldDisease:    fe.Disease,
			entries.FieldStartTime:  fe.StartTime,
			entries.FieldEndTime:    fe.EndTime,
		} {
			if _, err := store.Update(e.ID, field, value); err != nil {
				return nil, fmt.Errorf("entry #%d: %s: %w", i+1, field, err)
			}
		}
	}
	return store.List(), nil
}

// runSubmit corre el pipeline sobre el archivo e imprime la notificación.
// opener nil => factory por esquema.
func runSubmit(ctx context.Context, in io.Reader, out io.Writer, opts submitOptions, log logger.Logger, opener records.Opener) error {
	catalog, err := messages.New(opts.Lang)
	if err != nil {
		return err
	}
	p := catalog.For(opts.Lang)

	var conn connection.Holder
	if err := conn.Connect(opts.Endpoint, opts.APIKey); err != nil {
		n := sessions.ConnectNotice(p, err)
		fmt.Fprintln(out, n.Text)
		return err
	}

	list, err := loadEntries(in)
	if err != nil {
		return err
	}

	if opener == nil {
		opener = sinks.NewFactory(
			sinks.WithTimeout(opts.Timeout),
			sinks.WithTable(opts.Table),
		)
	}
	policy := submission.StopOnFirstFailure
	if opts.ContinueOnFailure {
		policy = submission.ContinueOnFailure
	}
	pipeline := submission.NewPipeline(opener,
		submission.WithPolicy(policy),
		submission.WithLogger(log),
	)

	res, err := pipeline.Submit(ctx, list, &conn)
	fmt.Fprintln(out, sessions.SubmitNotice(p, res, err).Text)
	return err
}
