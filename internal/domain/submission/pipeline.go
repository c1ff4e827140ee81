package submission

import (
	"context"
	"errors"
	"fmt"

	"medical-data-entry/internal/domain/connection"
	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/platform/logger"
	"medical-data-entry/internal/ports/records"
)

var (
	ErrNotConnected   = errors.New("not connected")
	ErrNoValidEntries = errors.New("no valid entries")
)

// Result resume un intento de envío.
type Result struct {
	SuccessCount int
	Attempted    int
	Valid        int // entries que pasaron el filtro de requeridos
	Discarded    int // entries filtrados por incompletos
	Failures     []Failure
}

// Complete es la condición literal de éxito total: successCount == len(validEntries).
func (r Result) Complete() bool {
	return r.Valid > 0 && r.SuccessCount == r.Valid
}

// SubmitError envuelve la primera falla remota/transporte y el resultado parcial.
// Lo ya escrito no se revierte.
type SubmitError struct {
	Result Result
	Err    error
}

func (e *SubmitError) Error() string { return e.Err.Error() }

func (e *SubmitError) Unwrap() error { return e.Err }

type Pipeline struct {
	opener records.Opener
	policy Policy
	log    logger.Logger
}

type Option func(*Pipeline)

func WithPolicy(p Policy) Option {
	return func(pl *Pipeline) { pl.policy = p }
}

func WithLogger(l logger.Logger) Option {
	return func(pl *Pipeline) {
		if l != nil {
			pl.log = l
		}
	}
}

func NewPipeline(opener records.Opener, opts ...Option) *Pipeline {
	p := &Pipeline{
		opener: opener,
		policy: StopOnFirstFailure,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Policy() Policy { return p.policy }

// Submit valida y envía los entries en orden, un registro por llamada.
// No toca la lista: el reset tras éxito total es responsabilidad del dueño.
func (p *Pipeline) Submit(ctx context.Context, list []entries.Entry, conn *connection.Holder) (Result, error) {
	if conn == nil || !conn.Connected() {
		return Result{}, ErrNotConnected
	}

	valid, discarded := filterValid(list)
	res := Result{Valid: len(valid), Discarded: discarded}
	if len(valid) == 0 {
		return res, ErrNoValidEntries
	}

	// Se construyen todos antes de abrir el sink: una edad inválida no deja envíos parciales.
	recs := make([]records.WireRecord, 0, len(valid))
	for _, v := range valid {
		rec, err := BuildRecord(v.Entry)
		if err != nil {
			return res, &AgeError{Position: v.Position, Value: v.Entry.Age}
		}
		recs = append(recs, rec)
	}

	sink, err := p.opener.Open(ctx, records.Target{
		EndpointURL: conn.EndpointURL(),
		APIKey:      conn.APIKey(),
	})
	if err != nil {
		return res, &SubmitError{Result: res, Err: fmt.Errorf("open sink: %w", err)}
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			p.log.Warn("sink close failed", map[string]any{"err": cerr})
		}
	}()

	tasks := make([]Task, 0, len(recs))
	for _, rec := range recs {
		rec := rec
		tasks = append(tasks, func(ctx context.Context) error {
			return sink.Insert(ctx, rec)
		})
	}

	runner := Runner{
		Policy: p.policy,
		OnResult: func(i int, err error) {
			if err != nil {
				p.log.Warn("record insert failed", map[string]any{
					"position": valid[i].Position,
					"err":      err,
				})
				return
			}
			p.log.Debug("record inserted", map[string]any{"position": valid[i].Position})
		},
	}
	rep := runner.Run(ctx, tasks)

	res.Attempted = rep.Attempted
	res.SuccessCount = rep.Succeeded
	res.Failures = rep.Failures

	if !rep.OK() {
		return res, &SubmitError{Result: res, Err: rep.Failures[0].Err}
	}
	return res, nil
}
