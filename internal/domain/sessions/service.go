package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/domain/submission"
	"medical-data-entry/internal/platform/logger"
	"medical-data-entry/internal/platform/messages"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrEntryNotFound = errors.New("entry not found")
)

type Service struct {
	repo     Repository
	pipeline *submission.Pipeline
	clock    entries.Clock
	ids      func() entries.IDGenerator
	log      logger.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithClock(c entries.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDGenerator define cómo se generan ids de entries por sesión.
func WithIDGenerator(fn func() entries.IDGenerator) Option {
	return func(s *Service) {
		if fn != nil {
			s.ids = fn
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(repo Repository, pipeline *submission.Pipeline, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		pipeline: pipeline,
		clock:    entries.RealClock{},
		ids:      entries.UUIDGenerator,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context) (View, error) {
	sess := newSession(uuid.NewString(), s.now().UTC(), s.ids())
	if err := s.repo.Create(ctx, sess); err != nil {
		return View{}, err
	}
	s.log.Info("session created", map[string]any{"session_id": sess.ID})
	return sess.view(), nil
}

// with busca la sesión y ejecuta fn con su lock tomado.
func (s *Service) with(ctx context.Context, id string, fn func(*Session) error) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	var v View
	err := s.with(ctx, id, func(sess *Session) error {
		v = sess.view()
		return nil
	})
	return v, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

// Connect guarda url + key. Un intento fallido no toca el estado previo.
// Con éxito se oculta el panel de setup.
func (s *Service) Connect(ctx context.Context, id, endpointURL, apiKey string) (View, error) {
	var v View
	err := s.with(ctx, id, func(sess *Session) error {
		if err := sess.conn.Connect(endpointURL, apiKey); err != nil {
			return err
		}
		sess.showSetup = false
		v = sess.view()
		s.log.Info("session connected", map[string]any{
			"session_id": sess.ID,
			"endpoint":   sess.conn.EndpointURL(),
		})
		return nil
	})
	return v, err
}

func (s *Service) ToggleSetup(ctx context.Context, id string) (View, error) {
	var v View
	err := s.with(ctx, id, func(sess *Session) error {
		sess.showSetup = !sess.showSetup
		v = sess.view()
		return nil
	})
	return v, err
}

func (s *Service) AddEntry(ctx context.Context, id string) (entries.Entry, error) {
	var e entries.Entry
	err := s.with(ctx, id, func(sess *Session) error {
		e = sess.store.Add()
		return nil
	})
	return e, err
}

// RemoveEntry quita un entry. Si es el último no hace nada (removed=false).
func (s *Service) RemoveEntry(ctx context.Context, id, entryID string) (removed bool, err error) {
	err = s.with(ctx, id, func(sess *Session) error {
		if _, ok := sess.store.Get(entryID); !ok {
			return ErrEntryNotFound
		}
		removed = sess.store.Remove(entryID)
		return nil
	})
	return removed, err
}

func (s *Service) UpdateEntry(ctx context.Context, id, entryID string, field entries.Field, value string) (entries.Entry, error) {
	var e entries.Entry
	err := s.with(ctx, id, func(sess *Session) error {
		ok, err := sess.store.Update(entryID, field, value)
		if err != nil {
			return err
		}
		if !ok {
			return ErrEntryNotFound
		}
		e, _ = sess.store.Get(entryID)
		return nil
	})
	return e, err
}

func (s *Service) CaptureTime(ctx context.Context, id, entryID string, field entries.Field) (entries.Entry, error) {
	var e entries.Entry
	err := s.with(ctx, id, func(sess *Session) error {
		_, ok, err := entries.CaptureTime(sess.store, s.clock, entryID, field)
		if err != nil {
			return err
		}
		if !ok {
			return ErrEntryNotFound
		}
		e, _ = sess.store.Get(entryID)
		return nil
	})
	return e, err
}

// Submit envía los entries de la sesión. El lock se mantiene durante todo el
// envío: ninguna otra operación sobre la sesión se intercala.
// La lista vuelve a un único entry vacío solo con éxito total.
func (s *Service) Submit(ctx context.Context, id string) (submission.Result, error) {
	var (
		res       submission.Result
		submitErr error
	)
	err := s.with(ctx, id, func(sess *Session) error {
		res, submitErr = s.pipeline.Submit(ctx, sess.store.List(), &sess.conn)
		if submitErr == nil && res.Complete() {
			sess.store.ResetToSingleBlank()
		}

		fields := map[string]any{
			"session_id":    sess.ID,
			"valid":         res.Valid,
			"attempted":     res.Attempted,
			"success_count": res.SuccessCount,
			"discarded":     res.Discarded,
		}
		if submitErr != nil {
			fields["err"] = submitErr
			s.log.Warn("submit failed", fields)
		} else {
			s.log.Info("submit completed", fields)
		}
		return nil
	})
	if err != nil {
		return submission.Result{}, err
	}
	return res, submitErr
}

// SetNotice deja una notificación para el próximo render.
func (s *Service) SetNotice(ctx context.Context, id string, n messages.Notice) error {
	return s.with(ctx, id, func(sess *Session) error {
		sess.notice = &n
		return nil
	})
}

// TakeNotice devuelve y borra la notificación pendiente.
func (s *Service) TakeNotice(ctx context.Context, id string) (messages.Notice, bool, error) {
	var (
		n  messages.Notice
		ok bool
	)
	err := s.with(ctx, id, func(sess *Session) error {
		if sess.notice != nil {
			n, ok = *sess.notice, true
			sess.notice = nil
		}
		return nil
	})
	return n, ok, err
}
