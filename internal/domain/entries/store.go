package entries

import (
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidGender = errors.New("invalid gender")
	ErrNotTimeField  = errors.New("field is not a time field")
)

// IDGenerator entrega ids únicos para entries. Nunca repite.
type IDGenerator interface {
	NextID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NextID() string { return uuid.NewString() }

// UUIDGenerator es el generador por defecto.
func UUIDGenerator() IDGenerator { return uuidGenerator{} }

// CounterGenerator genera "1", "2", ... (tests y salidas deterministas).
type CounterGenerator struct {
	n atomic.Uint64
}

func (g *CounterGenerator) NextID() string {
	return strconv.FormatUint(g.n.Add(1), 10)
}

// Store es la lista ordenada de entries de una sesión.
// Invariante: siempre tiene al menos un entry.
// No es thread-safe: el dueño (la sesión) serializa el acceso.
type Store struct {
	ids   IDGenerator
	items []Entry
}

func NewStore(ids IDGenerator) *Store {
	if ids == nil {
		ids = UUIDGenerator()
	}
	s := &Store{ids: ids}
	s.items = []Entry{s.blank()}
	return s
}

func (s *Store) blank() Entry {
	return Entry{ID: s.ids.NextID()}
}

// Add agrega un entry vacío al final.
func (s *Store) Add() Entry {
	e := s.blank()
	s.items = append(s.items, e)
	return e
}

// Remove quita el entry solo si queda más de uno. Devuelve si borró algo.
func (s *Store) Remove(id string) bool {
	if len(s.items) <= 1 {
		return false
	}
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Update reemplaza un campo de un entry. Id desconocido => (false, nil).
func (s *Store) Update(id string, field Field, value string) (bool, error) {
	if !field.Valid() {
		return false, ErrUnknownField
	}
	if field == FieldGender && !Gender(value).Valid() {
		return false, ErrInvalidGender
	}

	for i, e := range s.items {
		if e.ID == id {
			s.items[i] = e.with(field, value)
			return true, nil
		}
	}
	return false, nil
}

// ResetToSingleBlank deja la lista con un único entry vacío (id nuevo).
func (s *Store) ResetToSingleBlank() Entry {
	e := s.blank()
	s.items = []Entry{e}
	return e
}

// List devuelve una copia en orden.
func (s *Store) List() []Entry {
	out := make([]Entry, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Get(id string) (Entry, bool) {
	for _, e := range s.items {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Store) Len() int {
	return len(s.items)
}
