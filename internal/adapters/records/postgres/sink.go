package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgx/v5"

	"medical-data-entry/internal/ports/records"
)

// Sink inserta registros directo en la tabla, uno por statement.
// No hay transacción: lo escrito antes de una falla queda escrito.
type Sink struct {
	db     *sql.DB
	insert string
}

// NewSink usa table ("tabla" o "schema.tabla"); vacío => records.DefaultTable.
func NewSink(db *sql.DB, table string) *Sink {
	table = strings.TrimSpace(table)
	if table == "" {
		table = records.DefaultTable
	}
	ident := pgx.Identifier(strings.Split(table, ".")).Sanitize()

	return &Sink{
		db: db,
		insert: `
		INSERT INTO ` + ident + ` (
			age, gender, doctor_name, disease,
			start_time, end_time
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
	}
}

func (s *Sink) Insert(ctx context.Context, rec records.WireRecord) error {
	_, err := s.db.ExecContext(ctx, s.insert,
		rec.Age,
		rec.Gender,
		rec.DoctorName,
		rec.Disease,
		toNullString(rec.StartTime),
		toNullString(rec.EndTime),
	)
	return err
}

// Close cierra el pool; el sink es dueño del *sql.DB.
func (s *Sink) Close() error {
	return s.db.Close()
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}
