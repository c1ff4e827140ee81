package submission

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/ports/records"
)

var ErrInvalidAge = errors.New("age must be a non-negative integer")

// AgeError indica qué entry (posición 1-based en la lista) tiene una edad inválida.
type AgeError struct {
	Position int
	Value    string
}

func (e *AgeError) Error() string {
	return fmt.Sprintf("entry #%d: %v: %q", e.Position, ErrInvalidAge, e.Value)
}

func (e *AgeError) Unwrap() error { return ErrInvalidAge }

// IsValid: age, gender, doctorName y disease no vacíos. Los tiempos son opcionales.
// Se compara el valor crudo: " " cuenta como presente.
func IsValid(e entries.Entry) bool {
	return e.Age != "" &&
		e.Gender != "" &&
		e.DoctorName != "" &&
		e.Disease != ""
}

// positioned conserva la posición original para reportar errores.
type positioned struct {
	Position int
	Entry    entries.Entry
}

// filterValid separa válidos (en orden) y cuenta descartados.
func filterValid(list []entries.Entry) ([]positioned, int) {
	valid := make([]positioned, 0, len(list))
	for i, e := range list {
		if IsValid(e) {
			valid = append(valid, positioned{Position: i + 1, Entry: e})
		}
	}
	return valid, len(list) - len(valid)
}

// BuildRecord mapea un Entry válido a su WireRecord.
func BuildRecord(e entries.Entry) (records.WireRecord, error) {
	age, err := parseAge(e.Age)
	if err != nil {
		return records.WireRecord{}, err
	}
	return records.WireRecord{
		Age:        age,
		Gender:     string(e.Gender),
		DoctorName: e.DoctorName,
		Disease:    e.Disease,
		StartTime:  nullable(e.StartTime),
		EndTime:    nullable(e.EndTime),
	}, nil
}

// parseAge toma los dígitos iniciales (tras espacios y un signo opcional):
// "30 years" => 30, "12.5" => 12. Sin dígitos o negativo es inválido.
func parseAge(raw string) (int, error) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, ErrInvalidAge
	}
	n, err := strconv.Atoi(sign + s[:end])
	if err != nil || n < 0 {
		return 0, ErrInvalidAge
	}
	return n, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
