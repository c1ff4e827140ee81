package entries

import "time"

// TimeLayout replica toLocaleString en-US con mes/día/hora/min/seg a 2 dígitos
// y reloj de 12 horas, ej: "10/19/2026, 02:05:09 PM".
const TimeLayout = "01/02/2006, 03:04:05 PM"

// Clock abstrae time.Now() para tests deterministas.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FormatTime aplica TimeLayout en la zona local del valor recibido.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// CaptureTime escribe la hora actual en startTime/endTime del entry.
// Cada llamada pisa el valor anterior. Devuelve el texto escrito.
func CaptureTime(s *Store, clock Clock, id string, field Field) (string, bool, error) {
	if !field.IsTime() {
		return "", false, ErrNotTimeField
	}
	if clock == nil {
		clock = RealClock{}
	}

	formatted := FormatTime(clock.Now().Local())
	ok, err := s.Update(id, field, formatted)
	if err != nil || !ok {
		return "", ok, err
	}
	return formatted, true, nil
}
