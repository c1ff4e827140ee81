package records

import "context"

// DefaultTable es la tabla que expone PostgREST en /rest/v1/<tabla>.
const DefaultTable = "medical_records"

// DefaultRemoteMessage se usa cuando el remoto falla sin cuerpo.
const DefaultRemoteMessage = "Failed to save record"

// WireRecord es el payload que se envía por cada entry válido.
// Los tiempos vacíos viajan como null, no como "".
type WireRecord struct {
	Age        int     `json:"age"`
	Gender     string  `json:"gender"`
	DoctorName string  `json:"doctor_name"`
	Disease    string  `json:"disease"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
}

// Target es a dónde se escribe: lo que el usuario ingresó al conectar.
type Target struct {
	EndpointURL string
	APIKey      string
}

// Sink escribe registros de a uno.
type Sink interface {
	Insert(ctx context.Context, rec WireRecord) error
	Close() error
}

// Opener construye el Sink adecuado para un Target.
type Opener interface {
	Open(ctx context.Context, t Target) (Sink, error)
}

// RemoteError es una respuesta no exitosa del almacén remoto.
// El mensaje es el cuerpo de la respuesta (o DefaultRemoteMessage).
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return DefaultRemoteMessage
	}
	return e.Body
}
