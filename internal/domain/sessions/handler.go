package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"medical-data-entry/internal/domain/connection"
	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/domain/submission"
	"medical-data-entry/internal/platform/messages"
)

func RegisterRoutes(r chi.Router, svc *Service, catalog *messages.Catalog) {
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", createSessionHandler(svc))

		sr.Route("/{sessionID}", func(one chi.Router) {
			one.Get("/", getSessionHandler(svc))
			one.Delete("/", deleteSessionHandler(svc))

			one.Post("/connect", connectHandler(svc, catalog))
			one.Post("/setup/toggle", toggleSetupHandler(svc))

			one.Post("/entries", addEntryHandler(svc))
			one.Delete("/entries/{entryID}", removeEntryHandler(svc, catalog))
			one.Patch("/entries/{entryID}", updateEntryHandler(svc))
			one.Post("/entries/{entryID}/capture/{field}", captureTimeHandler(svc))

			one.Post("/submit", submitHandler(svc, catalog))
		})
	})
}

type sessionResponse struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Connected    bool            `json:"connected"`
	EndpointURL  string          `json:"endpoint_url"`
	APIKeyMasked string          `json:"api_key_masked"`
	ShowSetup    bool            `json:"show_setup"`
	Entries      []entryResponse `json:"entries"`
}

type entryResponse struct {
	ID         string `json:"id"`
	Age        string `json:"age"`
	Gender     string `json:"gender"`
	DoctorName string `json:"doctorName"`
	Disease    string `json:"disease"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

type connectRequest struct {
	EndpointURL string `json:"endpoint_url"`
	APIKey      string `json:"api_key"`
}

type connectResponse struct {
	Session sessionResponse `json:"session"`
	Message string          `json:"message"`
}

type updateEntryRequest struct {
	Field string `json:"field"` // age, gender, doctorName, disease, startTime, endTime
	Value string `json:"value"`
}

type removeEntryResponse struct {
	Removed bool            `json:"removed"`
	Message string          `json:"message,omitempty"`
	Session sessionResponse `json:"session"`
}

type submitResponse struct {
	SuccessCount int    `json:"success_count"`
	Attempted    int    `json:"attempted"`
	Valid        int    `json:"valid"`
	Discarded    int    `json:"discarded"`
	Message      string `json:"message"`
}

// createSessionHandler godoc
// @Summary Crear sesión
// @Description Crea una sesión nueva con un único registro vacío y sin conexión.
// @Tags sessions
// @Produce json
// @Success 201 {object} sessionResponse
// @Router /sessions [post]
func createSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Create(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(v))
	}
}

// getSessionHandler godoc
// @Summary Obtener sesión
// @Description Devuelve el estado de la sesión. La API key va enmascarada.
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [get]
func getSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(v))
	}
}

// deleteSessionHandler godoc
// @Summary Borrar sesión
// @Tags sessions
// @Param sessionID path string true "ID de la sesión"
// @Success 204
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [delete]
func deleteSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// connectHandler godoc
// @Summary Conectar sesión
// @Description Guarda URL y API key del almacén remoto. No se valida contra el servicio: "conectado" es una marca local. Si falta alguno, el estado previo no cambia.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body connectRequest true "URL (https:// PostgREST o postgres:// DSN) y API key"
// @Success 200 {object} connectResponse
// @Failure 400 {string} string "invalid json / endpoint url and api key are required"
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/connect [post]
func connectHandler(svc *Service, catalog *messages.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req connectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Connect(r.Context(), chi.URLParam(r, "sessionID"), req.EndpointURL, req.APIKey)
		if err != nil {
			if errors.Is(err, connection.ErrMissingCredentials) {
				n := ConnectNotice(printer(catalog, r), err)
				http.Error(w, n.Text, http.StatusBadRequest)
				return
			}
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, connectResponse{
			Session: toSessionResponse(v),
			Message: ConnectNotice(printer(catalog, r), nil).Text,
		})
	}
}

// toggleSetupHandler godoc
// @Summary Mostrar/ocultar panel de conexión
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/setup/toggle [post]
func toggleSetupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.ToggleSetup(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(v))
	}
}

// addEntryHandler godoc
// @Summary Agregar registro
// @Description Agrega un registro de paciente vacío al final de la lista.
// @Tags entries
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 201 {object} entryResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/entries [post]
func addEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.AddEntry(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

// removeEntryHandler godoc
// @Summary Quitar registro
// @Description Quita un registro. Si es el último, no hace nada (removed=false).
// @Tags entries
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param entryID path string true "ID del registro"
// @Success 200 {object} removeEntryResponse
// @Failure 404 {string} string "session not found / entry not found"
// @Router /sessions/{sessionID}/entries/{entryID} [delete]
func removeEntryHandler(svc *Service, catalog *messages.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		removed, err := svc.RemoveEntry(r.Context(), sessionID, chi.URLParam(r, "entryID"))
		if err != nil {
			writeError(w, err)
			return
		}
		v, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := removeEntryResponse{Removed: removed, Session: toSessionResponse(v)}
		if n, ok := RemoveNotice(printer(catalog, r), removed); ok {
			out.Message = n.Text
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateEntryHandler godoc
// @Summary Editar un campo de un registro
// @Tags entries
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param entryID path string true "ID del registro"
// @Param payload body updateEntryRequest true "Campo y valor. gender: '', Male, Female, Other"
// @Success 200 {object} entryResponse
// @Failure 400 {string} string "invalid json / unknown field / invalid gender"
// @Failure 404 {string} string "session not found / entry not found"
// @Router /sessions/{sessionID}/entries/{entryID} [patch]
func updateEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateEntryRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.UpdateEntry(r.Context(),
			chi.URLParam(r, "sessionID"),
			chi.URLParam(r, "entryID"),
			entries.Field(req.Field),
			req.Value,
		)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

// captureTimeHandler godoc
// @Summary Capturar hora
// @Description Escribe la hora local actual (MM/DD/YYYY, hh:mm:ss AM/PM) en startTime o endTime. Pisa el valor anterior.
// @Tags entries
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param entryID path string true "ID del registro"
// @Param field path string true "startTime o endTime"
// @Success 200 {object} entryResponse
// @Failure 400 {string} string "field is not a time field"
// @Failure 404 {string} string "session not found / entry not found"
// @Router /sessions/{sessionID}/entries/{entryID}/capture/{field} [post]
func captureTimeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.CaptureTime(r.Context(),
			chi.URLParam(r, "sessionID"),
			chi.URLParam(r, "entryID"),
			entries.Field(chi.URLParam(r, "field")),
		)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

// submitHandler godoc
// @Summary Enviar registros
// @Description Envía los registros completos, uno por llamada y en orden. Con la política por defecto se detiene en la primera falla; lo ya guardado no se revierte. Solo con éxito total la lista vuelve a un registro vacío.
// @Tags submit
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param Accept-Language header string false "Idioma del mensaje (en, es)"
// @Success 200 {object} submitResponse
// @Failure 400 {object} submitResponse "no conectado / sin registros válidos / edad inválida"
// @Failure 404 {string} string "session not found"
// @Failure 502 {object} submitResponse "error remoto o de transporte"
// @Router /sessions/{sessionID}/submit [post]
func submitHandler(svc *Service, catalog *messages.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Submit(r.Context(), chi.URLParam(r, "sessionID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, err)
			return
		}

		out := submitResponse{
			SuccessCount: res.SuccessCount,
			Attempted:    res.Attempted,
			Valid:        res.Valid,
			Discarded:    res.Discarded,
			Message:      SubmitNotice(printer(catalog, r), res, err).Text,
		}
		writeJSON(w, statusFor(err), out)
	}
}

func printer(catalog *messages.Catalog, r *http.Request) messages.Printer {
	if catalog == nil {
		return messages.Printer{}
	}
	return catalog.For(r.Header.Get("Accept-Language"))
}

// statusFor mapea errores de dominio a status HTTP.
func statusFor(err error) int {
	var submitErr *submission.SubmitError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, connection.ErrMissingCredentials),
		errors.Is(err, submission.ErrNotConnected),
		errors.Is(err, submission.ErrNoValidEntries),
		errors.Is(err, submission.ErrInvalidAge),
		errors.Is(err, entries.ErrUnknownField),
		errors.Is(err, entries.ErrInvalidGender),
		errors.Is(err, entries.ErrNotTimeField):
		return http.StatusBadRequest
	case errors.As(err, &submitErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	http.Error(w, msg, status)
}

func toSessionResponse(v View) sessionResponse {
	out := sessionResponse{
		ID:           v.ID,
		CreatedAt:    v.CreatedAt,
		Connected:    v.Connected,
		EndpointURL:  v.EndpointURL,
		APIKeyMasked: v.APIKeyMasked,
		ShowSetup:    v.ShowSetup,
		Entries:      make([]entryResponse, 0, len(v.Entries)),
	}
	for _, e := range v.Entries {
		out.Entries = append(out.Entries, toEntryResponse(e))
	}
	return out
}

func toEntryResponse(e entries.Entry) entryResponse {
	return entryResponse{
		ID:         e.ID,
		Age:        e.Age,
		Gender:     string(e.Gender),
		DoctorName: e.DoctorName,
		Disease:    e.Disease,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
	}
}

// writeJSON duplicado a propósito por módulo (igual que el resto de handlers).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
