package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-data-entry/internal/domain/connection"
	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/domain/submission"
	"medical-data-entry/internal/platform/logger"
)

func TestLoadEntries(t *testing.T) {
	list, err := loadEntries(strings.NewReader(`[
		{"age": 30, "gender": "Male", "doctorName": "Dr. A", "disease": "Flu"},
		{"age": "41", "gender": "Other", "doctorName": "Dr. B", "disease": "Cold", "startTime": "10/19/2026, 09:30:00 AM"},
		{}
	]`))
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "30", list[0].Age)
	assert.Equal(t, entries.GenderOther, list[1].Gender)
	assert.Equal(t, "10/19/2026, 09:30:00 AM", list[1].StartTime)
	assert.Equal(t, "", list[2].Age)
}

func TestLoadEntries_InvalidGender(t *testing.T) {
	_, err := loadEntries(strings.NewReader(`[{"age": 30, "gender": "robot"}]`))
	assert.ErrorIs(t, err, entries.ErrInvalidGender)
}

func TestRunSubmit_PostsValidEntries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runSubmit(context.Background(), strings.NewReader(`[
		{"age": 30, "gender": "Male", "doctorName": "Dr. A", "disease": "Flu"},
		{"age": 31}
	]`), &out, submitOptions{Endpoint: srv.URL, APIKey: "k", Lang: "en"}, logger.Nop(), nil)

	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
	assert.Contains(t, out.String(), "Successfully saved 1 record to database!")
	assert.Contains(t, out.String(), "1 incomplete entry was discarded.")
}

func TestRunSubmit_MissingCredentials(t *testing.T) {
	var out bytes.Buffer
	err := runSubmit(context.Background(), strings.NewReader(`[]`), &out, submitOptions{Lang: "en"}, logger.Nop(), nil)

	assert.ErrorIs(t, err, connection.ErrMissingCredentials)
	assert.Contains(t, out.String(), "Please enter both URL and API Key")
}

func TestRunSubmit_RemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runSubmit(context.Background(), strings.NewReader(`[
		{"age": 30, "gender": "Male", "doctorName": "Dr. A", "disease": "Flu"}
	]`), &out, submitOptions{Endpoint: srv.URL, APIKey: "k", Lang: "es"}, logger.Nop(), nil)

	var serr *submission.SubmitError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, out.String(), "Error al guardar en la base de datos: Failed to save record")
}
