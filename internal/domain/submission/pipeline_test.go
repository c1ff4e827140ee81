package submission

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-data-entry/internal/domain/connection"
	"medical-data-entry/internal/domain/entries"
	"medical-data-entry/internal/ports/records"
)

// -------------------------
// Fake sink
// -------------------------

type fakeSink struct {
	results  []error // resultado por llamada; si se agota => nil
	inserted []records.WireRecord
	closed   bool
}

func (s *fakeSink) Insert(_ context.Context, rec records.WireRecord) error {
	idx := len(s.inserted)
	s.inserted = append(s.inserted, rec)
	if idx < len(s.results) {
		return s.results[idx]
	}
	return nil
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

type fakeOpener struct {
	sink    *fakeSink
	err     error
	opened  int
	targets []records.Target
}

func (o *fakeOpener) Open(_ context.Context, t records.Target) (records.Sink, error) {
	o.opened++
	o.targets = append(o.targets, t)
	if o.err != nil {
		return nil, o.err
	}
	return o.sink, nil
}

func connected(t *testing.T) *connection.Holder {
	t.Helper()
	h := &connection.Holder{}
	require.NoError(t, h.Connect("https://abc.supabase.co", "anon-key"))
	return h
}

func validEntry(id, age string) entries.Entry {
	return entries.Entry{ID: id, Age: age, Gender: entries.GenderMale, DoctorName: "Dr. A", Disease: "Flu"}
}

// -------------------------
// Tests
// -------------------------

func TestSubmit_NotConnected_NoCalls(t *testing.T) {
	op := &fakeOpener{sink: &fakeSink{}}
	p := NewPipeline(op)

	_, err := p.Submit(context.Background(), []entries.Entry{validEntry("1", "30")}, &connection.Holder{})
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Zero(t, op.opened)
	assert.Empty(t, op.sink.inserted)
}

func TestSubmit_NoValidEntries_NoCalls(t *testing.T) {
	op := &fakeOpener{sink: &fakeSink{}}
	p := NewPipeline(op)

	res, err := p.Submit(context.Background(), []entries.Entry{{ID: "1"}, {ID: "2", Age: "3"}}, connected(t))
	assert.ErrorIs(t, err, ErrNoValidEntries)
	assert.Equal(t, 2, res.Discarded)
	assert.Zero(t, op.opened)
}

func TestSubmit_OneValidOneBlank_SendsOnlyFirst(t *testing.T) {
	op := &fakeOpener{sink: &fakeSink{}}
	p := NewPipeline(op)

	list := []entries.Entry{
		{ID: "1", Age: "30", Gender: "Male", DoctorName: "Dr. A", Disease: "Flu"},
		{ID: "2"},
	}
	res, err := p.Submit(context.Background(), list, connected(t))
	require.NoError(t, err)

	require.Len(t, op.sink.inserted, 1)
	rec := op.sink.inserted[0]
	assert.Equal(t, 30, rec.Age)
	assert.Equal(t, "Male", rec.Gender)
	assert.Nil(t, rec.StartTime)
	assert.Nil(t, rec.EndTime)

	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.Valid)
	assert.Equal(t, 1, res.Discarded)
	assert.True(t, res.Complete())
	assert.True(t, op.sink.closed)
	assert.Equal(t, records.Target{EndpointURL: "https://abc.supabase.co", APIKey: "anon-key"}, op.targets[0])
}

func TestSubmit_WhitespaceDoctorName_IsSent(t *testing.T) {
	op := &fakeOpener{sink: &fakeSink{}}
	p := NewPipeline(op)

	list := []entries.Entry{
		validEntry("1", "30"),
		{ID: "2", Age: "40", Gender: entries.GenderFemale, DoctorName: " ", Disease: "Cold"},
	}
	res, err := p.Submit(context.Background(), list, connected(t))
	require.NoError(t, err)

	require.Len(t, op.sink.inserted, 2)
	assert.Equal(t, " ", op.sink.inserted[1].DoctorName)
	assert.Equal(t, 2, res.Valid)
	assert.Zero(t, res.Discarded)
	assert.True(t, res.Complete())
}

func TestSubmit_SecondFails_StopsAndReportsRemoteError(t *testing.T) {
	remote := &records.RemoteError{StatusCode: http.StatusBadRequest, Body: "invalid input syntax"}
	op := &fakeOpener{sink: &fakeSink{results: []error{nil, remote}}}
	p := NewPipeline(op)

	list := []entries.Entry{validEntry("1", "30"), validEntry("2", "40"), validEntry("3", "50")}
	res, err := p.Submit(context.Background(), list, connected(t))
	require.Error(t, err)

	var serr *SubmitError
	require.True(t, errors.As(err, &serr))
	var rerr *records.RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "invalid input syntax", err.Error())

	assert.Len(t, op.sink.inserted, 2)
	assert.Equal(t, 2, res.Attempted)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 3, res.Valid)
	assert.False(t, res.Complete())
	assert.Equal(t, res, serr.Result)
}

func TestSubmit_ContinueOnFailure_AttemptsAll(t *testing.T) {
	boom := errors.New("connection refused")
	op := &fakeOpener{sink: &fakeSink{results: []error{boom, nil, nil}}}
	p := NewPipeline(op, WithPolicy(ContinueOnFailure))

	list := []entries.Entry{validEntry("1", "30"), validEntry("2", "40"), validEntry("3", "50")}
	res, err := p.Submit(context.Background(), list, connected(t))
	require.ErrorIs(t, err, boom)

	assert.Len(t, op.sink.inserted, 3)
	assert.Equal(t, 3, res.Attempted)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Len(t, res.Failures, 1)
	assert.False(t, res.Complete())
}

func TestSubmit_InvalidAge_NoCalls(t *testing.T) {
	op := &fakeOpener{sink: &fakeSink{}}
	p := NewPipeline(op)

	list := []entries.Entry{{ID: "0"}, validEntry("1", "30"), validEntry("2", "abc")}
	_, err := p.Submit(context.Background(), list, connected(t))

	assert.ErrorIs(t, err, ErrInvalidAge)
	var aerr *AgeError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, 3, aerr.Position)
	assert.Equal(t, "abc", aerr.Value)
	assert.Zero(t, op.opened)
}

func TestSubmit_OpenFails(t *testing.T) {
	op := &fakeOpener{err: errors.New("unsupported endpoint")}
	p := NewPipeline(op)

	res, err := p.Submit(context.Background(), []entries.Entry{validEntry("1", "30")}, connected(t))
	var serr *SubmitError
	require.True(t, errors.As(err, &serr))
	assert.Contains(t, err.Error(), "unsupported endpoint")
	assert.Zero(t, res.Attempted)
}

func TestSubmit_TransportErrorTreatedLikeRemote(t *testing.T) {
	transport := errors.New("dial tcp: no such host")
	op := &fakeOpener{sink: &fakeSink{results: []error{transport}}}
	p := NewPipeline(op)

	list := []entries.Entry{validEntry("1", "30"), validEntry("2", "31")}
	res, err := p.Submit(context.Background(), list, connected(t))

	assert.ErrorIs(t, err, transport)
	assert.Equal(t, 1, res.Attempted)
	assert.Zero(t, res.SuccessCount)
}
