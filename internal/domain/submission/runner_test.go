package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tasksFrom(results []error, calls *[]int) []Task {
	out := make([]Task, 0, len(results))
	for i, r := range results {
		i, r := i, r
		out = append(out, func(context.Context) error {
			*calls = append(*calls, i)
			return r
		})
	}
	return out
}

func TestRunner_StopOnFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	var calls []int

	rep := Runner{Policy: StopOnFirstFailure}.Run(context.Background(), tasksFrom([]error{nil, boom, nil}, &calls))

	assert.Equal(t, []int{0, 1}, calls)
	assert.Equal(t, 2, rep.Attempted)
	assert.Equal(t, 1, rep.Succeeded)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, 1, rep.Failures[0].Index)
	assert.ErrorIs(t, rep.Failures[0].Err, boom)
	assert.False(t, rep.OK())
}

func TestRunner_ContinueOnFailure(t *testing.T) {
	boom := errors.New("boom")
	var calls []int

	rep := Runner{Policy: ContinueOnFailure}.Run(context.Background(), tasksFrom([]error{boom, nil, boom}, &calls))

	assert.Equal(t, []int{0, 1, 2}, calls)
	assert.Equal(t, 3, rep.Attempted)
	assert.Equal(t, 1, rep.Succeeded)
	assert.Len(t, rep.Failures, 2)
}

func TestRunner_AllOK(t *testing.T) {
	var calls []int
	var seen []int

	rep := Runner{OnResult: func(i int, err error) {
		assert.NoError(t, err)
		seen = append(seen, i)
	}}.Run(context.Background(), tasksFrom([]error{nil, nil}, &calls))

	assert.True(t, rep.OK())
	assert.Equal(t, 2, rep.Succeeded)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls []int

	rep := Runner{Policy: ContinueOnFailure}.Run(ctx, tasksFrom([]error{nil, nil}, &calls))

	assert.Empty(t, calls)
	assert.Zero(t, rep.Attempted)
	require.Len(t, rep.Failures, 1)
	assert.ErrorIs(t, rep.Failures[0].Err, context.Canceled)
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "stop", StopOnFirstFailure.String())
	assert.Equal(t, "continue", ContinueOnFailure.String())
}
