package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	calls int
	err   error
}

func (f *fakeExpirer) ExpireStaleJobs(ctx context.Context, now time.Time) (int64, error) {
	f.calls++
	return 2, f.err
}

func TestNew_RejectsInvalidSpec(t *testing.T) {
	_, err := New(&fakeExpirer{}, "every tuesday")
	assert.Error(t, err)
}

func TestNew_AcceptsDescriptors(t *testing.T) {
	s, err := New(&fakeExpirer{}, "@hourly")
	require.NoError(t, err)
	s.Start()
	s.Stop(context.Background())
}

func TestRunExpiry_SwallowsErrors(t *testing.T) {
	f := &fakeExpirer{err: errors.New("db down")}
	runExpiry(f)
	runExpiry(f)
	assert.Equal(t, 2, f.calls)
}
