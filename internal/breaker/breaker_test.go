package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(threshold int, timeout time.Duration) (*CircuitBreaker, *clock) {
	c := &clock{t: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)}
	return New(threshold, timeout, WithClock(c.now)), c
}

func fail() error    { return errBoom }
func succeed() error { return nil }

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, b.Call(fail), errBoom)
	}
	assert.Equal(t, Open, b.State())
}

func TestOpenRejectsWithoutInvoking(t *testing.T) {
	b, _ := newTestBreaker(2, time.Minute)

	require.Error(t, b.Call(fail))
	require.Error(t, b.Call(fail))
	require.Equal(t, Open, b.State())

	invoked := false
	err := b.Call(func() error {
		invoked = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, invoked)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	require.Error(t, b.Call(fail))
	require.Error(t, b.Call(fail))
	require.NoError(t, b.Call(succeed))
	require.Error(t, b.Call(fail))
	require.Error(t, b.Call(fail))

	// Two failures after the reset stay below the threshold of three.
	assert.Equal(t, Closed, b.State())
}

func TestHalfOpenTrialSuccessCloses(t *testing.T) {
	b, clk := newTestBreaker(2, time.Minute)

	require.Error(t, b.Call(fail))
	require.Error(t, b.Call(fail))
	require.Equal(t, Open, b.State())

	clk.advance(61 * time.Second)

	invoked := false
	require.NoError(t, b.Call(func() error {
		invoked = true
		return nil
	}))
	assert.True(t, invoked)
	assert.Equal(t, Closed, b.State())
}

func TestHalfOpenTrialFailureReopens(t *testing.T) {
	b, clk := newTestBreaker(2, time.Minute)

	require.Error(t, b.Call(fail))
	require.Error(t, b.Call(fail))
	clk.advance(61 * time.Second)

	require.ErrorIs(t, b.Call(fail), errBoom)
	assert.Equal(t, Open, b.State())

	// The timeout restarts from the trial failure.
	clk.advance(30 * time.Second)
	assert.ErrorIs(t, b.Call(succeed), ErrOpen)

	clk.advance(31 * time.Second)
	assert.NoError(t, b.Call(succeed))
	assert.Equal(t, Closed, b.State())
}

func TestHalfOpenAdmitsExactlyOneTrial(t *testing.T) {
	b, clk := newTestBreaker(1, time.Minute)

	require.Error(t, b.Call(fail))
	clk.advance(61 * time.Second)

	trialStarted := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- b.Call(func() error {
			close(trialStarted)
			<-release
			return nil
		})
	}()

	<-trialStarted
	// A second call while the trial is in flight is rejected.
	assert.ErrorIs(t, b.Call(succeed), ErrOpen)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, Closed, b.State())
}
