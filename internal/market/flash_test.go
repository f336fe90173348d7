package market

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/nextrade-dashboard/internal/marketdata"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

type flashRecorder struct {
	mu     sync.Mutex
	events []types.FlashDirection
}

func (r *flashRecorder) record(dir types.FlashDirection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, dir)
}

func (r *flashRecorder) snapshot() []types.FlashDirection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.FlashDirection(nil), r.events...)
}

func (r *flashRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newTestFlasher(rec *flashRecorder, draws ...float64) *PriceFlasher {
	return NewPriceFlasher(FlashParams{
		Period:   20 * time.Millisecond,
		Duration: 5 * time.Millisecond,
		Source:   marketdata.NewSequenceSource(draws...),
		OnChange: rec.record,
	})
}

func TestNewPriceFlasher_Defaults(t *testing.T) {
	f := NewPriceFlasher(FlashParams{})

	assert.Equal(t, 3*time.Second, f.p.Period)
	assert.Equal(t, 500*time.Millisecond, f.p.Duration)
	assert.NotNil(t, f.p.Source)
	assert.Equal(t, types.FlashNone, f.Flag())
}

func TestPriceFlasher_RaisesAndClears(t *testing.T) {
	rec := &flashRecorder{}
	f := newTestFlasher(rec, 0.9, 0.1)

	f.Start(context.Background(), 234.82)
	defer f.Stop()

	require.Eventually(t, func() bool { return rec.count() >= 4 }, 2*time.Second, 5*time.Millisecond)

	events := rec.snapshot()[:4]
	assert.Equal(t, []types.FlashDirection{
		types.FlashUp, types.FlashNone,
		types.FlashDown, types.FlashNone,
	}, events)
}

func TestPriceFlasher_MidpointDrawIsDown(t *testing.T) {
	rec := &flashRecorder{}
	f := newTestFlasher(rec, 0.5)

	f.Start(context.Background(), 100)
	defer f.Stop()

	require.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, types.FlashDown, rec.snapshot()[0])
}

func TestPriceFlasher_StopCancelsEverything(t *testing.T) {
	rec := &flashRecorder{}
	f := NewPriceFlasher(FlashParams{
		Period:   10 * time.Millisecond,
		Duration: time.Hour,
		Source:   marketdata.NewSequenceSource(0.9),
		OnChange: rec.record,
	})

	f.Start(context.Background(), 100)
	require.Eventually(t, func() bool { return f.Flag() == types.FlashUp }, 2*time.Second, 2*time.Millisecond)

	f.Stop()
	assert.Equal(t, types.FlashNone, f.Flag())

	n := rec.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, rec.count())

	assert.NotPanics(t, f.Stop)
}

func TestPriceFlasher_ContextCancel(t *testing.T) {
	rec := &flashRecorder{}
	f := newTestFlasher(rec, 0.9)

	ctx, cancel := context.WithCancel(context.Background())
	f.Start(ctx, 100)
	cancel()

	done := make(chan struct{})
	go func() {
		f.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flasher did not stop after context cancel")
	}
}

func TestStore_FlashFollowsSelection(t *testing.T) {
	s := newTestStore(t)
	rec := &flashRecorder{}
	f := NewPriceFlasher(FlashParams{
		Period:   10 * time.Millisecond,
		Duration: time.Hour,
		Source:   marketdata.NewSequenceSource(0.9),
		OnChange: rec.record,
	})

	s.AttachFlasher(context.Background(), f)
	require.Eventually(t, func() bool { return s.Flash() == types.FlashUp }, 2*time.Second, 2*time.Millisecond)

	// The raised flag belonged to BTC; switching drops it and its pending clear.
	require.NoError(t, s.SelectInstrument("ETH"))
	assert.Equal(t, types.FlashNone, s.Flash())

	require.Eventually(t, func() bool { return s.Flash() == types.FlashUp }, 2*time.Second, 2*time.Millisecond)

	s.Close()
	assert.Equal(t, types.FlashNone, s.Flash())

	n := rec.count()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, n, rec.count())
}
