package market

import (
	"context"
	"sync"
	"time"

	"github.com/ducminhle1904/nextrade-dashboard/internal/marketdata"
	"github.com/ducminhle1904/nextrade-dashboard/internal/monitoring"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

// flashDrift scales the hypothetical tick that decides the flash direction.
const flashDrift = 0.0005

type FlashParams struct {
	// Defaults to 3s.
	Period time.Duration
	// How long a flag stays raised before it clears. Defaults to 500ms.
	Duration time.Duration
	// Defaults to a time-seeded source. Kept separate from the generator's
	// source so the ticker never races snapshot synthesis.
	Source marketdata.Source
	// Called on every flag change, including the clear back to FlashNone.
	// Runs on the timer goroutine and must not block.
	OnChange func(types.FlashDirection)
}

// PriceFlasher periodically raises an up/down flag for the selected price
// and clears it shortly after. Each Start binds the ticker to one price;
// callbacks scheduled under an earlier binding are discarded.
type PriceFlasher struct {
	p FlashParams

	// serializes Start and Stop
	lifecycle sync.Mutex

	mtx        sync.Mutex
	generation uint64
	flag       types.FlashDirection
	cancel     context.CancelFunc
	clearTimer *time.Timer
	wg         sync.WaitGroup
}

func NewPriceFlasher(p FlashParams) *PriceFlasher {
	if p.Period <= 0 {
		p.Period = 3 * time.Second
	}
	if p.Duration <= 0 {
		p.Duration = 500 * time.Millisecond
	}
	if p.Source == nil {
		p.Source = marketdata.NewSource(0)
	}
	return &PriceFlasher{p: p}
}

// Start (re)binds the ticker to price. Any running ticker and pending clear
// are cancelled first.
func (f *PriceFlasher) Start(ctx context.Context, price float64) {
	f.lifecycle.Lock()
	defer f.lifecycle.Unlock()

	f.stop()

	f.mtx.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	gen := f.generation
	f.wg.Add(1)
	f.mtx.Unlock()

	go f.run(loopCtx, gen, price)
}

// Stop cancels the ticker and any pending clear, lowers the flag and waits
// for the ticker goroutine to exit. Safe to call repeatedly.
func (f *PriceFlasher) Stop() {
	f.lifecycle.Lock()
	defer f.lifecycle.Unlock()

	f.stop()
}

func (f *PriceFlasher) stop() {
	f.mtx.Lock()
	f.generation++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if f.clearTimer != nil {
		f.clearTimer.Stop()
		f.clearTimer = nil
	}
	f.flag = types.FlashNone
	f.mtx.Unlock()

	f.wg.Wait()
}

// Flag returns the current flash direction.
func (f *PriceFlasher) Flag() types.FlashDirection {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.flag
}

func (f *PriceFlasher) run(ctx context.Context, gen uint64, price float64) {
	defer f.wg.Done()

	ticker := time.NewTicker(f.p.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.fire(gen, price)
		}
	}
}

func (f *PriceFlasher) fire(gen uint64, price float64) {
	f.mtx.Lock()
	if gen != f.generation {
		f.mtx.Unlock()
		return
	}

	change := (f.p.Source.Float64() - 0.5) * price * flashDrift
	dir := types.FlashDown
	if change > 0 {
		dir = types.FlashUp
	}
	f.flag = dir

	if f.clearTimer != nil {
		f.clearTimer.Stop()
	}
	f.clearTimer = time.AfterFunc(f.p.Duration, func() { f.clear(gen) })
	f.mtx.Unlock()

	monitoring.RecordFlash(string(dir))
	f.notify(dir)
}

func (f *PriceFlasher) clear(gen uint64) {
	f.mtx.Lock()
	if gen != f.generation || f.flag == types.FlashNone {
		f.mtx.Unlock()
		return
	}
	f.flag = types.FlashNone
	f.clearTimer = nil
	f.mtx.Unlock()

	f.notify(types.FlashNone)
}

func (f *PriceFlasher) notify(dir types.FlashDirection) {
	if f.p.OnChange != nil {
		f.p.OnChange(dir)
	}
}

// AttachFlasher binds f to the selected price and keeps it bound across
// instrument and price changes until ctx ends or Close is called.
func (s *Store) AttachFlasher(ctx context.Context, f *PriceFlasher) {
	s.flashMtx.Lock()
	prev := s.flasher
	s.flasher = f
	s.flashCtx = ctx
	s.flashMtx.Unlock()

	if prev != nil && prev != f {
		prev.Stop()
	}

	s.restartFlash(s.Selected().Price)
}

// Flash returns the flag of the attached flasher, or FlashNone.
func (s *Store) Flash() types.FlashDirection {
	s.flashMtx.Lock()
	f := s.flasher
	s.flashMtx.Unlock()

	if f == nil {
		return types.FlashNone
	}
	return f.Flag()
}

// Close stops the attached flasher. The store stays readable.
func (s *Store) Close() {
	s.flashMtx.Lock()
	f := s.flasher
	s.flasher = nil
	s.flashCtx = nil
	s.flashMtx.Unlock()

	if f != nil {
		f.Stop()
	}
}

func (s *Store) restartFlash(price float64) {
	s.flashMtx.Lock()
	f, ctx := s.flasher, s.flashCtx
	s.flashMtx.Unlock()

	if f == nil {
		return
	}
	f.Start(ctx, price)
}
