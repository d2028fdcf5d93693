package board

import (
	"context"
	"time"
)

// TickerFunc produces a tick channel with the given interval plus a
// stop function releasing it. The default wraps time.NewTicker; tests
// substitute a hand-driven channel via WithTicker.
type TickerFunc func(interval time.Duration) (<-chan time.Time, func())

func defaultTicker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// timerRun identifies one start/stop cycle of the timer. Ticks carry
// the run they belong to and are discarded if a newer run (or a stop)
// has superseded it, the same discipline the fetch pipeline uses for
// stale completions.
type timerRun struct {
	cancel context.CancelFunc
}

// StartTimer begins counting elapsed seconds. Idempotent: calling it
// while the timer is already running is a no-op. Each start establishes
// a fresh once-per-second schedule; the elapsed count carries over from
// previous runs.
func (c *Controller) StartTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timerRun != nil {
		return
	}

	tick, stopTick := c.ticker(time.Second)
	ctx, cancel := context.WithCancel(c.ctx)
	run := &timerRun{cancel: cancel}
	c.timerRun = run

	c.g.Go(func() error {
		defer stopTick()
		for {
			select {
			case <-ctx.Done():
				c.mu.Lock()
				if c.timerRun == run {
					c.timerRun = nil
				}
				c.mu.Unlock()
				return nil
			case <-tick:
				c.mu.Lock()
				if c.timerRun != run {
					// Tick raced a stop; the run is over.
					c.mu.Unlock()
					return nil
				}
				c.elapsed++
				c.mu.Unlock()
				c.notify()
			}
		}
	})
}

// StopTimer cancels the recurring schedule outright. Idempotent:
// calling it while stopped is a no-op. The elapsed count is preserved,
// so time passing while stopped never reaches it.
func (c *Controller) StopTimer() {
	c.mu.Lock()
	run := c.timerRun
	c.timerRun = nil
	c.mu.Unlock()
	if run != nil {
		run.cancel()
	}
}

// TimerRunning reports whether the timer is counting.
func (c *Controller) TimerRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timerRun != nil
}

// Elapsed returns the accumulated whole seconds of running time.
func (c *Controller) Elapsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}
