// Package meter provides a progress meter for the paging tools,
// printed to standard output.
package meter

import (
	"fmt"
	"time"
)

// Option is a configuration option for a Meter.
type Option func(cfg *meterCfg)

// Format returns a new configuration option that sets the meter's
// format string.
//
// The string must have exactly one verb in it to support a float64
// value which is a percent completion.
func Format(ft string) Option {
	return func(cfg *meterCfg) {
		cfg.format = ft
	}
}

// Period returns a new configuration option that sets the period
// between screen updates.
func Period(p time.Duration) Option {
	return func(cfg *meterCfg) {
		cfg.period = p
	}
}

type meterCfg struct {
	period time.Duration
	format string
}

// A Meter periodically samples progress and rewrites a progress line
// on standard output until stopped.
type Meter struct {
	done chan struct{}
}

// Start starts a new Meter which will write to standard output. It
// uses the function sample to sample progress, and sample should
// return a float64 value between 0 and 1 representing a degree of
// progress. sample must be safe to call from another goroutine.
//
// The default period between updates is 1 second.
func Start(sample func() float64, options ...Option) *Meter {
	cfg := meterCfg{
		period: time.Second,
		format: "Progress: %.1f%%",
	}
	for _, opt := range options {
		opt(&cfg)
	}
	m := &Meter{done: make(chan struct{})}
	go func() {
		for {
			prog := sample()
			fmt.Printf(cfg.format+"\r", prog*100)
			select {
			case <-m.done:
				fmt.Println()
				close(m.done)
				return
			case <-time.After(cfg.period):
			}
		}
	}()
	return m
}

// Stop stops the meter and moves standard output to a fresh line.
//
// Stop must be called exactly once.
func (m *Meter) Stop() {
	m.done <- struct{}{}
	<-m.done
}
