package generator

import (
	"io"
	"time"

	"XRPVanity/internal/crypto"
)

const DefaultReportInterval = time.Second

type Options struct {
	Workers        int
	Prefix         string        // normalized, e.g. "rRob"
	ReportInterval time.Duration // 0 means DefaultReportInterval
	MaxIterations  uint64        // per worker; 0 runs until the context is done
}

type Option func(*Engine)

// WithRand sets the randomness source. It is wrapped in a LockedReader.
func WithRand(r io.Reader) Option {
	return func(e *Engine) { e.shared.Rand = NewLockedReader(r) }
}

func WithConsole(c *Console) Option {
	return func(e *Engine) { e.shared.Out = c }
}

func WithDeriver(d *crypto.Deriver) Option {
	return func(e *Engine) { e.deriver = d }
}

// WithClock replaces time.Now for match timestamps and rate measurement.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}
