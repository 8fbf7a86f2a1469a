package generator

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"XRPVanity/internal/crypto"
	"XRPVanity/internal/patterns"
	"XRPVanity/pkg/logx"
)

var (
	// ErrConfig marks errors detected before any worker starts.
	ErrConfig = errors.New("invalid search configuration")
	// ErrEntropy marks a failed read from the randomness source.
	ErrEntropy = errors.New("entropy source failure")
)

// Shared is handed to every worker at spawn time. Workers communicate only
// through these three handles.
type Shared struct {
	Attempts *atomic.Uint64
	Rand     *LockedReader
	Out      *Console
}

type Stats struct {
	Reported  uint64   // attempts consumed by the rate reporter
	Pending   uint64   // attempts counted but not yet reported
	Matches   uint64
	PerWorker []uint64 // completed attempts of each finished worker
	Elapsed   time.Duration
}

// Attempts is the total number of completed attempts seen by the counter.
func (s Stats) Attempts() uint64 { return s.Reported + s.Pending }

type Engine struct {
	opt     Options
	shared  Shared
	deriver *crypto.Deriver
	now     func() time.Time

	attempts  atomic.Uint64
	reported  atomic.Uint64
	matches   atomic.Uint64
	perWorker []atomic.Uint64

	startMu sync.Mutex
	start   time.Time
}

// New validates opt and wires the engine. Configuration errors wrap ErrConfig.
func New(opt Options, opts ...Option) (*Engine, error) {
	if opt.Workers <= 0 {
		return nil, fmt.Errorf("%w: workers must be positive, got %d", ErrConfig, opt.Workers)
	}
	if err := patterns.Validate(opt.Prefix); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if opt.ReportInterval <= 0 {
		opt.ReportInterval = DefaultReportInterval
	}

	e := &Engine{opt: opt, now: time.Now}
	e.shared.Attempts = &e.attempts
	for _, o := range opts {
		o(e)
	}
	if e.shared.Rand == nil {
		e.shared.Rand = NewLockedReader(rand.Reader)
	}
	if e.shared.Out == nil {
		e.shared.Out = NewConsole(os.Stdout, ConsoleOptions{})
	}
	if e.deriver == nil {
		e.deriver = crypto.NewDeriver()
	}
	e.perWorker = make([]atomic.Uint64, opt.Workers)
	return e, nil
}

// Run builds an engine from opt and runs it until ctx is done, every worker
// reaches opt.MaxIterations, or a worker fails.
func Run(ctx context.Context, opt Options, opts ...Option) error {
	e, err := New(opt, opts...)
	if err != nil {
		return err
	}
	return e.Run(ctx)
}

// Run spawns the workers and the rate reporter. Cancelling ctx is a normal
// stop and returns nil; a worker failure stops all workers and is returned.
func (e *Engine) Run(ctx context.Context) error {
	app := logx.S()
	start := e.now()
	e.startMu.Lock()
	e.start = start
	e.startMu.Unlock()

	app.Infow("search started",
		"workers", e.opt.Workers,
		"prefix", e.opt.Prefix,
		"report_interval", e.opt.ReportInterval.String(),
		"max_iterations", e.opt.MaxIterations,
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < e.opt.Workers; i++ {
		w := &worker{
			id:      i,
			prefix:  e.opt.Prefix,
			max:     e.opt.MaxIterations,
			shared:  e.shared,
			deriver: e.deriver,
			now:     e.now,
			matches: &e.matches,
			done:    &e.perWorker[i],
		}
		g.Go(func() error { return w.run(gctx) })
	}

	rctx, stopReporter := context.WithCancel(gctx)
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		e.report(rctx)
	}()

	err := g.Wait()
	stopReporter()
	<-reporterDone

	st := e.Stats()
	app.Infow("search stopped",
		"attempts", humanize.Comma(int64(st.Attempts())),
		"matches", st.Matches,
		"elapsed", humanDuration(st.Elapsed),
	)
	if err != nil {
		app.Errorw("search failed", "err", err)
		return err
	}
	return nil
}

// Stats is safe to call while the engine runs.
func (e *Engine) Stats() Stats {
	e.startMu.Lock()
	start := e.start
	e.startMu.Unlock()

	st := Stats{
		Reported:  e.reported.Load(),
		Pending:   e.attempts.Load(),
		Matches:   e.matches.Load(),
		PerWorker: make([]uint64, len(e.perWorker)),
	}
	for i := range e.perWorker {
		st.PerWorker[i] = e.perWorker[i].Load()
	}
	if !start.IsZero() {
		st.Elapsed = e.now().Sub(start)
	}
	return st
}

func (e *Engine) report(ctx context.Context) {
	ticker := time.NewTicker(e.opt.ReportInterval)
	defer ticker.Stop()

	last := e.now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			last = e.tick(last)
		}
	}
}

// tick reads and resets the counter under the output gate and prints the
// rate over the real time elapsed since the previous tick.
func (e *Engine) tick(last time.Time) time.Time {
	var now time.Time
	e.shared.Out.Status(func() uint64 {
		now = e.now()
		n := e.shared.Attempts.Swap(0)
		e.reported.Add(n)
		r := perSecond(n, now.Sub(last))
		logx.S().Debugw("rate", "attempts", n, "per_sec", r)
		return r
	})
	return now
}

func perSecond(n uint64, elapsed time.Duration) uint64 {
	if elapsed <= 0 {
		return n
	}
	return uint64(float64(n) / elapsed.Seconds())
}

// =============================== WORKER ===============================

type worker struct {
	id      int
	prefix  string
	max     uint64
	shared  Shared
	deriver *crypto.Deriver
	now     func() time.Time
	matches *atomic.Uint64
	done    *atomic.Uint64
}

func (w *worker) run(ctx context.Context) error {
	var n uint64
	defer func() { w.done.Store(n) }()

	for w.max == 0 || n < w.max {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		seed, err := w.shared.Rand.Seed()
		if err != nil {
			return fmt.Errorf("worker %d: %w: %w", w.id, ErrEntropy, err)
		}
		keys, err := w.deriver.Derive(seed)
		if err != nil {
			return fmt.Errorf("worker %d: %w", w.id, err)
		}

		addr := keys.Address()
		if patterns.Match(addr, w.prefix) {
			w.matches.Add(1)
			logx.S().Debugw("found", "worker", w.id, "address", addr)
			if err := w.shared.Out.Match(w.now(), addr, keys.FamilySeed()); err != nil {
				logx.S().Errorw("write match failed", "address", addr, "err", err)
			}
		}

		w.shared.Attempts.Add(1)
		n++
	}
	return nil
}

// ------------------------------- helpers ------------------------------------

func humanDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
}
