package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nealmueller/simplifi-worthbar/internal/baseline"
	"github.com/nealmueller/simplifi-worthbar/internal/format"
	"github.com/nealmueller/simplifi-worthbar/internal/provider"
	"github.com/nealmueller/simplifi-worthbar/internal/state"
)

const (
	// SigninTitle is the fixed title shown when the session has expired.
	SigninTitle = "Sign In"
	// ErrorTitle is the fixed title shown for any other failure.
	ErrorTitle = "$--"
	// SigninGuidance tells the user how to recover an expired session.
	SigninGuidance = "Open Simplifi in MenubarX and sign in, then refresh."

	defaultInterval = 300 * time.Second
)

// Options configure the polling engine.
type Options struct {
	Fetcher  provider.Fetcher
	Baseline *baseline.Store
	// Interval is the fixed poll cadence; zero uses the 300s default.
	Interval time.Duration
	// Mode is the initial display mode, normally the persisted preference.
	Mode format.Mode
	// PersistMode, when set, is called after every mode change. Failures
	// are logged and otherwise ignored.
	PersistMode func(format.Mode) error
	// Now is the clock used for baseline day comparison. Tests override it.
	Now func() time.Time
}

// Engine orchestrates polling: it invokes the provider on a fixed cadence
// and on manual triggers, feeds results through the baseline store and
// formatter, and publishes display updates through a state.Store.
//
// Exactly one fetch is in flight at a time; ticks and manual triggers
// that arrive mid-fetch are dropped.
type Engine struct {
	fetcher   provider.Fetcher
	baseline  *baseline.Store
	store     *state.Store
	interval  time.Duration
	persist   func(format.Mode) error
	now       func() time.Time
	trigger   chan struct{}

	mu       sync.Mutex
	mode     format.Mode
	last     *provider.Snapshot
	inFlight bool
}

// New builds an Engine. Fetcher and Baseline are required.
func New(opts Options) (*Engine, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("engine: fetcher is required")
	}
	if opts.Baseline == nil {
		return nil, fmt.Errorf("engine: baseline store is required")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		fetcher:  opts.Fetcher,
		baseline: opts.Baseline,
		store:    &state.Store{},
		interval: interval,
		persist:  opts.PersistMode,
		now:      now,
		mode:     opts.Mode,
		trigger:  make(chan struct{}, 1),
	}, nil
}

// Store exposes the display-state store for subscribers.
func (e *Engine) Store() *state.Store { return e.store }

// Display returns a copy of the current display state.
func (e *Engine) Display() state.Display { return e.store.Current() }

// Mode returns the active display mode.
func (e *Engine) Mode() format.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Start launches the poll loop in a background goroutine. It polls once
// immediately, then on every tick or manual trigger until the context is
// cancelled.
func (e *Engine) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		e.poll(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.poll(ctx)
			case <-e.trigger:
				e.poll(ctx)
			}
		}
	}()
}

// RefreshNow requests an immediate poll without waiting for the next
// tick. The request is dropped when a fetch is already in flight or a
// trigger is already pending.
func (e *Engine) RefreshNow() {
	select {
	case e.trigger <- struct{}{}:
	default:
	}
}

// SetMode switches the display mode, persists the preference, re-renders
// the last snapshot so the title changes immediately, and then triggers a
// fresh fetch to match the reference behavior.
func (e *Engine) SetMode(mode format.Mode) {
	e.mu.Lock()
	if mode == e.mode {
		e.mu.Unlock()
		return
	}
	e.mode = mode
	last := e.last
	e.mu.Unlock()

	if e.persist != nil {
		if err := e.persist(mode); err != nil {
			log.Printf("engine: persist display mode: %v", err)
		}
	}

	if last != nil {
		d := e.store.Current()
		d.Title = e.renderTitle(mode, last)
		e.store.Set(d)
	}

	e.RefreshNow()
}

// DiagnosticsText returns the provider's diagnostics output verbatim.
func (e *Engine) DiagnosticsText(ctx context.Context) (string, error) {
	return e.fetcher.FetchDiagnostics(ctx)
}

// poll performs one fetch-and-render cycle. Overlapping calls coalesce:
// a call that finds a fetch in flight returns without doing anything.
func (e *Engine) poll(ctx context.Context) {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return
	}
	e.inFlight = true
	e.mu.Unlock()

	fetching := e.store.Current()
	fetching.Phase = state.PhaseFetching
	e.store.Set(fetching)

	snap, err := e.fetcher.FetchSnapshot(ctx)

	e.mu.Lock()
	e.inFlight = false
	mode := e.mode
	if snap != nil {
		e.last = snap
	}
	e.mu.Unlock()

	e.store.Set(e.renderResult(mode, snap, err))
}

// renderResult maps a fetch outcome onto a display state.
func (e *Engine) renderResult(mode format.Mode, snap *provider.Snapshot, err error) state.Display {
	d := state.Display{UpdatedAt: e.now()}

	var perr *provider.Error
	switch {
	case err == nil:
		source := snap.Source
		if source == "" {
			source = "unknown"
		}
		d.Title = e.renderTitle(mode, snap)
		d.Status = fmt.Sprintf("OK (source: %s)", source)
		d.Phase = state.PhaseRendered

	case errors.As(err, &perr) && perr.Code == provider.CodeSigninRequired:
		d.Title = SigninTitle
		d.Status = SigninGuidance
		d.Phase = state.PhaseSigninRequired

	case errors.As(err, &perr):
		msg := perr.Message
		if msg == "" {
			msg = "Unknown error"
		}
		d.Title = ErrorTitle
		d.Status = "Error: " + msg
		d.Phase = state.PhaseError

	default:
		d.Title = ErrorTitle
		d.Status = err.Error()
		d.Phase = state.PhaseError
	}

	if d.Phase != state.PhaseRendered {
		log.Printf("engine: poll: %v", err)
	}
	return d
}

// renderTitle formats the title for a snapshot. The baseline store is
// consulted only in delta mode, which also lazily re-anchors on the
// first render of a new calendar day.
func (e *Engine) renderTitle(mode format.Mode, snap *provider.Snapshot) string {
	var delta float64
	if mode == format.ModeDeltaToday {
		delta = e.baseline.DailyDelta(snap.Total, e.now())
	}
	return format.Title(mode, snap.Total, snap.DailyPercent, delta)
}
