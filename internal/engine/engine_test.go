package engine

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nealmueller/simplifi-worthbar/internal/baseline"
	"github.com/nealmueller/simplifi-worthbar/internal/format"
	"github.com/nealmueller/simplifi-worthbar/internal/provider"
	"github.com/nealmueller/simplifi-worthbar/internal/state"
)

// fakeFetcher implements provider.Fetcher with canned results.
type fakeFetcher struct {
	mu    sync.Mutex
	snap  *provider.Snapshot
	err   error
	diag  string
	calls int
	gate  chan struct{} // when non-nil, FetchSnapshot blocks until closed
}

func (f *fakeFetcher) FetchSnapshot(ctx context.Context) (*provider.Snapshot, error) {
	f.mu.Lock()
	f.calls++
	snap, err, gate := f.snap, f.err, f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return snap, err
}

func (f *fakeFetcher) FetchDiagnostics(ctx context.Context) (string, error) {
	return f.diag, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeFetcher) set(snap *provider.Snapshot, err error) {
	f.mu.Lock()
	f.snap, f.err = snap, err
	f.mu.Unlock()
}

var _ provider.Fetcher = (*fakeFetcher)(nil)

func newTestEngine(t *testing.T, f *fakeFetcher, opts Options) *Engine {
	t.Helper()
	opts.Fetcher = f
	if opts.Baseline == nil {
		opts.Baseline = baseline.NewStore(filepath.Join(t.TempDir(), "baseline.json"))
	}
	if opts.Now == nil {
		fixed := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
		opts.Now = func() time.Time { return fixed }
	}
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNew_RequiresFetcherAndBaseline(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("New accepted nil fetcher")
	}
	if _, err := New(Options{Fetcher: &fakeFetcher{}}); err == nil {
		t.Fatal("New accepted nil baseline store")
	}
}

func TestPoll_CompactSuccess(t *testing.T) {
	f := &fakeFetcher{snap: &provider.Snapshot{Source: "live", Total: 1_234_567, DailyPercent: 2.4}}
	e := newTestEngine(t, f, Options{Mode: format.ModeCompact})

	e.poll(context.Background())

	d := e.Display()
	if d.Title != "$1.2M +2%" {
		t.Errorf("Title = %q, want %q", d.Title, "$1.2M +2%")
	}
	if d.Status != "OK (source: live)" {
		t.Errorf("Status = %q", d.Status)
	}
	if d.Phase != state.PhaseRendered {
		t.Errorf("Phase = %v, want rendered", d.Phase)
	}
}

func TestPoll_EmptySourceRendersUnknown(t *testing.T) {
	f := &fakeFetcher{snap: &provider.Snapshot{Total: 100, DailyPercent: 0}}
	e := newTestEngine(t, f, Options{})

	e.poll(context.Background())

	if got := e.Display().Status; got != "OK (source: unknown)" {
		t.Errorf("Status = %q", got)
	}
}

func TestPoll_SigninRequired(t *testing.T) {
	f := &fakeFetcher{err: &provider.Error{Code: provider.CodeSigninRequired, Message: "are you logged in?"}}
	e := newTestEngine(t, f, Options{})

	e.poll(context.Background())

	d := e.Display()
	if d.Title != SigninTitle {
		t.Errorf("Title = %q, want %q", d.Title, SigninTitle)
	}
	if d.Status != SigninGuidance {
		t.Errorf("Status = %q, want guidance", d.Status)
	}
	if d.Phase != state.PhaseSigninRequired {
		t.Errorf("Phase = %v", d.Phase)
	}
}

func TestPoll_StructuredErrorWithMessage(t *testing.T) {
	f := &fakeFetcher{err: &provider.Error{Code: provider.CodeNetworkError, Message: "connection refused"}}
	e := newTestEngine(t, f, Options{})

	e.poll(context.Background())

	d := e.Display()
	if d.Title != ErrorTitle {
		t.Errorf("Title = %q, want %q", d.Title, ErrorTitle)
	}
	if d.Status != "Error: connection refused" {
		t.Errorf("Status = %q", d.Status)
	}
}

func TestPoll_StructuredErrorWithoutMessage(t *testing.T) {
	f := &fakeFetcher{err: &provider.Error{Code: provider.CodeUnknown}}
	e := newTestEngine(t, f, Options{})

	e.poll(context.Background())

	if got := e.Display().Status; got != "Error: Unknown error" {
		t.Errorf("Status = %q", got)
	}
}

func TestPoll_RawProviderFailure(t *testing.T) {
	f := &fakeFetcher{err: errors.New("Unexpected script output")}
	e := newTestEngine(t, f, Options{})

	e.poll(context.Background())

	d := e.Display()
	if d.Title != ErrorTitle {
		t.Errorf("Title = %q", d.Title)
	}
	if d.Status != "Unexpected script output" {
		t.Errorf("Status = %q", d.Status)
	}
	if d.Phase != state.PhaseError {
		t.Errorf("Phase = %v", d.Phase)
	}
}

func TestPoll_DeltaTodayAnchorsThenTracks(t *testing.T) {
	dir := t.TempDir()
	store := baseline.NewStore(filepath.Join(dir, "baseline.json"))
	f := &fakeFetcher{snap: &provider.Snapshot{Source: "live", Total: 500_000, DailyPercent: 1.0}}
	e := newTestEngine(t, f, Options{Mode: format.ModeDeltaToday, Baseline: store})

	e.poll(context.Background())
	if got := e.Display().Title; got != "+$0" {
		t.Fatalf("first poll Title = %q, want %q", got, "+$0")
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("baseline file: %v", err)
	}
	var rec baseline.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("parse baseline: %v", err)
	}
	if rec.Date != "2025-03-14" || rec.Total != 500_000 {
		t.Fatalf("baseline record = %+v", rec)
	}

	f.set(&provider.Snapshot{Source: "live", Total: 502_400, DailyPercent: 1.5}, nil)
	e.poll(context.Background())
	if got := e.Display().Title; got != "+$2.4K" {
		t.Fatalf("second poll Title = %q, want %q", got, "+$2.4K")
	}
}

func TestSetMode_ReRendersCachedSnapshotWithoutFetch(t *testing.T) {
	f := &fakeFetcher{snap: &provider.Snapshot{Source: "live", Total: 1_234_567, DailyPercent: 2.4}}
	e := newTestEngine(t, f, Options{Mode: format.ModeCompact})

	e.poll(context.Background())
	calls := f.callCount()

	e.SetMode(format.ModeFull)

	if got := e.Display().Title; got != "$1,234,567 +2%" {
		t.Errorf("Title = %q, want full rendering of cached snapshot", got)
	}
	if f.callCount() != calls {
		t.Errorf("SetMode fetched synchronously; calls = %d, want %d", f.callCount(), calls)
	}
	// The refresh request is queued for the poll loop.
	select {
	case <-e.trigger:
	default:
		t.Error("SetMode did not queue a refresh")
	}
}

func TestSetMode_SameModeIsNoOp(t *testing.T) {
	var persisted []format.Mode
	f := &fakeFetcher{snap: &provider.Snapshot{Total: 1, DailyPercent: 0}}
	e := newTestEngine(t, f, Options{
		Mode:        format.ModeCompact,
		PersistMode: func(m format.Mode) error { persisted = append(persisted, m); return nil },
	})

	e.SetMode(format.ModeCompact)

	if len(persisted) != 0 {
		t.Errorf("persisted %v for a no-op mode change", persisted)
	}
	select {
	case <-e.trigger:
		t.Error("no-op mode change queued a refresh")
	default:
	}
}

func TestSetMode_PersistsPreference(t *testing.T) {
	var persisted []format.Mode
	f := &fakeFetcher{snap: &provider.Snapshot{Total: 1, DailyPercent: 0}}
	e := newTestEngine(t, f, Options{
		Mode:        format.ModeCompact,
		PersistMode: func(m format.Mode) error { persisted = append(persisted, m); return nil },
	})

	e.SetMode(format.ModeDeltaToday)

	if len(persisted) != 1 || persisted[0] != format.ModeDeltaToday {
		t.Fatalf("persisted = %v, want [delta]", persisted)
	}
	if e.Mode() != format.ModeDeltaToday {
		t.Fatalf("Mode = %v", e.Mode())
	}
}

func TestPoll_OverlappingCallsCoalesce(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeFetcher{snap: &provider.Snapshot{Total: 1, DailyPercent: 0}, gate: gate}
	e := newTestEngine(t, f, Options{})

	done := make(chan struct{})
	go func() {
		e.poll(context.Background())
		close(done)
	}()

	// Wait for the in-flight flag before poking at the engine again.
	waitFor(t, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.inFlight
	})

	// These must return immediately without a second provider call.
	e.poll(context.Background())
	e.poll(context.Background())

	close(gate)
	<-done

	if got := f.callCount(); got != 1 {
		t.Fatalf("provider called %d times, want 1", got)
	}
}

func TestRefreshNow_DropsWhenPending(t *testing.T) {
	f := &fakeFetcher{snap: &provider.Snapshot{Total: 1, DailyPercent: 0}}
	e := newTestEngine(t, f, Options{})

	e.RefreshNow()
	e.RefreshNow()
	e.RefreshNow()

	if got := len(e.trigger); got != 1 {
		t.Fatalf("trigger queue length = %d, want 1", got)
	}
}

func TestPoll_PublishesFetchingPhase(t *testing.T) {
	f := &fakeFetcher{snap: &provider.Snapshot{Total: 1, DailyPercent: 0}}
	e := newTestEngine(t, f, Options{})

	var phases []state.Phase
	e.Store().Subscribe(func(d state.Display) { phases = append(phases, d.Phase) })

	e.poll(context.Background())

	if len(phases) != 2 || phases[0] != state.PhaseFetching || phases[1] != state.PhaseRendered {
		t.Fatalf("phases = %v, want [fetching rendered]", phases)
	}
}

func TestDiagnosticsText_Passthrough(t *testing.T) {
	f := &fakeFetcher{diag: "{\n  \"snapshot_ok\": true\n}\n"}
	e := newTestEngine(t, f, Options{})

	text, err := e.DiagnosticsText(context.Background())
	if err != nil {
		t.Fatalf("DiagnosticsText: %v", err)
	}
	if text != f.diag {
		t.Fatalf("DiagnosticsText = %q, want verbatim", text)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never became true")
}
