package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nealmueller/simplifi-worthbar/internal/baseline"
	"github.com/nealmueller/simplifi-worthbar/internal/config"
	"github.com/nealmueller/simplifi-worthbar/internal/engine"
	"github.com/nealmueller/simplifi-worthbar/internal/format"
	"github.com/nealmueller/simplifi-worthbar/internal/prefs"
	"github.com/nealmueller/simplifi-worthbar/internal/provider"
	"github.com/nealmueller/simplifi-worthbar/internal/ui"
)

// Options configure the worthbar application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/worthbar/prefs.toml
	PollEvery  int    // seconds; zero uses the configured interval
}

// Run boots the worthbar TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	eng, userPrefs, err := build(opts)
	if err != nil {
		return err
	}

	eng.Start(ctx)

	return ui.Run(ui.Options{
		Context:   ctx,
		Engine:    eng,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}

// RunOnce performs a single fetch and prints the compact label, matching
// the helper script's non-JSON behavior: a successful label is cached to
// last_label.txt; on failure the cached label is printed when available,
// then the sign-in sentinel, then the error sentinel. The return value
// is the process exit code.
func RunOnce(ctx context.Context, opts Options, out io.Writer) int {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintln(out, engine.ErrorTitle)
		log.Printf("load config: %v", err)
		return 1
	}

	script, err := provider.NewScript(cfg.ScriptPath, cfg.FetchTimeout)
	if err != nil {
		fmt.Fprintln(out, engine.ErrorTitle)
		log.Printf("init provider: %v", err)
		return 1
	}

	snap, err := script.FetchSnapshot(ctx)
	if err == nil {
		label := fmt.Sprintf("%s %s", format.CompactUSD(snap.Total), format.SignedPercent(snap.DailyPercent))
		cacheLabel(cfg.LastLabelPath(), label)
		fmt.Fprintln(out, label)
		return 0
	}

	if cached, rerr := os.ReadFile(cfg.LastLabelPath()); rerr == nil {
		if label := strings.TrimSpace(string(cached)); label != "" {
			fmt.Fprintln(out, label)
			return 0
		}
	}

	var perr *provider.Error
	if errors.As(err, &perr) && perr.Code == provider.CodeSigninRequired {
		fmt.Fprintln(out, engine.SigninTitle)
		return 0
	}

	fmt.Fprintln(out, engine.ErrorTitle)
	log.Printf("fetch snapshot: %v", err)
	return 1
}

// RunDiagnostics prints the provider's diagnostics output verbatim.
func RunDiagnostics(ctx context.Context, opts Options, out io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	script, err := provider.NewScript(cfg.ScriptPath, cfg.FetchTimeout)
	if err != nil {
		return fmt.Errorf("init provider: %w", err)
	}
	text, err := script.FetchDiagnostics(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}

// build wires config, prefs, provider, baseline store, and engine.
func build(opts Options) (*engine.Engine, prefs.Prefs, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, prefs.Prefs{}, fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	script, err := provider.NewScript(cfg.ScriptPath, cfg.FetchTimeout)
	if err != nil {
		return nil, prefs.Prefs{}, fmt.Errorf("init provider: %w", err)
	}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	eng, err := engine.New(engine.Options{
		Fetcher:  script,
		Baseline: baseline.NewStore(cfg.BaselinePath()),
		Interval: interval,
		Mode:     userPrefs.DisplayMode(),
		PersistMode: func(m format.Mode) error {
			p, _ := prefs.Load(opts.PrefsPath)
			p.Mode = m.String()
			return prefs.Save(opts.PrefsPath, p)
		},
	})
	if err != nil {
		return nil, prefs.Prefs{}, fmt.Errorf("init engine: %w", err)
	}

	return eng, userPrefs, nil
}

// cacheLabel persists the last rendered label for the one-shot fallback
// path. Failures are logged and otherwise ignored.
func cacheLabel(path, label string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("cache label: %v", err)
		return
	}
	if err := os.WriteFile(path, []byte(label+"\n"), 0o644); err != nil {
		log.Printf("cache label: %v", err)
	}
}
