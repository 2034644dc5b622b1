package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nealmueller/simplifi-worthbar/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	pollSeconds := flag.Int("poll", 0, "poll interval in seconds (optional, defaults to 300s)")
	once := flag.Bool("once", false, "fetch once, print the compact label, and exit")
	diagnostics := flag.Bool("diagnostics", false, "print provider diagnostics and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if *diagnostics {
		if err := app.RunDiagnostics(ctx, opts, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "worthbar: %v\n", err)
			return 1
		}
		return 0
	}

	if *once {
		return app.RunOnce(ctx, opts, os.Stdout)
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "worthbar: %v\n", err)
		return 1
	}
	return 0
}
