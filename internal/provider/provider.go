package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Code classifies a structured fetch failure.
type Code string

const (
	// CodeSigninRequired means the upstream session has expired and the
	// user must re-authenticate. User-actionable, not transient.
	CodeSigninRequired Code = "signin_required"
	// CodeNetworkError covers timeouts and connectivity failures.
	CodeNetworkError Code = "network_error"
	// CodeParseError means the helper produced JSON that does not form a
	// coherent snapshot.
	CodeParseError Code = "parse_error"
	// CodeUnknown is everything else the helper reports.
	CodeUnknown Code = "unknown"
)

// FallbackMessage is shown when the helper fails without any stderr.
const FallbackMessage = "Unexpected script output"

// Snapshot is one successful fetch result.
type Snapshot struct {
	Source       string
	Total        float64
	DailyPercent float64
	Label        string
}

// Error is a structured failure reported by (or on behalf of) the helper.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Fetcher is the provider contract consumed by the engine. Implemented
// by *Script and by test fakes.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*Snapshot, error)
	FetchDiagnostics(ctx context.Context) (string, error)
}

var _ Fetcher = (*Script)(nil)

const defaultFetchTimeout = 30 * time.Second

// runFunc executes a command and returns its stdout and stderr. Split
// out so tests can run without a real helper on disk.
type runFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// Script invokes the helper executable for every fetch.
type Script struct {
	path    string
	timeout time.Duration
	run     runFunc
}

// NewScript builds a Script provider for the helper at path.
// A non-positive timeout falls back to 30 seconds.
func NewScript(path string, timeout time.Duration) (*Script, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("provider script path is empty")
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Script{path: trimmed, timeout: timeout, run: runCommand}, nil
}

// payload mirrors the helper's snapshot JSON. Numeric fields are
// pointers so a missing value is distinguishable from zero.
type payload struct {
	OK           bool     `json:"ok"`
	Source       string   `json:"source"`
	Total        *float64 `json:"total"`
	DailyPercent *float64 `json:"daily_percent"`
	Label        string   `json:"label"`
	ErrorCode    string   `json:"error_code"`
	Message      string   `json:"message"`
}

// FetchSnapshot runs the helper in snapshot mode and interprets its
// output. The helper's exit status is ignored when stdout holds a valid
// snapshot object, since it exits non-zero for structured failures too.
func (s *Script) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stdout, stderr, runErr := s.run(ctx, s.path, "--json")

	if ctx.Err() != nil {
		return nil, &Error{
			Code:    CodeNetworkError,
			Message: fmt.Sprintf("provider timed out after %s", s.timeout),
		}
	}

	var p payload
	if err := json.Unmarshal(bytes.TrimSpace(stdout), &p); err != nil {
		return nil, rawFailure(stderr, runErr)
	}

	if !p.OK {
		return nil, &Error{Code: mapCode(p.ErrorCode), Message: strings.TrimSpace(p.Message)}
	}
	if p.Total == nil || p.DailyPercent == nil {
		return nil, &Error{Code: CodeParseError, Message: "snapshot is missing total or daily_percent"}
	}

	return &Snapshot{
		Source:       p.Source,
		Total:        *p.Total,
		DailyPercent: *p.DailyPercent,
		Label:        p.Label,
	}, nil
}

// FetchDiagnostics runs the helper in diagnostics mode and returns its
// stdout verbatim.
func (s *Script) FetchDiagnostics(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stdout, stderr, runErr := s.run(ctx, s.path, "--diagnostics")
	if runErr != nil {
		return "", fmt.Errorf("run diagnostics: %w: %s", runErr, strings.TrimSpace(string(stderr)))
	}
	return string(stdout), nil
}

// rawFailure builds the error for a helper that could not produce a
// snapshot at all. stderr wins when present; the run error is next; the
// fixed fallback covers a helper that died silently.
func rawFailure(stderr []byte, runErr error) error {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return errors.New(msg)
	}
	if runErr != nil {
		return runErr
	}
	return errors.New(FallbackMessage)
}

func mapCode(code string) Code {
	switch Code(strings.TrimSpace(code)) {
	case CodeSigninRequired:
		return CodeSigninRequired
	case CodeNetworkError:
		return CodeNetworkError
	case CodeParseError:
		return CodeParseError
	default:
		return CodeUnknown
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
