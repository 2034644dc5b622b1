package format

import (
	"fmt"
	"strings"
)

// Mode selects how the title is rendered.
type Mode int

const (
	// ModeCompact shows the abbreviated net worth with the daily percent.
	ModeCompact Mode = iota
	// ModeFull shows the exact net worth with the daily percent.
	ModeFull
	// ModeDeltaToday shows the signed change since the day's first poll.
	ModeDeltaToday
)

// DefaultMode is used when no preference has been persisted.
const DefaultMode = ModeCompact

// String returns the persisted name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeDeltaToday:
		return "delta"
	default:
		return "compact"
	}
}

// Label returns the human-readable name shown in the UI.
func (m Mode) Label() string {
	switch m {
	case ModeFull:
		return "Full"
	case ModeDeltaToday:
		return "Delta Today"
	default:
		return "Compact"
	}
}

// ParseMode maps a persisted name back to a Mode. Unknown names fall
// back to the default so a stale preference never breaks startup.
func ParseMode(name string) Mode {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "full":
		return ModeFull
	case "delta", "delta_today", "deltatoday":
		return ModeDeltaToday
	default:
		return DefaultMode
	}
}

// Title composes the status-bar title for a mode. The delta argument is
// only consulted for ModeDeltaToday; total and pct only for the others.
func Title(mode Mode, total, pct, delta float64) string {
	switch mode {
	case ModeFull:
		return fmt.Sprintf("%s %s", FullUSD(total), SignedPercent(pct))
	case ModeDeltaToday:
		return SignedDelta(delta)
	default:
		return fmt.Sprintf("%s %s", CompactUSD(total), SignedPercent(pct))
	}
}
