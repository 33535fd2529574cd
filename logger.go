package pixring

import (
	"log/slog"
	"sync/atomic"
)

// discard is the logger in effect until SetLogger installs another one.
var discard = slog.New(slog.DiscardHandler)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(discard)
}

// SetLogger routes allocator and page-cache events to l. Passing nil
// silences them again, which is also the state before the first call.
//
// Events and their levels:
//   - Debug "pixring: allocator created": hint, capacity, clampRatio
//   - Debug "pixring: region allocated": granted size, offset, live count
//   - Debug "pixring: region released": the region, logged once
//   - Debug "pixring: reclaim sweep": regions removed, regions left
//   - Warn "pixring: out of space": the request after the retry failed
//   - Debug "pagecache: page evicted", "pagecache: page re-rendered",
//     "pagecache: invalidated", "pagecache: cleared"
//
// Regions may be released from any goroutine, so SetLogger is safe to call
// while allocators are in use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger. The pagecache package logs
// through it too.
func Logger() *slog.Logger {
	return current.Load()
}
