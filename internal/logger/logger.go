package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	base   zerolog.Logger
	ready  bool
	out    io.Writer     = os.Stdout
	level  zerolog.Level = zerolog.InfoLevel
	pretty bool
)

// Init configures the global logger.
//
// Parameters:
//   - lvl: debug|info|warn|error (anything else means info).
//   - prettyOutput: use the human-readable console writer instead of JSON.
//
// The console writer is what an operator sees when running the cleaner by hand;
// JSON is meant for log shippers.
func Init(lvl string, prettyOutput bool) {
	mu.Lock()
	defer mu.Unlock()
	level = parseLevel(lvl)
	pretty = prettyOutput
	rebuild()
}

// SetOutput redirects all log output to w (tests capture diagnostics this way)
// and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	rebuild()
	return prev
}

// L returns the global logger, building a JSON info logger on first use.
func L() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		rebuild()
	}
	l := base
	return &l
}

// rebuild must be called with mu held.
func rebuild() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	w := out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: out != os.Stdout}
	}
	base = zerolog.New(w).With().Timestamp().Logger().Level(level)
	ready = true
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
