package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level. Unknown names fall back to info.
//
// Parameters:
//   - level: one of trace, debug, info, warn or error, case-insensitive
//
// Returns:
//   - zerolog.Level: the matching level
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the viewer's console logger. Lines carry an RFC3339 timestamp,
// and colors are only used when writing to a terminal file.
//
// Parameters:
//   - level: the minimum level name, see ParseLevel
//   - w: the destination, os.Stdout when nil
//
// Returns:
//   - zerolog.Logger: the logger
func New(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	_, isFile := w.(*os.File)

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isFile,
	}

	return zerolog.New(console).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}
