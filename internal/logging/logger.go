package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// splitWriter routes error-level records to stderr and everything else to
// stdout, so the success line and the delivery failure line land on the
// streams the scheduler expects.
type splitWriter struct {
	out io.Writer
	err io.Writer
}

func (w splitWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w splitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel {
		return w.err.Write(p)
	}
	return w.out.Write(p)
}

// New returns the process logger.
func New() zerolog.Logger {
	writer := splitWriter{
		out: zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"},
		err: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"},
	}
	return zerolog.New(writer).With().Timestamp().Logger()
}
