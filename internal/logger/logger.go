package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// stdout resolves os.Stdout at write time so tests can redirect it.
type stdout struct{}

func (stdout) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

var log = zerolog.New(zerolog.ConsoleWriter{
	Out:        stdout{},
	TimeFormat: time.Kitchen,
	NoColor:    os.Getenv("NO_COLOR") != "",
}).With().Timestamp().Logger()

// Info logs an informational message under a component tag.
func Info(tag, msg string) {
	log.Info().Str("tag", tag).Msg(msg)
}

// Success logs a completed-step message under a component tag.
func Success(tag, msg string) {
	log.Info().Str("tag", tag).Str("status", "ok").Msg(msg)
}

// Warn logs a warning under a component tag.
func Warn(tag, msg string) {
	log.Warn().Str("tag", tag).Msg(msg)
}

// Error logs an error message under a component tag.
func Error(tag, msg string) {
	log.Error().Str("tag", tag).Msg(msg)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(os.Stdout, "frontiergen %s - efficient frontier dataset generator\n", version)
}

// Section prints a visual separator for a named processing stage.
func Section(name string) {
	fmt.Fprintf(os.Stdout, "== %s ==\n", name)
}

// Stats logs a single named metric.
func Stats(key string, value interface{}) {
	log.Info().Interface(key, value).Msg("stats")
}
