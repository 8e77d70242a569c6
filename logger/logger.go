package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configures New. Empty fields fall back to LOG_LEVEL / LOG_FORMAT,
// then to info level and text output.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New builds the application logger.
func New(opts Options) *logrus.Logger {
	log := logrus.New()

	levelName := opts.Level
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		levelName = v
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	format := opts.Format
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		format = v
	}
	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if opts.Output != nil {
		log.SetOutput(opts.Output)
	} else {
		log.SetOutput(os.Stdout)
	}
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}
