package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for logger configuration
type Logger struct {
	level     string
	format    string
	output    string
	sentryDSN string
}

// Flags returns CLI flags for logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("RISKLEDGER_LOG_LEVEL"),
			Destination: &l.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console or json)",
			Value:       "console",
			Sources:     cli.EnvVars("RISKLEDGER_LOG_FORMAT"),
			Destination: &l.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output destination (stdout, stderr or file path)",
			Value:       "stdout",
			Sources:     cli.EnvVars("RISKLEDGER_LOG_OUTPUT"),
			Destination: &l.output,
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled when empty)",
			Sources:     cli.EnvVars("RISKLEDGER_SENTRY_DSN"),
			Destination: &l.sentryDSN,
		},
	}
}

// LogValue masks nothing but keeps the DSN out of startup logs
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.level),
		slog.String("format", l.format),
		slog.String("output", l.output),
		slog.Bool("sentry", l.sentryDSN != ""),
	)
}

// Configure builds the process-wide logger and initializes Sentry when a DSN
// is set. The returned closer flushes pending events and closes any log file.
func (l *Logger) Configure() (func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.level)); err != nil {
		return nil, goerr.Wrap(err, "invalid log level", goerr.V("level", l.level))
	}

	format, err := logging.ParseFormat(l.format)
	if err != nil {
		return nil, err
	}

	var w *os.File
	var closeFile func()
	switch l.output {
	case "stdout", "":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(l.output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", l.output))
		}
		w = f
		closeFile = func() {
			_ = f.Close()
		}
	}

	logging.SetDefault(logging.New(w, level, format))

	var flushSentry func()
	if l.sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: l.sentryDSN}); err != nil {
			if closeFile != nil {
				closeFile()
			}
			return nil, goerr.Wrap(err, "failed to initialize sentry")
		}
		flushSentry = func() {
			sentry.Flush(2 * time.Second)
		}
	}

	return func() {
		if flushSentry != nil {
			flushSentry()
		}
		if closeFile != nil {
			closeFile()
		}
	}, nil
}
