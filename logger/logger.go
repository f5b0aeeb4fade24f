// Package logger is a thin leveled facade over zerolog so callers keep the
// small Debug/Info/Warn/Error surface used throughout the codebase.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.Mutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
)

// Init reconfigures the global logger. level is one of debug/info/warn/error
// (unknown values fall back to info). If filename is non-empty, log lines are
// also appended there in JSON form.
func Init(level string, filename string) error {
	mu.Lock()
	defer mu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stdout}
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(w, f)
	}

	log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return nil
}

func Debug(v ...interface{}) { log.Debug().Msg(fmt.Sprint(v...)) }

func Debugf(format string, v ...interface{}) { log.Debug().Msgf(format, v...) }

func Info(v ...interface{}) { log.Info().Msg(fmt.Sprint(v...)) }

func Infof(format string, v ...interface{}) { log.Info().Msgf(format, v...) }

func Warn(v ...interface{}) { log.Warn().Msg(fmt.Sprint(v...)) }

func Warnf(format string, v ...interface{}) { log.Warn().Msgf(format, v...) }

func Error(v ...interface{}) { log.Error().Msg(fmt.Sprint(v...)) }

func Errorf(format string, v ...interface{}) { log.Error().Msgf(format, v...) }

func Fatal(v ...interface{}) { log.Fatal().Msg(fmt.Sprint(v...)) }

func Fatalf(format string, v ...interface{}) { log.Fatal().Msgf(format, v...) }
