// Package logging собирает logfmt-логгер go-kit с фильтром по уровню.
package logging

import (
	"io"
	stdlog "log"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New возвращает логгер с меткой времени и фильтром уровня (debug, info, warn, error).
// Неизвестный уровень трактуется как info.
func New(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	return level.NewFilter(logger, filterOption(lvl))
}

func filterOption(lvl string) level.Option {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// StdLogger адаптирует логгер для http.Server.ErrorLog: ошибки TLS-рукопожатия
// и битые запросы попадают в общий поток на уровне error.
func StdLogger(logger log.Logger) *stdlog.Logger {
	return stdlog.New(log.NewStdlibAdapter(level.Error(logger)), "", 0)
}
