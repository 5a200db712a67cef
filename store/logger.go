package store

import (
	"fmt"
	"strings"

	"github.com/arloliu/seating/types"
)

// badgerLogger routes badger's printf-style logging onto types.Logger.
type badgerLogger struct {
	logger types.Logger
}

func newBadgerLogger(logger types.Logger) *badgerLogger {
	return &badgerLogger{logger: logger}
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(l.msg(format, args), "component", "badger")
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(l.msg(format, args), "component", "badger")
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(l.msg(format, args), "component", "badger")
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(l.msg(format, args), "component", "badger")
}

func (l *badgerLogger) msg(format string, args []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
