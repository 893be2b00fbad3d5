package codec

import (
	"strings"
	"sync"

	"github.com/wippyai/oer/errors"
	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the codec package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the codec package's logger.
// This must be called before any codec operations.
func SetLogger(l *zap.Logger) {
	logger = l
}

func logAbort(msg string, err *errors.Error, pos int) {
	if ce := Logger().Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(
			zap.String("path", strings.Join(err.Path, ".")),
			zap.Int("code", err.Code()),
			zap.Int("pos", pos),
			zap.String("kind", string(err.Kind)),
		)
	}
}
