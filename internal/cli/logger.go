package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// newLogger returns a logfmt logger writing to w that drops records below
// levelName.
func newLogger(w io.Writer, levelName string) (log.Logger, error) {
	var allow level.Option
	switch strings.ToLower(levelName) {
	case "debug":
		allow = level.AllowDebug()
	case "info", "":
		allow = level.AllowInfo()
	case "warn", "warning":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	case "none":
		allow = level.AllowNone()
	default:
		return nil, fmt.Errorf("invalid log level %q: want debug, info, warn, error or none", levelName)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, allow)

	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}
