package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Structured logging setup shared by the proxy, control
 *		channel, and sniffer.
 *
 *---------------------------------------------------------------*/

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns a charmbracelet/log logger writing to stderr at the
// given level ("debug", "info", "warn", "error"; unrecognised values fall
// back to "info"), with a ReportTimestamp of the sort cmd/direwolf uses for
// its own console output.
func NewLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
