package app

import (
	"log/slog"

	"github.com/treykane/chousei/internal/logging"
)

// appLog is the package-level structured logger for the app package, tagged
// with component "app".
//
// The level comes from CHOUSEI_LOG_LEVEL. Set CHOUSEI_LOG_FILE while the TUI
// is running so entries do not land on top of the screen.
var appLog = logging.New("app")

// setStatusError updates the status bar with a user-facing error message and
// logs a structured error entry with the same text.
//
// The status parameter is displayed verbatim in the UI, while err and any
// additional key-value attrs go only to the log entry:
//
//	m.setStatusError("Copy failed", err, "flavor", "slack")
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
