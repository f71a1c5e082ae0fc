package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/chousei/internal/clipboard"
	"github.com/treykane/chousei/internal/composer"
)

// copyDraft exports the current draft in flavor.
//
// The platform is probed on every copy. On a clipboard-restricted platform
// the exporter has already finished when Export returns, so the toast is
// shown right away. Otherwise the write runs in the background with the
// spinner visible and the toast arrives as an exportResultMsg.
//
// Exports read the session but never change it.
func (m *Model) copyDraft(flavor composer.Flavor) tea.Cmd {
	capability := m.probe.Capability()
	platform := capability.Platform()
	text := composer.BuildExport(m.state.Draft, flavor, platform, m.tables)
	appLog.Debug("copy draft", "flavor", flavor.String(), "platform", platform.String())

	results := m.exporter.Export(context.Background(), text, capability)
	if platform == composer.ClipboardRestricted {
		return m.showExportResult(flavor, <-results)
	}

	m.exportsInFlight++
	m.status = "Copying..."
	return tea.Batch(m.spinner.Tick, waitForExport(results, flavor))
}

// showExportResult turns an export outcome into a toast and status line.
func (m *Model) showExportResult(flavor composer.Flavor, result clipboard.Result) tea.Cmd {
	message, severity := result.Toast()
	if result.OK {
		m.status = "Copied " + flavor.String() + " message"
	} else {
		m.setStatusError("Copy failed", result.Err, "flavor", flavor.String(), "platform", result.Platform.String())
	}
	return m.setToast(message, severity)
}
