// Package clipboard delivers composed text to the clipboard.
//
// Two branches exist. On a standard platform the text is written to the
// system clipboard asynchronously. On a clipboard-restricted platform (remote
// shells, mobile terminal apps) the text is staged on a temporary surface,
// selected, and handed to a legacy synchronous copy command; the surface is
// always destroyed afterwards. Either way the outcome is reported once to a
// Notifier and once on the channel returned by Export.
package clipboard

import (
	"context"
	"fmt"
	"io"

	"github.com/treykane/chousei/internal/composer"
	"github.com/treykane/chousei/internal/logging"
)

var log = logging.New("clipboard")

// Fixed user-facing outcome messages.
const (
	MessageCopied     = "コピーしました"
	MessageCopyFailed = "コピーに失敗しました"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier shows a short fire-and-forget message to the user.
type Notifier interface {
	ShowToast(message string, severity Severity)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, severity Severity)

// ShowToast calls f.
func (f NotifierFunc) ShowToast(message string, severity Severity) { f(message, severity) }

// Writer is the standard platform clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// Surface is a temporary editable area used by the restricted fallback.
type Surface interface {
	// Populate replaces the surface contents with text.
	Populate(text string) error
	// SelectAll selects the whole contents and returns them for copying.
	SelectAll() (io.Reader, error)
	// Destroy releases the surface.
	Destroy() error
}

// SurfaceFactory materializes a fresh Surface.
type SurfaceFactory func() (Surface, error)

// LegacyCopier is the synchronous copy command of the restricted fallback.
// It copies the current selection and reports success.
type LegacyCopier interface {
	Copy(selection io.Reader) bool
}

// Result is the outcome of one export.
type Result struct {
	OK       bool
	Platform composer.Platform
	Err      error
}

// Toast returns the message and severity shown for r.
func (r Result) Toast() (string, Severity) {
	if r.OK {
		return MessageCopied, SeveritySuccess
	}
	return MessageCopyFailed, SeverityError
}

// Exporter runs export transactions. The zero value is not usable; build one
// with NewExporter.
type Exporter struct {
	writer   Writer
	surfaces SurfaceFactory
	copier   LegacyCopier
	notifier Notifier
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithWriter replaces the standard clipboard writer.
func WithWriter(w Writer) Option { return func(e *Exporter) { e.writer = w } }

// WithSurfaceFactory replaces the temporary surface used by the fallback.
func WithSurfaceFactory(f SurfaceFactory) Option { return func(e *Exporter) { e.surfaces = f } }

// WithLegacyCopier replaces the fallback copy command.
func WithLegacyCopier(c LegacyCopier) Option { return func(e *Exporter) { e.copier = c } }

// WithNotifier sets the collaborator that receives every outcome.
func WithNotifier(n Notifier) Option { return func(e *Exporter) { e.notifier = n } }

// WithFallbackCommand uses an external copy command for the restricted
// fallback when argv is non-empty, and leaves the current copier otherwise.
func WithFallbackCommand(argv []string) Option {
	return func(e *Exporter) {
		if copier := NewCommandCopier(argv); copier != nil {
			e.copier = copier
		}
	}
}

// NewExporter returns an Exporter using the system clipboard, a temp-file
// surface and an OSC 52 copier on stderr unless overridden.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		writer:   SystemWriter{},
		surfaces: NewTempFileSurface,
		copier:   NewOSC52Copier(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export copies text using the branch chosen by capability. The returned
// channel receives exactly one Result and is buffered, so callers may ignore
// it. Restricted exports have already completed, and been reported, when
// Export returns; standard exports complete in the background.
func (e *Exporter) Export(ctx context.Context, text string, capability composer.Capability) <-chan Result {
	results := make(chan Result, 1)
	platform := capability.Platform()
	log.Debug("export", "platform", platform.String(), "chars", len([]rune(text)))

	if platform == composer.ClipboardRestricted {
		result := e.copyWithFallback(text)
		e.report(result)
		results <- result
		return results
	}

	go func() {
		result := Result{OK: true, Platform: composer.Standard}
		if err := e.writer.WriteText(ctx, text); err != nil {
			result = Result{Platform: composer.Standard, Err: err}
		}
		e.report(result)
		results <- result
	}()
	return results
}

// copyWithFallback stages text on a temporary surface, selects it and runs
// the legacy copy command. The surface is destroyed exactly once whatever
// happens after it was created, including a panic in any step.
func (e *Exporter) copyWithFallback(text string) (result Result) {
	result = Result{Platform: composer.ClipboardRestricted}
	defer func() {
		if r := recover(); r != nil {
			result = Result{Platform: composer.ClipboardRestricted, Err: fmt.Errorf("fallback copy panicked: %v", r)}
		}
	}()

	surface, err := e.surfaces()
	if err != nil {
		result.Err = fmt.Errorf("create copy surface: %w", err)
		return result
	}
	defer func() {
		if err := surface.Destroy(); err != nil {
			log.Warn("destroy copy surface", "error", err)
		}
	}()

	if err := surface.Populate(text); err != nil {
		result.Err = fmt.Errorf("populate copy surface: %w", err)
		return result
	}
	selection, err := surface.SelectAll()
	if err != nil {
		result.Err = fmt.Errorf("select copy surface: %w", err)
		return result
	}
	if !e.copier.Copy(selection) {
		result.Err = errCopyRejected
		return result
	}
	result.OK = true
	return result
}

func (e *Exporter) report(result Result) {
	if result.Err != nil {
		log.Error("clipboard export failed", "platform", result.Platform.String(), "error", result.Err)
	}
	if e.notifier == nil {
		return
	}
	message, severity := result.Toast()
	e.notifier.ShowToast(message, severity)
}
