package clipboard

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
)

var errCopyRejected = errors.New("copy command reported failure")

// SystemWriter writes to the operating system clipboard.
type SystemWriter struct{}

// WriteText copies text to the system clipboard. The underlying call cannot
// be interrupted; ctx is only checked before it starts.
func (SystemWriter) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return clipboard.WriteAll(text)
}
