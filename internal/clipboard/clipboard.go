// Package clipboard copies text to the system clipboard.
//
// Copying is fire-and-forget: a failure (no clipboard utility, headless
// session) is logged and reported as false, never returned as an error.
package clipboard

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// writeAll is the system clipboard writer, replaced in tests.
var writeAll = clipboard.WriteAll

// Copier copies text to the system clipboard.
type Copier struct {
	logger *zap.Logger
	write  func(string) error
}

// New creates a Copier. A nil logger discards warnings.
func New(logger *zap.Logger) *Copier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Copier{logger: logger, write: writeAll}
}

// Copy writes text to the clipboard and reports whether it succeeded.
func (c *Copier) Copy(text string) bool {
	if err := c.write(text); err != nil {
		c.logger.Warn("clipboard copy failed", zap.Error(err), zap.Bool("unsupported", clipboard.Unsupported))
		return false
	}
	c.logger.Debug("copied to clipboard", zap.Int("chars", len(text)))
	return true
}
