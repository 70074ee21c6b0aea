package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-blueprint/internal/render"
)

// Output style names for --style.
const (
	StyleBlocks  = "blocks"
	StylePlain   = "plain"
	StyleGlamour = "glamour"
	StyleRaw     = "raw"
)

var styleNames = []string{StyleBlocks, StylePlain, StyleGlamour, StyleRaw}

// parseStyle validates a --style value.
func parseStyle(s string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, n := range styleNames {
		if name == n {
			return name, nil
		}
	}
	return "", fmt.Errorf("%q (use %s): %w", s, strings.Join(styleNames, ", "), ErrInvalidStyle)
}

// renderOutput formats generated text in the given style.
// width 0 means no wrapping.
func renderOutput(text, style string, width int) (string, error) {
	switch style {
	case StyleRaw:
		return text, nil
	case StylePlain:
		return render.Plain(render.Blocks(text)), nil
	case StyleGlamour:
		return render.Glamour(text, "", width)
	default:
		return render.Terminal(render.Blocks(text), render.DefaultStyles(), width), nil
	}
}

// warnNonMarkdownExtension writes a warning to w if path has an extension
// that is not .md. Saved output is the raw Markdown text.
func warnNonMarkdownExtension(w io.Writer, path string) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" && ext != ".md" {
		_, _ = fmt.Fprintf(w, "Warning: output is Markdown regardless of %s extension\n", ext)
	}
}

// writeFileAtomic writes content to path.
// It fails if the file already exists (O_EXCL), preventing accidental overwrites.
// On write failure, the partial file is removed.
func writeFileAtomic(path, content string) error {
	// #nosec G302 G304 -- user-specified output file with standard permissions
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("output file already exists: %s: %w", path, ErrOutputExists)
		}
		return fmt.Errorf("cannot create output file: %w", err)
	}

	writeErr := func() error {
		defer func() { _ = f.Close() }()
		if _, err := f.WriteString(content); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}()

	if writeErr != nil {
		_ = os.Remove(path)
		return writeErr
	}

	return nil
}
