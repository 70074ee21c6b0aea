// Package format renders durations, sizes and counts for status lines.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Duration formats a duration as HH:MM:SS or MM:SS.
func Duration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// DurationHuman formats a duration for human display.
// Examples: "1m30s", "12s", "850ms"
func DurationHuman(d time.Duration) string {
	switch {
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	case d >= time.Second:
		return fmt.Sprintf("%ds", d/time.Second)
	default:
		return fmt.Sprintf("%dms", d/time.Millisecond)
	}
}

// Size formats a size in bytes for human display.
// Uses MB for sizes >= 1MB, KB otherwise.
func Size(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	if bytes >= mb {
		return fmt.Sprintf("%d MB", bytes/mb)
	}
	if bytes >= kb {
		return fmt.Sprintf("%d KB", bytes/kb)
	}
	return Count(int(bytes), "byte")
}

// Count formats n with noun, adding "s" unless n is 1.
// Example: Count(3, "field") = "3 fields"
func Count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// widthCond measures display columns independently of the user's locale.
var widthCond = &runewidth.Condition{StrictEmojiNeutral: true}

// Truncate shortens s to at most n display columns, ending with "…" when
// cut. Wide runes count as two columns. Newlines are flattened to spaces.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 0 || widthCond.StringWidth(s) <= n {
		return s
	}
	return widthCond.Truncate(s, n, "…")
}
