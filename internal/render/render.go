// Package render turns generated text into display blocks.
//
// Classification looks only at the start of each line. No inline markdown
// (emphasis, links, lists) is interpreted.
package render

import (
	"fmt"
	"iter"
	"strings"
)

// Kind is the display kind of a single line.
type Kind int

// Block kinds, in classification priority order.
const (
	Heading3 Kind = iota // line starts with "###"
	Heading2             // line starts with "##"
	Bold                 // line starts with "**"
	Spacer               // blank line
	Paragraph            // anything else
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Heading3:
		return "Heading3"
	case Heading2:
		return "Heading2"
	case Bold:
		return "Bold"
	case Spacer:
		return "Spacer"
	case Paragraph:
		return "Paragraph"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Block is one rendered line. Spacer blocks carry no text.
type Block struct {
	Kind Kind
	Text string
}

// rule pairs a line predicate with the block it produces.
type rule struct {
	match func(line string) bool
	build func(line string) Block
}

// rules is evaluated top to bottom; the first match wins. "###" must be
// tested before "##" since every "###" line also starts with "##".
//
// Heading markers are stripped while bold markers are kept. The asymmetry
// is existing behavior and is preserved as-is.
var rules = []rule{
	{hasPrefix("###"), stripMarker(Heading3, "###")},
	{hasPrefix("##"), stripMarker(Heading2, "##")},
	{hasPrefix("**"), wholeLine(Bold)},
	{isBlank, func(string) Block { return Block{Kind: Spacer} }},
	{func(string) bool { return true }, wholeLine(Paragraph)},
}

func hasPrefix(marker string) func(string) bool {
	return func(line string) bool { return strings.HasPrefix(line, marker) }
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// stripMarker removes the first occurrence of marker only; surrounding
// whitespace is kept, so "## Title" yields " Title".
func stripMarker(kind Kind, marker string) func(string) Block {
	return func(line string) Block {
		return Block{Kind: kind, Text: strings.Replace(line, marker, "", 1)}
	}
}

func wholeLine(kind Kind) func(string) Block {
	return func(line string) Block {
		return Block{Kind: kind, Text: line}
	}
}

// Classify maps a single line to its block.
func Classify(line string) Block {
	for _, r := range rules {
		if r.match(line) {
			return r.build(line)
		}
	}
	// Unreachable: the last rule matches everything.
	return Block{Kind: Paragraph, Text: line}
}

// Render lazily yields one block per line of text, in order.
// Empty text yields nothing. CRLF line endings are treated as LF.
// Each call derives fresh blocks; nothing is cached between calls.
func Render(text string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		if text == "" {
			return
		}
		for line := range strings.SplitSeq(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
			if !yield(Classify(line)) {
				return
			}
		}
	}
}

// Blocks collects Render(text) into a slice.
func Blocks(text string) []Block {
	var blocks []Block
	for b := range Render(text) {
		blocks = append(blocks, b)
	}
	return blocks
}
