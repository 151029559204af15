// Package kdoc implements the KDocFormatter of spec.md §4.4: reflowing a
// `/** ... */` documentation comment's body the way a markdown-aware doc
// tool would — paragraphs rewrapped to the printer's line width, fenced code
// blocks passed through verbatim, bullet/numbered lists kept as hanging
// indents, and `@tag` lines (the Javadoc/KDoc convention for `@param`,
// `@return`, `@throws`, ...) kept as their own hanging-indented block.
//
// We lean on a real markdown parser (github.com/russross/blackfriday/v2)
// instead of hand-rolling block detection, because that's the library the
// surrounding corpus expects for anything markdown-flavored, and because its
// AST already knows the difference between a paragraph, a list item, and a
// fenced code block — exactly the distinction spec.md §4.4 needs.
package kdoc

import (
	"strings"

	bf "github.com/russross/blackfriday/v2"
)

type blockKind int

const (
	paragraphBlock blockKind = iota
	codeBlock
	listItemBlock
	tagBlock
)

type block struct {
	kind   blockKind
	text   string
	marker string // list marker, or the @tag itself
}

// Format reflows raw (the KDoc's full source text, "/**" through "*/"
// inclusive) to maxWidth and returns the body lines — without the "/**",
// " * " prefixes, or "*/" trailer, which pkg/printer adds back at the
// comment's own indent (spec.md §4.3's KDOC render rule).
func Format(raw string, maxWidth int) []string {
	body := stripMarkers(raw)
	blocks := splitTagBlocks(body)

	var lines []string
	for i, b := range blocks {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, renderBlock(b, maxWidth)...)
	}
	return lines
}

// stripMarkers removes the comment delimiters and per-line " * " gutter,
// returning the raw markdown-ish body text.
func stripMarkers(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")
	lines := strings.Split(s, "\n")
	var out []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "*")
		l = strings.TrimPrefix(l, " ")
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

// splitTagBlocks separates the leading markdown description from any
// trailing `@tag ...` lines, each of which becomes its own block so they
// never get folded into the preceding paragraph.
func splitTagBlocks(body string) []block {
	lines := strings.Split(body, "\n")
	var descLines []string
	var tags [][]string // each entry is one tag's lines (first line has the @tag)
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if strings.HasPrefix(trimmed, "@") {
			tags = append(tags, []string{l})
			continue
		}
		if len(tags) > 0 {
			// Continuation of the most recent @tag.
			tags[len(tags)-1] = append(tags[len(tags)-1], l)
			continue
		}
		descLines = append(descLines, l)
	}

	var blocks []block
	desc := strings.TrimSpace(strings.Join(descLines, "\n"))
	if desc != "" {
		blocks = append(blocks, parseMarkdownBlocks(desc)...)
	}
	for _, t := range tags {
		fields := strings.Fields(t[0])
		marker := ""
		if len(fields) > 0 {
			marker = fields[0]
		}
		text := strings.TrimSpace(strings.Join(t, " "))
		text = strings.TrimSpace(strings.TrimPrefix(text, marker))
		blocks = append(blocks, block{kind: tagBlock, marker: marker, text: collapseSpace(text)})
	}
	return blocks
}

// parseMarkdownBlocks runs blackfriday over the description text and turns
// its block-level nodes into our simplified block list.
func parseMarkdownBlocks(desc string) []block {
	md := bf.New(bf.WithExtensions(bf.CommonExtensions))
	doc := md.Parse([]byte(desc))

	var blocks []block
	doc.Walk(func(n *bf.Node, entering bool) bf.WalkStatus {
		if !entering {
			return bf.GoToNext
		}
		switch n.Type {
		case bf.Paragraph:
			blocks = append(blocks, block{kind: paragraphBlock, text: collapseSpace(collectText(n))})
			return bf.SkipChildren
		case bf.CodeBlock:
			blocks = append(blocks, block{kind: codeBlock, text: strings.TrimRight(string(n.Literal), "\n")})
			return bf.SkipChildren
		case bf.Item:
			marker := "-"
			if n.ListFlags&bf.ListTypeOrdered != 0 {
				marker = "1."
			}
			blocks = append(blocks, block{kind: listItemBlock, marker: marker, text: collapseSpace(collectText(n))})
			return bf.SkipChildren
		}
		return bf.GoToNext
	})
	return blocks
}

func collectText(n *bf.Node) string {
	var sb strings.Builder
	n.Walk(func(c *bf.Node, entering bool) bf.WalkStatus {
		if !entering {
			return bf.GoToNext
		}
		switch c.Type {
		case bf.Text, bf.Code:
			sb.Write(c.Literal)
		case bf.Softbreak, bf.Hardbreak:
			sb.WriteByte(' ')
		}
		return bf.GoToNext
	})
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func renderBlock(b block, maxWidth int) []string {
	switch b.kind {
	case codeBlock:
		lines := strings.Split(b.text, "\n")
		out := make([]string, 0, len(lines)+2)
		out = append(out, "```")
		out = append(out, lines...)
		out = append(out, "```")
		return out

	case listItemBlock:
		prefix := b.marker + " "
		return wrap(b.text, maxWidth, prefix, strings.Repeat(" ", len(prefix)))

	case tagBlock:
		prefix := b.marker + " "
		return wrap(b.text, maxWidth, prefix, strings.Repeat(" ", len(prefix)))

	default:
		return wrap(b.text, maxWidth, "", "")
	}
}

// wrap greedily fills lines up to maxWidth, prefixing the first line with
// firstPrefix and every continuation with contPrefix.
func wrap(text string, maxWidth int, firstPrefix, contPrefix string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		if firstPrefix == "" {
			return nil
		}
		return []string{strings.TrimRight(firstPrefix, " ")}
	}

	var lines []string
	prefix := firstPrefix
	cur := prefix
	col := len(prefix)
	started := false
	for _, w := range words {
		need := len(w)
		if started {
			need++ // the space before it
		}
		if started && col+need > maxWidth {
			lines = append(lines, cur)
			prefix = contPrefix
			cur = prefix
			col = len(prefix)
			started = false
			need = len(w)
		}
		if started {
			cur += " "
		}
		cur += w
		col += need
		started = true
	}
	lines = append(lines, cur)
	return lines
}
