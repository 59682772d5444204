package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// BlockKind identifies a structural block produced by the BlockFormatter.
type BlockKind int

// Block kinds.
const (
	BlockRaw         BlockKind = iota // markup line passed through verbatim
	BlockHeading                      // markdown heading line
	BlockLabel                        // "Steps:", "Trigger:" or "Outcome:" label
	BlockSection                      // top-level numbered item promoted to a heading
	BlockOrdered                      // nested numbered item
	BlockBullet                       // bullet item at any depth
	BlockParagraph                    // body text
	BlockStepText                     // body text inside a labeled section
)

// String returns the kind name used in structured output.
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockLabel:
		return "label"
	case BlockSection:
		return "section"
	case BlockOrdered:
		return "ordered"
	case BlockBullet:
		return "bullet"
	case BlockParagraph:
		return "paragraph"
	case BlockStepText:
		return "step-text"
	default:
		return "raw"
	}
}

// isListItem reports whether continuation lines may be merged into the block.
func (k BlockKind) isListItem() bool {
	return k == BlockSection || k == BlockOrdered || k == BlockBullet
}

// Block is one rendered unit of a business summary.
// Content holds inline HTML; continuation lines are appended to it.
type Block struct {
	Kind    BlockKind
	Level   int    // heading level, or list nesting depth
	Marker  string // list number such as "3." or bullet glyph
	ID      string // anchor id for headings and promoted items
	Content string
}

// Precompiled patterns for the business summary line scan.
var (
	labelPattern        = regexp.MustCompile(`^(Steps|Trigger|Outcome):`)
	numberedItemPattern = regexp.MustCompile(`^(\s*)(\d+)\.[ \t]+(.+)$`)
	bulletItemPattern   = regexp.MustCompile(`^(\s*)[-*+][ \t]+(.+)$`)
	numberedStart       = regexp.MustCompile(`^\s*\d+\.`)
	bulletStart         = regexp.MustCompile(`^\s*[-*+]`)
)

// placeholderFormat marks where a fenced span is substituted after the line scan.
const placeholderFormat = `<div id="CODE_BLOCK_%d"></div>`

// placeholder returns the substitution key for the n-th fenced span.
func placeholder(n int) string {
	return fmt.Sprintf(placeholderFormat, n)
}

// listContext is the transient line-scan state. A blank line resets it.
type listContext struct {
	inList      bool
	inSteps     bool
	indentLevel int
}

// BlockFormatter renders business summaries with a line-oriented state machine.
// Fenced spans are replaced by placeholders before the scan and substituted
// with Fences output afterwards.
type BlockFormatter struct {
	Styles Styles
	Fences FenceRenderer
}

// NewBlockFormatter creates a BlockFormatter. A nil fences renderer escapes
// code and leaves diagrams for client-side rendering.
func NewBlockFormatter(st Styles, fences FenceRenderer) *BlockFormatter {
	if fences == nil {
		fences = &Fences{}
	}
	return &BlockFormatter{Styles: st, Fences: fences}
}

// Format renders doc to HTML.
func (f *BlockFormatter) Format(doc string) string {
	blocks, fenced := f.Blocks(doc)
	return f.Render(blocks, fenced)
}

// Blocks scans doc and returns its blocks plus the fenced spans, in order,
// whose placeholders appear among the raw blocks.
func (f *BlockFormatter) Blocks(doc string) ([]Block, []Span) {
	text, fenced := extractFences(doc)

	var (
		blocks []Block
		state  listContext
	)
	// last returns the most recent block when it can take a continuation.
	last := func() *Block {
		if len(blocks) == 0 || !blocks[len(blocks)-1].Kind.isListItem() {
			return nil
		}
		return &blocks[len(blocks)-1]
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(line, "<") && !strings.HasPrefix(line, "<code") {
			blocks = append(blocks, Block{Kind: BlockRaw, Content: line})
			continue
		}

		if labelPattern.MatchString(trimmed) {
			state.inSteps = true
			blocks = append(blocks, Block{Kind: BlockLabel, Content: f.inline(trimmed)})
			continue
		}

		if m := headingLinePattern.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[2])
			blocks = append(blocks, Block{
				Kind:    BlockHeading,
				Level:   len(m[1]),
				ID:      Slug(title),
				Content: f.inline(title),
			})
			state.inList = false
			continue
		}

		if m := numberedItemPattern.FindStringSubmatch(line); m != nil {
			level := indentLevel(m[1])
			b := Block{Kind: BlockOrdered, Level: level, Marker: m[2] + ".", Content: f.inline(m[3])}
			if level == 0 {
				b.Kind = BlockSection
				b.ID = Slug(m[3])
			}
			blocks = append(blocks, b)
			state.inList = true
			state.indentLevel = level
			continue
		}

		if state.inList && trimmed != "" && !numberedStart.MatchString(line) && !bulletStart.MatchString(line) {
			if b := last(); b != nil {
				b.Content += " " + f.inline(trimmed)
				continue
			}
		}

		if m := bulletItemPattern.FindStringSubmatch(line); m != nil {
			level := indentLevel(m[1])
			marker := "•"
			if level > 0 {
				marker = "◦"
			}
			blocks = append(blocks, Block{Kind: BlockBullet, Level: level, Marker: marker, Content: f.inline(m[2])})
			state.inList = true
			state.indentLevel = level
			continue
		}

		if trimmed == "" {
			state = listContext{}
			continue
		}

		kind := BlockParagraph
		if state.inSteps {
			kind = BlockStepText
		}
		blocks = append(blocks, Block{Kind: kind, Content: f.inline(line)})
	}

	return blocks, fenced
}

// Render converts blocks to HTML and substitutes fenced span placeholders.
// Each placeholder is replaced once.
func (f *BlockFormatter) Render(blocks []Block, fenced []Span) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, f.renderBlock(b))
	}
	out := strings.Join(parts, "\n")

	for i, s := range fenced {
		out = strings.Replace(out, placeholder(i), f.Fences.RenderFence(i, s), 1)
	}
	return out
}

func (f *BlockFormatter) renderBlock(b Block) string {
	st := f.Styles
	switch b.Kind {
	case BlockHeading:
		if b.Level == 2 {
			return fmt.Sprintf(`<h2 id="%s" class="text-2xl font-bold mb-6 %s mt-10 pb-1 border-b border-zinc-800">%s</h2>`,
				b.ID, st.Title, b.Content)
		}
		return headingHTML(b.Level, b.ID, b.Content, st)
	case BlockLabel:
		return fmt.Sprintf(`<div class="font-semibold %s mt-4 mb-2">%s</div>`, st.Title, b.Content)
	case BlockSection:
		return fmt.Sprintf(`<h2 id="%s" class="pt-6 text-2xl font-bold mb-4 %s"><span class="%s mr-2">%s</span><span>%s</span></h2>`,
			b.ID, st.Title, accentClass, b.Marker, b.Content)
	case BlockOrdered:
		return fmt.Sprintf(`<div class="flex items-start mb-3" style="margin-left: %grem"><span class="%s font-bold mr-2 mt-0.5 min-w-[1.5rem] text-right">%s</span><div class="%s flex-1">%s</div></div>`,
			margin(b.Level), accentClass, b.Marker, st.Body, b.Content)
	case BlockBullet:
		glyphClass := accentClass
		if b.Level > 0 {
			glyphClass = "text-green-400"
		}
		return fmt.Sprintf(`<div class="flex items-start mb-2" style="margin-left: %grem"><span class="%s mr-2 mt-0.5 min-w-[1rem] text-center">%s</span><div class="%s flex-1">%s</div></div>`,
			margin(b.Level), glyphClass, b.Marker, st.Body, b.Content)
	case BlockParagraph:
		return fmt.Sprintf(`<p class="%s mb-4">%s</p>`, st.Body, b.Content)
	case BlockStepText:
		return fmt.Sprintf(`<div class="%s mb-2">%s</div>`, st.Body, b.Content)
	default:
		return b.Content
	}
}

func (f *BlockFormatter) inline(s string) string {
	return FormatInline(s, f.Styles)
}

// margin converts a nesting depth to a left offset in rem.
func margin(level int) float64 {
	return float64(level) * 1.5
}

// extractFences replaces every fenced span of doc with a numbered placeholder.
// Placeholders are numbered by a counter starting at zero. Each one is put on
// a line of its own, without indentation, so the line scan passes it through
// as markup even when the fence was indented under a list item or opened
// mid-line.
func extractFences(doc string) (string, []Span) {
	var (
		parts  []string
		fenced []Span
	)
	spans := Segment(doc)
	for i, s := range spans {
		if s.Kind == SpanText {
			parts = append(parts, s.Raw)
			continue
		}

		if n := len(parts); n > 0 {
			prev := strings.TrimRight(parts[n-1], " \t")
			if prev != "" && !strings.HasSuffix(prev, "\n") {
				prev += "\n"
			}
			parts[n-1] = prev
		}

		p := placeholder(len(fenced))
		if i+1 < len(spans) && !strings.HasPrefix(strings.TrimLeft(spans[i+1].Raw, " \t"), "\n") {
			p += "\n"
		}
		parts = append(parts, p)
		fenced = append(fenced, s)
	}
	return strings.Join(parts, ""), fenced
}
