package pipeline

import (
	"iter"
	"regexp"
	"strings"
)

// Content type discriminators.
const (
	ContentBusinessSummary        = "business_summary"
	ContentTechnicalDocumentation = "technical_documentation"
	ContentReadme                 = "readme"
)

// DocumentSection is an addressable slice of a larger document starting at a
// level-2 heading. Param is the slug of Title and serves as the routing key.
type DocumentSection struct {
	Title   string
	Content string
	Param   string
}

// h2Pattern matches a level-2 heading line and captures its title.
var h2Pattern = regexp.MustCompile(`(?m)^##[ \t]+(.+)$`)

// headingCursor walks the level-2 headings of a document in order.
// Fenced blocks are blanked out before matching so that comment lines in
// code never start a section. Match offsets index the original document.
type headingCursor struct {
	masked string
	pos    int
}

func newHeadingCursor(doc string) *headingCursor {
	return &headingCursor{masked: textOnly(doc)}
}

// next returns the byte range of the next heading line and its title range.
func (c *headingCursor) next() (start, titleStart, titleEnd int, ok bool) {
	if c.pos > len(c.masked) {
		return 0, 0, 0, false
	}
	loc := h2Pattern.FindStringSubmatchIndex(c.masked[c.pos:])
	if loc == nil {
		c.pos = len(c.masked) + 1
		return 0, 0, 0, false
	}
	start = c.pos + loc[0]
	titleStart, titleEnd = c.pos+loc[2], c.pos+loc[3]
	c.pos = c.pos + loc[1]
	return start, titleStart, titleEnd, true
}

// TechnicalSections yields one section per level-2 heading outside fenced
// blocks. A section runs from its heading to the next level-2 heading or
// the end of the document, trimmed; the title is the heading text.
//
// The sequence is finite and can be ranged over any number of times.
func TechnicalSections(doc string) iter.Seq[DocumentSection] {
	return func(yield func(DocumentSection) bool) {
		c := newHeadingCursor(doc)
		start, ts, te, ok := c.next()
		for ok {
			title := strings.TrimSpace(doc[ts:te])
			nextStart, nts, nte, nextOK := c.next()
			end := len(doc)
			if nextOK {
				end = nextStart
			}
			section := DocumentSection{
				Title:   title,
				Content: strings.TrimSpace(doc[start:end]),
				Param:   Slug(title),
			}
			if !yield(section) {
				return
			}
			start, ts, te, ok = nextStart, nts, nte, nextOK
		}
	}
}

// BusinessSections yields the sections of a business summary.
// Text before the first level-2 heading is dropped, as is a trailing heading
// with nothing after it on the last line. Content is the trimmed section body
// with the "## " prefix restored.
func BusinessSections(doc string) iter.Seq[DocumentSection] {
	return func(yield func(DocumentSection) bool) {
		c := newHeadingCursor(doc)
		start, _, _, ok := c.next()
		for ok {
			nextStart, _, _, nextOK := c.next()
			end := len(doc)
			if nextOK {
				end = nextStart
			}
			// Drop the "##" marker and the separator that follows it.
			part := strings.TrimLeft(doc[start+2:end], " \t")
			if nl := strings.IndexByte(part, '\n'); nl >= 0 {
				title := strings.TrimSpace(part[:nl])
				section := DocumentSection{
					Title:   title,
					Content: "## " + strings.TrimSpace(part),
					Param:   Slug(title),
				}
				if !yield(section) {
					return
				}
			}
			start, ok = nextStart, nextOK
		}
	}
}

// Sections picks the splitting strategy for a content type. Business
// summaries use BusinessSections; everything else uses TechnicalSections.
func Sections(doc, contentType string) iter.Seq[DocumentSection] {
	if contentType == ContentBusinessSummary {
		return BusinessSections(doc)
	}
	return TechnicalSections(doc)
}

// SplitSections collects the sections of doc for a content type.
func SplitSections(doc, contentType string) []DocumentSection {
	var out []DocumentSection
	for s := range Sections(doc, contentType) {
		out = append(out, s)
	}
	return out
}
