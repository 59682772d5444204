package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

// Heading is one entry of the on-page outline.
type Heading struct {
	ID    string
	Text  string
	Level int
}

// outlinePattern matches the markdown headings eligible for the outline.
var outlinePattern = regexp.MustCompile(`^(#{1,4})\s+(.+)$`)

// maxOutlineLevel is the deepest heading level kept in the outline.
const maxOutlineLevel = 3

// tocCandidate is a heading found at a byte offset of the document.
type tocCandidate struct {
	pos int
	Heading
}

// ExtractTOC returns the outline of doc for a content type.
//
// Entries come from three sources, resolved in this precedence:
// level-2 headings; top-level numbered items, as level 2, unless a level-2
// heading already produced the id; headings of levels 1 to 3, skipping level 2
// for business summaries. Ids are unique, the first claim winning, and entries
// are returned in document order. Lines inside fenced blocks are ignored.
func ExtractTOC(doc, contentType string) []Heading {
	var h2s, numbered, others []tocCandidate

	pos := 0
	for _, line := range strings.Split(textOnly(doc), "\n") {
		if m := h2Pattern.FindStringSubmatch(line); m != nil {
			text := stripBold(m[1])
			h2s = append(h2s, tocCandidate{pos, Heading{ID: Slug(text), Text: text, Level: 2}})
		}
		if m := numberedItemPattern.FindStringSubmatch(line); m != nil && indentLevel(m[1]) == 0 {
			text := stripBold(m[3])
			numbered = append(numbered, tocCandidate{pos, Heading{ID: Slug(m[3]), Text: text, Level: 2}})
		}
		if m := outlinePattern.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			if level <= maxOutlineLevel && (level != 2 || contentType != ContentBusinessSummary) {
				text := CleanHeadingText(m[2])
				others = append(others, tocCandidate{pos, Heading{ID: Slug(text), Text: text, Level: level}})
			}
		}
		pos += len(line) + 1
	}

	seen := make(map[string]bool)
	var kept []tocCandidate
	claim := func(cs []tocCandidate) {
		for _, c := range cs {
			if c.ID == "" || seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			kept = append(kept, c)
		}
	}
	claim(h2s)
	claim(numbered)
	claim(others)

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].pos < kept[j].pos })

	headings := make([]Heading, len(kept))
	for i, c := range kept {
		headings[i] = c.Heading
	}
	return headings
}

func stripBold(s string) string {
	return strings.TrimSpace(boldPattern.ReplaceAllString(strings.TrimSpace(s), "$1"))
}
