package docview

import (
	"fmt"

	"github.com/alnah/go-docview/internal/pipeline"
)

// Navigation types used by page assembly.
type (
	NavItem    = pipeline.NavItem
	NavSection = pipeline.NavSection
)

// Reserved document params.
const (
	ParamOverview = "overview"
	ParamReadme   = "readme"
)

// Sidebar section titles.
const (
	TechnicalNavTitle = "High Level Documentation"
	BusinessNavTitle  = "Business Logic"
)

// Document is one addressable page of a repository's documentation.
type Document struct {
	Param       string
	Title       string
	Markdown    string
	ContentType ContentType // empty for the not-found page
}

// Catalog indexes the documents of one repository summary by param.
// It is immutable once built.
type Catalog struct {
	repo      string
	readme    string
	technical []Section
	business  []Section
}

// NewCatalog splits the technical documentation and business summary of s
// into their level-2 sections.
func NewCatalog(s RepoSummary) *Catalog {
	return &Catalog{
		repo:      s.Repo,
		readme:    s.Readme,
		technical: SplitSections(s.TechnicalDocumentation, TechnicalDocumentation),
		business:  SplitSections(s.BusinessSummary, BusinessSummary),
	}
}

// Repo returns the owner/repo name of the catalog.
func (c *Catalog) Repo() string {
	return c.repo
}

// Resolve returns the document addressed by param. Technical sections are
// tried first, then business sections, then the overview and README pages.
// An empty param is the overview. Unknown params resolve to a not-found
// document; Resolve never fails.
func (c *Catalog) Resolve(param string) Document {
	if param == "" {
		param = ParamOverview
	}

	if s, ok := findSection(c.technical, param); ok {
		return Document{Param: param, Title: navName(s.Title), Markdown: s.Content, ContentType: TechnicalDocumentation}
	}
	if s, ok := findSection(c.business, param); ok {
		return Document{Param: param, Title: navName(s.Title), Markdown: s.Content, ContentType: BusinessSummary}
	}

	if param == ParamOverview || param == ParamReadme {
		md := c.readme
		if pipeline.IsBlank(md) {
			md = c.defaultOverview()
		}
		title := "Overview"
		if param == ParamReadme {
			title = "README"
		}
		return Document{Param: param, Title: title, Markdown: md, ContentType: Readme}
	}

	return Document{
		Param:    param,
		Title:    "Document Not Found",
		Markdown: fmt.Sprintf("# Document Not Found\n\nThe requested document '%s' could not be found.", param),
	}
}

// defaultOverview is shown when the summary carries no README.
func (c *Catalog) defaultOverview() string {
	return fmt.Sprintf("# Repository Overview\n\nWelcome to the documentation for `%s`. "+
		"Use the sidebar navigation to explore the AI generated documentation.", c.repo)
}

// TopNav returns the Overview and README links, marking active.
func (c *Catalog) TopNav(active string) []NavItem {
	if active == "" {
		active = ParamOverview
	}
	return []NavItem{
		{Name: "Overview", Param: ParamOverview, Active: active == ParamOverview},
		{Name: "README", Param: ParamReadme, Active: active == ParamReadme},
	}
}

// Sidebar returns the technical and business sections as navigation groups.
// Empty groups are omitted.
func (c *Catalog) Sidebar(active string) []NavSection {
	var out []NavSection
	if items := navItems(c.technical, active); len(items) > 0 {
		out = append(out, NavSection{Title: TechnicalNavTitle, Items: items})
	}
	if items := navItems(c.business, active); len(items) > 0 {
		out = append(out, NavSection{Title: BusinessNavTitle, Items: items})
	}
	return out
}

// Params lists every distinct param of the catalog in navigation order:
// overview, readme, technical sections, business sections.
func (c *Catalog) Params() []string {
	seen := map[string]bool{ParamOverview: true, ParamReadme: true}
	params := []string{ParamOverview, ParamReadme}
	for _, group := range [][]Section{c.technical, c.business} {
		for _, s := range group {
			if s.Param == "" || seen[s.Param] {
				continue
			}
			seen[s.Param] = true
			params = append(params, s.Param)
		}
	}
	return params
}

func findSection(sections []Section, param string) (Section, bool) {
	for _, s := range sections {
		if s.Param == param {
			return s, true
		}
	}
	return Section{}, false
}

func navItems(sections []Section, active string) []NavItem {
	items := make([]NavItem, 0, len(sections))
	for _, s := range sections {
		if s.Param == "" {
			continue
		}
		items = append(items, NavItem{Name: navName(s.Title), Param: s.Param, Active: s.Param == active})
	}
	return items
}

// navName is the display form of a heading: markup removed.
func navName(title string) string {
	return pipeline.CleanHeadingText(title)
}
