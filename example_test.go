package docview_test

import (
	"context"
	"fmt"
	"log"

	docview "github.com/alnah/go-docview"
)

func ExampleRenderer_Render() {
	r, err := docview.NewRenderer()
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	result, err := r.Render(context.Background(), docview.Input{
		Markdown:    "## Install\n\nRun `make`.\n\n## Usage\n\nCall the API.",
		ContentType: docview.TechnicalDocumentation,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, h := range result.Headings {
		fmt.Printf("%s #%s\n", h.Text, h.ID)
	}
	// Output:
	// Install #install
	// Usage #usage
}

func ExampleRenderer_Render_empty() {
	r, err := docview.NewRenderer()
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	result, err := r.Render(context.Background(), docview.Input{ContentType: docview.Readme})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(result.HTML)
	// Output:
	// <p class="text-zinc-400">No content available.</p>
}

func ExampleSections() {
	doc := "## Getting Started\nInstall it.\n\n## API Reference\nEndpoints."

	for s := range docview.Sections(doc, docview.TechnicalDocumentation) {
		fmt.Printf("%s -> ?doc=%s\n", s.Title, s.Param)
	}
	// Output:
	// Getting Started -> ?doc=getting-started
	// API Reference -> ?doc=api-reference
}

func ExampleSlug() {
	fmt.Println(docview.Slug("**Core** Concepts & Design"))
	// Output: core-concepts-design
}

func ExampleCatalog_Resolve() {
	cat := docview.NewCatalog(docview.RepoSummary{
		Repo:            "octo/hello",
		BusinessSummary: "## Pricing\nFree for open source.",
	})

	doc := cat.Resolve("pricing")
	fmt.Println(doc.Title, doc.ContentType)

	doc = cat.Resolve("unknown")
	fmt.Println(doc.Title)
	// Output:
	// Pricing business_summary
	// Document Not Found
}
