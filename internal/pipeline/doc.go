// Package pipeline implements the markdown-to-HTML stages of the viewer.
//
// The stages are pure transforms over strings:
//   - Segment splits a document into text, code and diagram spans
//   - FormatText and FormatInline render text spans line by line
//   - BlockFormatter renders business summaries with list and label state
//   - Slug derives the anchor ids shared by headings and the outline
//   - TechnicalSections and BusinessSections split documents for navigation
//   - ExtractTOC builds the on-page outline
//
// Supporting stages cover code highlighting with chroma, an optional goldmark
// converter for README files, relative URL rewriting and page assembly.
// Diagram rendering needs a browser and lives in the root docview package.
package pipeline
