package pipeline

import (
	"context"
	"strings"
)

// byteOrderMark is stripped from the start of fetched documents.
const byteOrderMark = "\uFEFF"

// lineEndings rewrites CRLF and lone CR to LF. Replacer tries "\r\n"
// before "\r" at each position.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Preprocessor prepares raw markdown for the line scanners.
type Preprocessor interface {
	Preprocess(ctx context.Context, md string) string
}

// Normalizer strips a leading byte order mark and normalizes line endings,
// so every later stage can split on "\n".
type Normalizer struct{}

// Preprocess returns md unchanged once ctx is done.
func (Normalizer) Preprocess(ctx context.Context, md string) string {
	if ctx.Err() != nil {
		return md
	}
	md = strings.TrimPrefix(md, byteOrderMark)
	if !strings.Contains(md, "\r") {
		return md
	}
	return lineEndings.Replace(md)
}

// IsBlank reports whether md has no visible characters.
func IsBlank(md string) bool {
	return strings.TrimSpace(strings.TrimPrefix(md, byteOrderMark)) == ""
}
