package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
)

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound      = errors.New("style not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrIncompleteTemplate = errors.New("template missing required field")
	ErrInvalidAssetName   = errors.New("invalid asset name")
	ErrInvalidBasePath    = errors.New("invalid base path")
	ErrAssetRead          = errors.New("failed to read asset")
	ErrPathTraversal      = errors.New("path traversal detected")
)

// DefaultTemplateName is the name of the built-in page template.
const DefaultTemplateName = "page"

// AssetLoader loads stylesheets and page templates by bare name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css or ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns templates/{name}.html or ErrTemplateNotFound.
	// A template that never renders {{.Body}} is ErrIncompleteTemplate.
	LoadTemplate(name string) (string, error)
}

// kind is a family of assets sharing a directory and extension.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file is the slash-separated path of name within an asset directory.
func (k kind) file(name string) string {
	return k.dir + "/" + name + k.ext
}

// bodyFieldPattern matches a template action that renders the document body.
var bodyFieldPattern = regexp.MustCompile(`\{\{-?\s*\.Body\s*-?\}\}`)

// ValidateAssetName rejects empty names and names carrying a separator or
// a dot, which could reach another directory or extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// reader loads the file at a slash-separated path.
type reader func(path string) ([]byte, error)

// loader implements AssetLoader over a reader.
type loader struct {
	read reader
}

func (l loader) LoadStyle(name string) (string, error) {
	return l.load(styleKind, name)
}

func (l loader) LoadTemplate(name string) (string, error) {
	content, err := l.load(templateKind, name)
	if err != nil {
		return "", err
	}
	if !bodyFieldPattern.MatchString(content) {
		return "", fmt.Errorf("%w: %q never renders {{.Body}}", ErrIncompleteTemplate, name)
	}
	return content, nil
}

func (l loader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := l.read(k.file(name))
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case isEscape(err):
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, k.file(name))
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}

// isEscape reports an os.Root refusal to leave its directory. The os
// package does not export this error.
func isEscape(err error) bool {
	return strings.Contains(err.Error(), "path escapes from parent")
}
