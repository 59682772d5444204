package assets

import "errors"

// AssetResolver reads each asset from the first loader that has it.
// Only not-found errors move on to the next loader; invalid names,
// incomplete templates and read failures are returned as is.
type AssetResolver struct {
	loaders []AssetLoader
}

// NewAssetResolver layers customDir, when set, over the embedded assets.
func NewAssetResolver(customDir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customDir != "" {
		custom, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, custom)
	}
	r.loaders = append(r.loaders, Embedded)
	return r, nil
}

// LoadStyle loads a theme stylesheet.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate loads a page template.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.loaders {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
