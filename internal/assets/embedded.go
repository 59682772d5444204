package assets

import "embed"

//go:embed styles/*.css templates/*.html
var embedded embed.FS

// Embedded loads the built-in page template and themes.
var Embedded AssetLoader = loader{read: embedded.ReadFile}
