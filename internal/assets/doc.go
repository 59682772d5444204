// Package assets provides the page template and theme stylesheets used to
// assemble standalone documentation pages.
//
// Assets live in two directories, both in the embedded set and in a custom
// asset directory:
//
//	{dir}/
//	├── styles/
//	│   └── {theme}.css          # dark.css, light.css
//	└── templates/
//	    └── {name}.html          # page.html
//
// AssetResolver reads the custom directory first and falls back to the
// embedded set for any file missing there, so a single stylesheet can be
// overridden on its own.
//
// Custom reads go through os.Root: neither a crafted name nor a symlink can
// reach files outside the directory.
package assets
