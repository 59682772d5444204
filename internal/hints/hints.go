// Package hints builds the actionable suffixes appended to CLI errors.
// Every suffix has the form "\n  hint: <text>", several hints joined by "; ".
package hints

import (
	"os"
	"slices"
	"strings"

	"github.com/alnah/go-docview/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker, which
// creates /.dockerenv in every container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect explains a failed Chrome launch for server-side diagrams.
// The sandbox is disabled only when CI=true or ROD_BROWSER_BIN is set, so
// containers without either get a suggestion.
func ForBrowserConnect() string {
	customBin := os.Getenv("ROD_BROWSER_BIN") != ""
	sandboxOff := os.Getenv("CI") == "true" || customBin

	var hints []string
	if IsInContainer() && !sandboxOff {
		hints = append(hints, "set CI=true to disable the Chrome sandbox in Docker")
	}
	if !customBin {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return format(append(hints, "use --diagrams browser to render diagrams client-side")...)
}

// ForTimeout suggests a longer bound when a diagram page times out.
func ForTimeout() string {
	return format("for large diagrams, use --timeout flag")
}

// ForConfigNotFound suggests --config, or creating the user-level file
// among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	if i := slices.IndexFunc(searchedPaths, func(p string) bool {
		return strings.Contains(p, ".config/go-docview")
	}); i >= 0 {
		hint += " or create " + searchedPaths[i]
	}
	return format(hint)
}

// ForOutputDirectory explains a site directory that cannot be created.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStoreOpen explains a summary database that cannot be opened.
func ForStoreOpen(path string) string {
	return format("another docview process may hold " + path + "; use --store to pick another file")
}

// ForSummaryNotFound points at import for a repository missing from the store.
func ForSummaryNotFound(repo string) string {
	return format("run 'docview import <summary.yaml>' to store " + repo)
}

// ForSiteArgument explains a site argument that is neither a file nor a
// valid owner/repo.
func ForSiteArgument() string {
	return format("pass an existing summary file or a stored owner/repo")
}

// format renders hints as one suffix, empty when there are none.
func format(hints ...string) string {
	hints = slices.DeleteFunc(hints, func(h string) bool { return h == "" })
	if len(hints) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(hints, "; ")
}
