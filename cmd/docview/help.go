package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docview <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a markdown document to HTML")
	fmt.Fprintln(w, "  sections   List the addressable sections of a document")
	fmt.Fprintln(w, "  toc        Print the table of contents of a document")
	fmt.Fprintln(w, "  import     Store a repository summary file")
	fmt.Fprintln(w, "  list       List stored repository summaries")
	fmt.Fprintln(w, "  export     Write a stored summary as YAML")
	fmt.Fprintln(w, "  remove     Delete a stored summary")
	fmt.Fprintln(w, "  site       Generate a static documentation site")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docview help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags every command accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show sizes and timing")
}

// printRenderOptions prints the renderer flags.
func printRenderOptions(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --theme <s>           Class theme: dark, light")
	fmt.Fprintln(w, "      --engine <s>          README engine: builtin, goldmark")
	fmt.Fprintln(w, "      --style <s>           Chroma highlighting style (default dracula)")
	fmt.Fprintln(w, "      --no-highlight        Render code blocks as plain text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagrams:")
	fmt.Fprintln(w, "      --diagrams <s>        server (headless Chrome), browser, none")
	fmt.Fprintln(w, "      --mermaid-url <url>   mermaid.js bundle URL")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-diagram timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates/ and styles/ directory")
	fmt.Fprintln(w, "      --toc-title <s>       On-page navigator heading")
	fmt.Fprintln(w, "      --no-toc              Omit the on-page navigator")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docview render <file|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown document to an HTML fragment, or a full page with --page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default stdout)")
	fmt.Fprintln(w, "      --type <s>            technical (default), business, readme")
	fmt.Fprintln(w, "      --base-url <url>      Resolve relative links and images against URL")
	fmt.Fprintln(w, "      --page                Wrap the fragment in a standalone page")
	fmt.Fprintln(w)
	printRenderOptions(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printSectionsUsage prints usage for the sections command.
func printSectionsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docview sections <file|-> [--type <s>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the level-2 sections of a document as <param><TAB><title>.")
	fmt.Fprintln(w, "The param is the ?doc= value that addresses the section.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printTOCUsage prints usage for the toc command.
func printTOCUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docview toc <file|-> [--type <s>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the table of contents with the anchor id of every entry.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// storeUsage returns the usage printer for a store command.
func storeUsage(name string) func(io.Writer) {
	return func(w io.Writer) {
		switch name {
		case cmdImport:
			fmt.Fprintln(w, "Usage: docview import <summary.yaml> [--repo owner/repo] [--store <path>]")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Store a summary file with the fields repo, technicalDocumentation,")
			fmt.Fprintln(w, "businessSummary and readme. An existing summary is replaced.")
		case cmdList:
			fmt.Fprintln(w, "Usage: docview list [--store <path>]")
		case cmdExport:
			fmt.Fprintln(w, "Usage: docview export <owner/repo> [-o <file>] [--store <path>]")
		case cmdRemove:
			fmt.Fprintln(w, "Usage: docview remove <owner/repo> [--store <path>]")
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "      --store <path>        Summary database (default user cache dir)")
		fmt.Fprintln(w)
		printCommonFlags(w)
	}
}

// printSiteUsage prints usage for the site command.
func printSiteUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docview site <owner/repo|summary.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate one page per document: index.html, readme.html and one")
	fmt.Fprintln(w, "<param>.html per technical and business section.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default ./site)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renderers (0 = auto)")
	fmt.Fprintln(w, "      --store <path>        Summary database (default user cache dir)")
	fmt.Fprintln(w, "      --base-url <url>      README link base")
	fmt.Fprintln(w)
	printRenderOptions(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints usage for the named command, or the main usage.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case cmdRender:
		printRenderUsage(env.Stdout)
	case cmdSections:
		printSectionsUsage(env.Stdout)
	case cmdTOC:
		printTOCUsage(env.Stdout)
	case cmdImport, cmdList, cmdExport, cmdRemove:
		storeUsage(args[0])(env.Stdout)
	case cmdSite:
		printSiteUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: docview version")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: docview help [command]")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	return nil
}
