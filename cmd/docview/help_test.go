package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, cmd := range []string{cmdRender, cmdSections, cmdTOC, cmdImport, cmdList, cmdExport, cmdRemove, cmdSite, cmdVersion, cmdHelp} {
		if !strings.Contains(buf.String(), "  "+cmd+" ") {
			t.Errorf("usage should list %q", cmd)
		}
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantInStdout []string
		wantErr      error
	}{
		{"no args shows main usage", nil, []string{"Usage: docview <command>", "Commands:"}, nil},
		{"render", []string{"render"}, []string{"Usage: docview render", "Rendering:", "Diagrams:", "Page:"}, nil},
		{"sections", []string{"sections"}, []string{"Usage: docview sections", "?doc="}, nil},
		{"toc", []string{"toc"}, []string{"Usage: docview toc"}, nil},
		{"import", []string{"import"}, []string{"Usage: docview import", "--store"}, nil},
		{"list", []string{"list"}, []string{"Usage: docview list"}, nil},
		{"export", []string{"export"}, []string{"Usage: docview export"}, nil},
		{"remove", []string{"remove"}, []string{"Usage: docview remove"}, nil},
		{"site", []string{"site"}, []string{"Usage: docview site", "--workers"}, nil},
		{"version", []string{"version"}, []string{"Usage: docview version"}, nil},
		{"help", []string{"help"}, []string{"Usage: docview help"}, nil},
		{"unknown command", []string{"convert"}, nil, ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout bytes.Buffer
			env := &Environment{Stdout: &stdout, Stderr: &bytes.Buffer{}}

			err := runHelp(tt.args, env)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got:\n%s", want, stdout.String())
				}
			}
		})
	}
}
