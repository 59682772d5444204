package yamlutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-docview/internal/yamlutil"
)

type testDoc struct {
	Repo     string `yaml:"repo"`
	Sections int    `yaml:"sections"`
	Markdown string `yaml:"markdown"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		want    testDoc
	}{
		{
			name: "known fields",
			data: []byte("repo: octo/widgets\nsections: 3"),
			dest: &testDoc{},
			want: testDoc{Repo: "octo/widgets", Sections: 3},
		},
		{
			name: "unknown field ignored",
			data: []byte("repo: octo/widgets\nstars: 10"),
			dest: &testDoc{},
			want: testDoc{Repo: "octo/widgets"},
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testDoc{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("repo: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := *tt.dest.(*testDoc); got != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Unknown fields rejected
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var doc testDoc
	if err := yamlutil.UnmarshalStrict([]byte("repo: a/b\nsections: 2"), &doc); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	if doc.Repo != "a/b" || doc.Sections != 2 {
		t.Errorf("UnmarshalStrict() = %+v", doc)
	}

	err := yamlutil.UnmarshalStrict([]byte("repo: a/b\nstars: 1"), &testDoc{})
	if err == nil {
		t.Fatal("UnmarshalStrict() with unknown field should fail")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want prefix 'yamlutil:'", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Multi-line strings stay readable
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	in := testDoc{Repo: "octo/widgets", Markdown: "## Install\n\nRun it.\n"}
	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "markdown: |") {
		t.Errorf("multi-line string not in literal style:\n%s", data)
	}

	var out testDoc
	if err := yamlutil.UnmarshalStrict(data, &out); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	if out != in {
		t.Errorf("decoded = %+v, want %+v", out, in)
	}
}

// ---------------------------------------------------------------------------
// TestReadFileStrict - File decoding
// ---------------------------------------------------------------------------

func TestReadFileStrict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "summary.yaml")
	if err := os.WriteFile(path, []byte("repo: octo/widgets\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var doc testDoc
	if err := yamlutil.ReadFileStrict(path, &doc); err != nil {
		t.Fatalf("ReadFileStrict() error = %v", err)
	}
	if doc.Repo != "octo/widgets" {
		t.Errorf("Repo = %q", doc.Repo)
	}

	err := yamlutil.ReadFileStrict(filepath.Join(dir, "missing.yaml"), &doc)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFileStrict(missing) error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Modifies the package-level MaxInputSize, so it does not run in parallel.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })
	yamlutil.MaxInputSize = 100

	atLimit := make([]byte, 100)
	copy(atLimit, "repo: x")
	if err := yamlutil.Unmarshal(atLimit, &testDoc{}); err != nil {
		t.Errorf("input at limit: unexpected error %v", err)
	}

	over := make([]byte, 101)
	copy(over, "repo: x")
	for name, fn := range map[string]func([]byte, any) error{
		"Unmarshal":       yamlutil.Unmarshal,
		"UnmarshalStrict": yamlutil.UnmarshalStrict,
	} {
		err := fn(over, &testDoc{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("%s() error = %v, want ErrInputTooLarge", name, err)
		}
		if err != nil && !strings.Contains(err.Error(), "101 bytes (max 100)") {
			t.Errorf("%s() error = %q, want sizes", name, err)
		}
	}
}
