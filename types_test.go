package docview

import (
	"errors"
	"testing"
)

func TestValidateRepo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		repo    string
		wantErr bool
	}{
		{repo: "octo/hello"},
		{repo: "octo-org/hello.go"},
		{repo: "a/b_c-d.e"},
		{repo: "", wantErr: true},
		{repo: "octo", wantErr: true},
		{repo: "octo/", wantErr: true},
		{repo: "/hello", wantErr: true},
		{repo: "-octo/hello", wantErr: true},
		{repo: "octo/hello/extra", wantErr: true},
		{repo: "octo/..", wantErr: true},
		{repo: "octo/.", wantErr: true},
		{repo: "octo/hel lo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.repo, func(t *testing.T) {
			t.Parallel()

			err := ValidateRepo(tt.repo)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRepo) {
					t.Errorf("ValidateRepo(%q) error = %v, want ErrInvalidRepo", tt.repo, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateRepo(%q) unexpected error: %v", tt.repo, err)
			}
		})
	}
}

func TestRepoSummary_Validate(t *testing.T) {
	t.Parallel()

	s := RepoSummary{Repo: "octo/hello"}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	s.Repo = "bad"
	if err := s.Validate(); !errors.Is(err, ErrInvalidRepo) {
		t.Errorf("Validate() error = %v, want ErrInvalidRepo", err)
	}
}

func TestIsValidEngine(t *testing.T) {
	t.Parallel()

	for _, e := range []Engine{EngineBuiltin, EngineGoldmark, "GOLDMARK"} {
		if !isValidEngine(e) {
			t.Errorf("isValidEngine(%q) = false", e)
		}
	}
	for _, e := range []Engine{"", "pandoc"} {
		if isValidEngine(e) {
			t.Errorf("isValidEngine(%q) = true", e)
		}
	}
}
