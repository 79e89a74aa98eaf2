package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}

	return path
}

func TestLoadVars(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "vars.yaml", "name: hadi\ncount: 3\n")

	vars, err := loadVars(path, []string{"name=alice", "extra=1"})
	if err != nil {
		t.Fatalf("loadVars() error = %v", err)
	}

	if vars["name"] != "alice" {
		t.Errorf("vars[name] = %v, want assignment override alice", vars["name"])
	}

	if vars["extra"] != "1" {
		t.Errorf("vars[extra] = %v, want 1", vars["extra"])
	}

	if _, ok := vars["count"]; !ok {
		t.Errorf("vars[count] missing, want value from file")
	}
}

func TestLoadVarsNoFile(t *testing.T) {
	t.Parallel()

	vars, err := loadVars("", []string{"a=1"})
	if err != nil {
		t.Fatalf("loadVars() error = %v", err)
	}

	if vars["a"] != "1" {
		t.Errorf("vars[a] = %v, want 1", vars["a"])
	}
}

func TestLoadVarsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := loadVars(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if !errors.Is(err, ErrLoadVars) {
		t.Errorf("loadVars() error = %v, want %v", err, ErrLoadVars)
	}
}

func TestLoadVarsEmptyFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "empty.yaml", "")

	vars, err := loadVars(path, []string{"a=1"})
	if err != nil {
		t.Fatalf("loadVars() error = %v", err)
	}

	if vars["a"] != "1" {
		t.Errorf("vars[a] = %v, want 1", vars["a"])
	}
}

func TestLoadVarsBadAssignment(t *testing.T) {
	t.Parallel()

	for _, assignment := range []string{"novalue", "=value", "  =x"} {
		_, err := loadVars("", []string{assignment})
		if !errors.Is(err, ErrBadAssignment) {
			t.Errorf("loadVars(%q) error = %v, want %v",
				assignment, err, ErrBadAssignment)
		}
	}
}

func TestRenderRun(t *testing.T) {
	t.Parallel()

	template := writeFile(t, "template.txt", "Hello {name.strtoupper}!")
	output := filepath.Join(t.TempDir(), "out.txt")

	cmd := Render{
		Set:    []string{"name=hadi"},
		Output: output,
	}

	ctx := WithSourceFiles(context.Background(), []string{template})

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile(output) error = %v", err)
	}

	if got := string(data); got != "Hello HADI!" {
		t.Errorf("rendered output = %q, want %q", got, "Hello HADI!")
	}
}

func TestRenderRunInlineText(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "out.txt")

	cmd := Render{
		Set:    []string{"who=world"},
		Output: output,
		Text:   []string{"Hello", "{who}!"},
	}

	if err := cmd.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile(output) error = %v", err)
	}

	if got := string(data); got != "Hello world!" {
		t.Errorf("rendered output = %q, want %q", got, "Hello world!")
	}
}

func TestRenderRunStrictFailure(t *testing.T) {
	t.Parallel()

	cmd := Render{
		Strict: true,
		Output: filepath.Join(t.TempDir(), "out.txt"),
		Text:   []string{"{missing}"},
	}

	err := cmd.Run(context.Background())
	if !errors.Is(err, ErrRenderFailed) {
		t.Errorf("Run() error = %v, want %v", err, ErrRenderFailed)
	}
}

func TestBuildSourceFiles(t *testing.T) {
	t.Parallel()

	a := writeFile(t, "a.txt", "alpha ")
	b := writeFile(t, "b.txt", "beta")

	sources := buildSourceFiles([]string{a, b, a, "no-such-file"})
	if sources == nil {
		t.Fatal("buildSourceFiles returned nil")
	}

	var sb strings.Builder
	if _, err := sources.WriteTo(&sb); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	// The duplicate of a.txt and the missing file are both skipped.
	if got := sb.String(); got != "alpha beta" {
		t.Errorf("combined sources = %q, want %q", got, "alpha beta")
	}
}

func TestBuildSourceFilesEmpty(t *testing.T) {
	t.Parallel()

	if got := buildSourceFiles(nil); got != nil {
		t.Errorf("buildSourceFiles(nil) = %v, want nil", got)
	}
}

func TestErrorFormatting(t *testing.T) {
	t.Parallel()

	base := NewError("read template source")

	wrapped := base.Wrap(errors.New("permission denied"))
	if got := wrapped.Error(); got != "read template source: permission denied" {
		t.Errorf("Error() = %q", got)
	}

	if !errors.Is(wrapped, ErrReadTemplate) {
		t.Errorf("errors.Is failed for wrapped sentinel")
	}
}
