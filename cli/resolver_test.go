package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveString(t *testing.T, source, flag string) any {
	t.Helper()

	r, err := resolve(strings.NewReader(source))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	value, err := r.Resolve(nil, nil, &kong.Flag{
		Value: &kong.Value{Name: flag},
	})
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", flag, err)
	}

	return value
}

func TestResolve(t *testing.T) {
	t.Parallel()

	source := `
log_level: debug
log-format: json
log_pretty: true
retries: 3
ratio: 0.5
names:
  - alpha
  - beta
`

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},    // underscore key matches hyphen flag
		{"log-format", "json"},    // hyphen key matches directly
		{"log-pretty", true},      // booleans pass through
		{"retries", "3"},          // numbers become strings
		{"ratio", "0.5"},          // floats become strings
		{"missing", nil},          // absent keys defer to defaults
		{"log_level", "debug"},    // exact key always matches
		{"never-set-format", nil}, // near-miss names do not match
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			got := resolveString(t, source, tt.flag)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %v (%T), want %v", tt.flag, got, got, tt.want)
			}
		})
	}
}

func TestResolveSequence(t *testing.T) {
	t.Parallel()

	got := resolveString(t, "ports:\n  - 80\n  - 443\n", "ports")

	seq, ok := got.([]any)
	if !ok {
		t.Fatalf("Resolve(ports) = %T, want []any", got)
	}

	if len(seq) != 2 || seq[0] != "80" || seq[1] != "443" {
		t.Errorf("Resolve(ports) = %v, want [80 443] as strings", seq)
	}
}

func TestResolveMalformed(t *testing.T) {
	t.Parallel()

	// Malformed YAML degrades to an empty config instead of failing.
	got := resolveString(t, "log_level: [unclosed", "log-level")
	if got != nil {
		t.Errorf("Resolve on malformed config = %v, want nil", got)
	}
}

func TestResolveValidate(t *testing.T) {
	t.Parallel()

	r, err := resolve(strings.NewReader("a: 1\n"))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	if err := r.Validate(nil); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
