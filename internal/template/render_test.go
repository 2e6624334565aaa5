package template

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		tpl      string
		bindings map[string]string
		want     string
	}{
		{
			name:     "single substitution",
			tpl:      "Hi {{name}}",
			bindings: map[string]string{"name": "Ada"},
			want:     "Hi Ada",
		},
		{
			name:     "no bindings leaves template unchanged",
			tpl:      "Hi {{name}}",
			bindings: map[string]string{},
			want:     "Hi {{name}}",
		},
		{
			name:     "empty value keeps the literal token",
			tpl:      "Hi {{name}}",
			bindings: map[string]string{"name": ""},
			want:     "Hi {{name}}",
		},
		{
			name:     "unknown token preserved verbatim",
			tpl:      "Report for {{quarter}} by {{author}}",
			bindings: map[string]string{"quarter": "Q3"},
			want:     "Report for Q3 by {{author}}",
		},
		{
			name:     "every occurrence replaced",
			tpl:      "{{x}} and {{x}} again",
			bindings: map[string]string{"x": "twice"},
			want:     "twice and twice again",
		},
		{
			name:     "substituted value is not re-scanned",
			tpl:      "{{a}}",
			bindings: map[string]string{"a": "{{b}}", "b": "nope"},
			want:     "{{b}}",
		},
		{
			name:     "unterminated token left alone",
			tpl:      "broken {{name",
			bindings: map[string]string{"name": "Ada"},
			want:     "broken {{name",
		},
		{
			name:     "non-identifier braces left alone",
			tpl:      "set {{a b}} and {{ok}}",
			bindings: map[string]string{"ok": "yes"},
			want:     "set {{a b}} and yes",
		},
		{
			name:     "extra brace still matches the inner token",
			tpl:      "{{{name}}}",
			bindings: map[string]string{"name": "Ada"},
			want:     "{Ada}",
		},
		{
			name:     "extra brace with no binding stays literal",
			tpl:      "{{{name}}}",
			bindings: map[string]string{},
			want:     "{{{name}}}",
		},
		{
			name:     "empty template",
			tpl:      "",
			bindings: map[string]string{"name": "Ada"},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.tpl, tt.bindings)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderIdempotentOnEmptyBindings(t *testing.T) {
	tpl := "Draft a {{framework}} analysis for {{company}} covering {{scope}}."
	if got := Render(tpl, nil); got != tpl {
		t.Errorf("Render with nil bindings changed the template: %q", got)
	}
	if got := Render(tpl, map[string]string{}); got != tpl {
		t.Errorf("Render with empty bindings changed the template: %q", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	tpl := "{{a}} {{b}} {{a}}"
	bindings := map[string]string{"a": "1", "b": "2"}
	first := Render(tpl, bindings)
	for i := 0; i < 5; i++ {
		if got := Render(tpl, bindings); got != first {
			t.Fatalf("Render not deterministic: %q vs %q", got, first)
		}
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		want []string
	}{
		{"ordered without duplicates", "{{b}} {{a}} {{b}} {{c}}", []string{"b", "a", "c"}},
		{"no tokens", "plain text", nil},
		{"skips malformed", "{{a b}} {{ok}}", []string{"ok"}},
		{"extra brace", "{{{name}}}", []string{"name"}},
		{"unterminated tail", "{{a}} {{b", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.tpl)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokens() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
