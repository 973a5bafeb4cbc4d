package rendering

import (
	"strings"
	"testing"
)

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer(80)
	if r.termRenderer == nil {
		t.Fatal("expected a glamour renderer")
	}

	out := r.Render("# 분위기\n\n밝은 대화방입니다.")
	if !strings.Contains(out, "분위기") {
		t.Errorf("rendered output lost the heading: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("rendered output should end with a newline")
	}
}

func TestMarkdownRendererPassthrough(t *testing.T) {
	var nilRenderer *MarkdownRenderer
	if got := nilRenderer.Render("**x**"); got != "**x**" {
		t.Errorf("nil renderer Render() = %q", got)
	}
	if got := (&MarkdownRenderer{}).Render("**x**"); got != "**x**" {
		t.Errorf("empty renderer Render() = %q", got)
	}
}

func TestRenderForTerminalUnstyled(t *testing.T) {
	md := "# 제목\n"
	if got := RenderForTerminal(md, false); got != md {
		t.Errorf("RenderForTerminal(styled=false) = %q, want input unchanged", got)
	}
}

func TestGetSharedRenderer(t *testing.T) {
	if GetSharedRenderer() != GetSharedRenderer() {
		t.Error("GetSharedRenderer should return the same instance")
	}
}
