package mailer

import (
	"strings"
	"testing"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render(Welcome, map[string]any{"Name": "Alice"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if subject == "" || text == "" {
		t.Fatal("subject/text empty")
	}
	if !strings.Contains(html, "Alice") {
		t.Fatalf("html does not include the name: %q", html)
	}
}

func TestRenderAccountDeleted(t *testing.T) {
	subject, _, html, err := Render(AccountDeleted, map[string]any{"Name": "Alice"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(subject, "deleted") || !strings.Contains(html, "Alice") {
		t.Fatalf("unexpected output: subject=%q html=%q", subject, html)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, _, err := Render("no-such-template", nil); err == nil {
		t.Fatal("unknown template must fail")
	}
}
