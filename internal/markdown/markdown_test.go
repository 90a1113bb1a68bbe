package markdown

import (
	"strings"
	"testing"
)

const sampleDocument = `---
title: Hello <World>
slug: hello-world
date: "2024-03-14T15:09:26Z"
tags:
  - go
  - testing
---

Welcome to **WordPress**.

- [x] converted
- [ ] reviewed

https://example.com
`

func TestGoldmarkRendererDefaults(t *testing.T) {
	out, err := NewGoldmarkRenderer(Options{}).Render([]byte("~~old~~ and https://example.com\n\n- [x] done\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<del>old</del>", `<a href="https://example.com">`, `type="checkbox"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %s", want, html)
		}
	}
}

func TestGoldmarkRendererSafeModeDropsRawHTML(t *testing.T) {
	out, err := NewGoldmarkRenderer(Options{SafeMode: true}).Render([]byte("<div>raw</div>\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(out), "<div>") {
		t.Fatalf("expected raw html to be omitted, got %s", out)
	}
}

func TestCollectExtensionsIgnoresUnknownNames(t *testing.T) {
	exts := collectExtensions([]string{"table", "TABLE", "mermaid", " footnote "})
	if len(exts) != 2 {
		t.Fatalf("expected 2 extensions, got %d", len(exts))
	}
}

func TestParseFrontMatter(t *testing.T) {
	header, body, err := ParseFrontMatter([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if header.Slug != "hello-world" || len(header.Tags) != 2 {
		t.Fatalf("unexpected header %+v", header)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "Welcome to **WordPress**.") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestRenderDocument(t *testing.T) {
	page, err := RenderDocument(NewGoldmarkRenderer(Options{}), []byte(sampleDocument))
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	html := string(page)
	for _, want := range []string{
		"<title>Hello &lt;World&gt;</title>",
		"<dt>tags</dt><dd>go, testing</dd>",
		"<strong>WordPress</strong>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in page:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<dt>author</dt>") {
		t.Fatalf("expected empty fields to be omitted:\n%s", html)
	}
}
