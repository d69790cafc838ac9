package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/wonderfulspam/config-drift/pkg/differ"
)

func sampleEntries() []differ.Entry {
	return []differ.Entry{
		{Kind: differ.KindAdded, Key: "c", NewValue: map[string]interface{}{"type": "number"}},
		{Kind: differ.KindRemoved, Key: "b", OldValue: map[string]interface{}{"type": "string"}},
		{Kind: differ.KindChanged, Key: "a",
			OldValue: map[string]interface{}{"default": false},
			NewValue: map[string]interface{}{"default": true}},
	}
}

func TestAssemble(t *testing.T) {
	r := Assemble("1.2.3", "1.3.0", sampleEntries())

	if !r.HasChanges {
		t.Error("Expected HasChanges")
	}
	if len(r.Added) != 1 || len(r.Removed) != 1 || len(r.Changed) != 1 {
		t.Errorf("Bad grouping: %d added, %d removed, %d changed",
			len(r.Added), len(r.Removed), len(r.Changed))
	}
	if r.BaseVersion != "1.2.3" || r.HeadVersion != "1.3.0" {
		t.Errorf("Version labels lost: %q, %q", r.BaseVersion, r.HeadVersion)
	}
	if r.Summary != "1 added, 1 removed, 1 changed" {
		t.Errorf("Unexpected summary: %q", r.Summary)
	}
}

func TestAssemble_Empty(t *testing.T) {
	r := Assemble("1.2.3", "1.2.4", nil)

	if r.HasChanges {
		t.Error("Expected no changes")
	}

	for _, format := range []string{"text", "markdown"} {
		out, err := r.Render(format)
		if err != nil {
			t.Fatalf("Render(%s) failed: %v", format, err)
		}
		if !strings.Contains(out, "No settings changed between `1.2.3` and `1.2.4`.") {
			t.Errorf("Render(%s) missing explicit no-changes statement:\n%s", format, out)
		}
	}
}

func TestRenderText(t *testing.T) {
	r := Assemble("1.2.3", "1.3.0", sampleEntries())

	out, err := r.Render("text")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Base: 1.2.3",
		"Head: 1.3.0",
		`+ c: {"type":"number"}`,
		`- b: {"type":"string"}`,
		"~ a:",
		`old: {"default":false}`,
		`new: {"default":true}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := Assemble("1.2.3", "1.3.0", sampleEntries())
	r.RepositoryURL = "https://github.com/acme/widget"
	r.ConfigPath = "package.json"
	r.HeadRev = "def456"
	r.RawDiff = "--- 1.2.3\n+++ 1.3.0\n@@ -1 +1 @@\n-x\n+y\n"

	out, err := r.Render("markdown")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"[settings schema](https://github.com/acme/widget/blob/def456/package.json)",
		"between `1.2.3` and `1.3.0`",
		"<summary>Added keys (1)</summary>",
		"<summary>Changed keys (1)</summary>",
		"Removed keys (1):\n - `b`",
		"<summary>All changes in `package.json`</summary>",
		"```diff",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown_Snippets(t *testing.T) {
	entries := []differ.Entry{
		{Kind: differ.KindAdded, Key: "server.trace", NewValue: map[string]interface{}{
			"type":        "string",
			"default":     "off",
			"description": "Trace level.\nSecond line.",
		}},
	}

	r := Assemble("v1", "v2", entries)

	out, err := r.Render("markdown")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"<summary>New settings</summary>",
		"// Trace level.",
		"// Second line.",
		"\"server.trace\": \"off\",",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Snippet output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown_NoSnippetWithoutDefault(t *testing.T) {
	entries := []differ.Entry{
		{Kind: differ.KindAdded, Key: "a", NewValue: map[string]interface{}{"type": "string"}},
	}

	out, err := Assemble("v1", "v2", entries).Render("markdown")
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(out, "<summary>New settings</summary>") {
		t.Error("Snippet section rendered for definition without default/description")
	}
}

func TestRenderJSON(t *testing.T) {
	r := Assemble("1.2.3", "1.3.0", sampleEntries())

	out, err := r.Render("json")
	if err != nil {
		t.Fatal(err)
	}

	var decoded Report
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("JSON output does not decode: %v", err)
	}
	if decoded.BaseVersion != "1.2.3" || !decoded.HasChanges {
		t.Errorf("JSON round trip lost fields: %+v", decoded)
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := Assemble("a", "b", nil).Render("yaml")
	if err == nil {
		t.Error("Expected error for unsupported format")
	}
}
