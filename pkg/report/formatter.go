package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wonderfulspam/config-drift/pkg/differ"
)

// Render formats the report for display.
func (r *Report) Render(format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text", "":
		return r.renderText(), nil

	case "markdown":
		return r.renderMarkdown(), nil

	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, text, markdown)", format)
	}
}

func (r *Report) renderText() string {
	var buf bytes.Buffer

	buf.WriteString("Settings Comparison\n")
	buf.WriteString("===================\n\n")

	buf.WriteString("Versions:\n")
	buf.WriteString(fmt.Sprintf("  Base: %s\n", r.BaseVersion))
	buf.WriteString(fmt.Sprintf("  Head: %s\n\n", r.HeadVersion))

	if !r.HasChanges {
		buf.WriteString(r.noChangesLine() + "\n")
		return buf.String()
	}

	buf.WriteString(fmt.Sprintf("Summary: %s\n\n", r.Summary))

	if len(r.Added) > 0 {
		buf.WriteString("Added:\n")
		buf.WriteString("------\n")
		for _, entry := range r.Added {
			buf.WriteString(fmt.Sprintf("  + %s: %s\n", entry.Key, compactJSON(entry.NewValue)))
		}
		buf.WriteString("\n")
	}

	if len(r.Removed) > 0 {
		buf.WriteString("Removed:\n")
		buf.WriteString("--------\n")
		for _, entry := range r.Removed {
			buf.WriteString(fmt.Sprintf("  - %s: %s\n", entry.Key, compactJSON(entry.OldValue)))
		}
		buf.WriteString("\n")
	}

	if len(r.Changed) > 0 {
		buf.WriteString("Changed:\n")
		buf.WriteString("--------\n")
		for _, entry := range r.Changed {
			buf.WriteString(fmt.Sprintf("  ~ %s:\n", entry.Key))
			buf.WriteString(fmt.Sprintf("      old: %s\n", compactJSON(entry.OldValue)))
			buf.WriteString(fmt.Sprintf("      new: %s\n", compactJSON(entry.NewValue)))
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// renderMarkdown produces the review-comment form of the report:
// a header paragraph, collapsible sections per diff group and, when
// available, the raw unified diff of the configuration file.
func (r *Report) renderMarkdown() string {
	sections := []string{r.markdownHeader()}

	if !r.HasChanges {
		sections = append(sections, r.noChangesLine())
		if section := r.rawDiffSection(); section != "" {
			sections = append(sections, section)
		}
		return strings.Join(sections, "\n\n")
	}

	if len(r.Added) > 0 {
		sections = append(sections, collapsible(
			fmt.Sprintf("Added keys (%d)", len(r.Added)),
			codeBlock("json", entriesJSON(r.Added))))
		if snippet := settingsSnippet(r.Added); snippet != "" {
			sections = append(sections, collapsible("New settings", snippet))
		}
	}

	if len(r.Changed) > 0 {
		sections = append(sections, collapsible(
			fmt.Sprintf("Changed keys (%d)", len(r.Changed)),
			codeBlock("json", entriesJSON(r.Changed))))
		if snippet := settingsSnippet(r.Changed); snippet != "" {
			sections = append(sections, collapsible("Changed settings", snippet))
		}
	}

	if len(r.Removed) > 0 {
		lines := make([]string, 0, len(r.Removed))
		for _, entry := range r.Removed {
			lines = append(lines, fmt.Sprintf(" - `%s`", entry.Key))
		}
		sections = append(sections, fmt.Sprintf("Removed keys (%d):\n%s", len(r.Removed), strings.Join(lines, "\n")))
	}

	if section := r.rawDiffSection(); section != "" {
		sections = append(sections, section)
	}

	return strings.Join(sections, "\n\n")
}

func (r *Report) rawDiffSection() string {
	if r.RawDiff == "" {
		return ""
	}

	label := "the configuration file"
	if r.ConfigPath != "" {
		label = fmt.Sprintf("`%s`", r.ConfigPath)
	}

	return collapsible(
		fmt.Sprintf("All changes in %s", label),
		codeBlock("diff", strings.TrimRight(r.RawDiff, "\n")))
}

func (r *Report) markdownHeader() string {
	schema := "settings schema"
	if url := r.SchemaURL(); url != "" {
		schema = fmt.Sprintf("[settings schema](%s)", url)
	}

	return fmt.Sprintf("Following are the %s changes between `%s` and `%s`.",
		schema, r.BaseVersion, r.HeadVersion)
}

// settingsSnippet renders ready-to-paste settings entries for definitions
// that declare a default and a description. Entries without those members
// are skipped; an empty string means no entry qualified.
func settingsSnippet(entries []differ.Entry) string {
	snippets := []string{}

	for _, entry := range entries {
		def, ok := entry.NewValue.(map[string]interface{})
		if !ok {
			continue
		}

		description, ok := def["markdownDescription"].(string)
		if !ok {
			description, ok = def["description"].(string)
		}
		defaultValue, hasDefault := def["default"]
		if !ok || !hasDefault {
			continue
		}

		commented := []string{}
		for _, line := range strings.Split(description, "\n") {
			commented = append(commented, strings.TrimRight("// "+line, " "))
		}

		snippets = append(snippets, fmt.Sprintf("%s\n%q: %s,",
			strings.Join(commented, "\n"), entry.Key, indentedJSON(defaultValue)))
	}

	if len(snippets) == 0 {
		return ""
	}

	return codeBlock("", strings.Join(snippets, "\n\n"))
}

// entriesJSON renders a diff group as a single JSON object keyed by
// setting name. For changed entries the new value is shown, matching
// what a reviewer needs to act on; old values appear in the raw diff.
func entriesJSON(entries []differ.Entry) string {
	values := map[string]interface{}{}
	for _, entry := range entries {
		values[entry.Key] = entry.NewValue
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", values)
	}
	return string(data)
}

func indentedJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func compactJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func collapsible(summary, contents string) string {
	return fmt.Sprintf("<details>\n\n<summary>%s</summary>\n\n%s\n\n</details>", summary, contents)
}

func codeBlock(language, contents string) string {
	return fmt.Sprintf("```%s\n%s\n```", language, contents)
}
