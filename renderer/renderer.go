package renderer

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// RenderAttribution renders the Attribution struct to a markdown string.
func RenderAttribution(a *Attribution) string {
	partials := map[string]string{
		"attribution_title":   "attribution_title.md",
		"attribution_summary": "attribution_summary.md",
		"attribution_table":   "attribution_table.md",
	}
	return renderTemplate("attribution", "attribution.md", partials, a)
}

// RenderAttributionSummary renders the headline block of the attribution
// report, leaving the component table out.
func RenderAttributionSummary(a *Attribution) string {
	return renderPartials(a, "attribution_title.md", "attribution_summary.md")
}

// renderPartials executes the given partials in order and concatenates their
// output, the way an assembly template does.
func renderPartials(data any, files ...string) string {
	var b strings.Builder
	for _, file := range files {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading template %q: %v", file, err)
		}
		tmpl, err := template.New(strings.TrimSuffix(file, ".md")).Parse(string(content))
		if err != nil {
			return fmt.Sprintf("error parsing template %q: %v", file, err)
		}
		if err := tmpl.Execute(&b, data); err != nil {
			return fmt.Sprintf("error executing template %q: %v", file, err)
		}
	}
	return b.String()
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
