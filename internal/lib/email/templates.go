package email

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"
)

// Template names an HTML file under templates/.
type Template string

const (
	TemplateWelcome Template = "welcome"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PreviewData holds sample values for every template, keyed by template
// name and then by template variable.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"Username": "jane",
		"Email":    "jane@example.com",
	},
}

// Render executes the named template with data.
func Render(name Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}
