package email

import (
	"strings"
	"testing"
)

func TestRenderPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)
			if err != nil {
				t.Fatal(err)
			}
			for _, v := range data {
				if !strings.Contains(html, v) {
					t.Errorf("rendered %s is missing %q", name, v)
				}
			}
		})
	}
}

func TestRenderEscapesInput(t *testing.T) {
	html, err := Render(TemplateWelcome, map[string]string{"Username": "<script>x</script>", "Email": "a@b.c"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("username was not escaped")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render("missing", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}
