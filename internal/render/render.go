// Package render converts reply markdown into the form each surface needs: HTML for the web
// widget, ANSI for the terminal client. Only bot replies pass through here; user text is always
// rendered plain.
package render

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

// HTML renders reply markdown to HTML for the chat widget. Raw HTML in the source is not passed
// through, so reply markup stays limited to what markdown can express.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders reply markdown to ANSI-styled text at the given wrap width. On renderer
// failure the raw markdown is returned so the message is never lost.
func Terminal(markdown string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
