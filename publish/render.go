package publish

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed base.html
var baseHTML string

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderHTML turns a notebook into a standalone HTML page: one section
// per markdown cell or code-cell output, richest mime type first. A cell
// tagged "toc" becomes the table-of-contents slot, filled in by the
// header pass.
func RenderHTML(nb *Notebook) (string, error) {
	var b strings.Builder
	b.WriteString(baseHTML)

	for _, cell := range nb.Cells {
		switch {
		case cell.HasTag("toc"):
			b.WriteString(`<section id="toc"></section>`)
		case cell.CellType == "markdown":
			html, err := renderMarkdown(string(cell.Source))
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "<section>%s</section>", html)
		case cell.CellType == "code":
			for _, output := range cell.Outputs {
				if err := renderOutput(&b, output); err != nil {
					return "", err
				}
			}
		}
	}

	return enrichHeaders(b.String())
}

func renderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

func renderOutput(w io.Writer, output Output) error {
	switch {
	case output.HasData("image/png"):
		data, _ := output.DataString("image/png")
		data = strings.TrimSpace(data)
		fmt.Fprintf(w, `<section class="bleed"><img src="data:image/png;base64,%s"></section>`, data)
	case output.HasData("text/markdown"):
		data, _ := output.DataString("text/markdown")
		html, err := renderMarkdown(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "<section>%s</section>", html)
	case output.HasData("text/html"):
		data, _ := output.DataString("text/html")
		fmt.Fprintf(w, "<section>%s</section>", data)
	case output.HasData("text/plain"):
		// Widget views also carry a text/plain repr we don't want.
		if output.HasData("application/vnd.jupyter.widget-view+json") {
			return nil
		}
		data, _ := output.DataString("text/plain")
		fmt.Fprintf(w, "<section><pre>%s</pre></section>", escapeText(data))
	}
	return nil
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// Publish reads a notebook and writes the rendered HTML.
func Publish(r io.Reader, w io.Writer) error {
	nb, err := Read(r)
	if err != nil {
		return err
	}
	html, err := RenderHTML(nb)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, html)
	return err
}
