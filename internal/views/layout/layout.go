package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Base wraps page content with the shared document chrome.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="stylesheet" href="/assets/app.css">
</head>
<body>
<main id="content">`, templ.EscapeString(title)); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>
</body>
</html>`)
		return err
	})
}
