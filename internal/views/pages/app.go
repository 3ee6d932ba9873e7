package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"mutfago/internal/views/layout"
)

// DraftIngredient is one parsed line of an imported recipe, shown for review
// before the user saves it.
type DraftIngredient struct {
	Name     string
	Quantity float64
	Unit     string
}

func appShell(userName string, inner templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<header class="app-header">
<span class="brand">mutfago</span>
<nav>
<a href="/app">Mutfağım</a>
<a href="/app/tools/recipe-import">Tarif İçe Aktar</a>
<a href="/logout">Çıkış</a>
</nav>
<span class="user">%s</span>
</header>
<section class="app-body">`, templ.EscapeString(userName)); err != nil {
			return err
		}
		if inner != nil {
			if err := inner.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// App renders the authenticated shell. The panels load their data from the
// JSON API over HTMX.
func App(userName string) templ.Component {
	inner := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="panels">
<div class="panel" id="pantry-panel"><h2>Kiler</h2></div>
<div class="panel" id="market-panel"><h2>Pazar Listesi</h2></div>
<div class="panel" id="recipes-panel"><h2>Tarifler</h2></div>
</div>`)
		return err
	})
	return layout.Base("Mutfağım — mutfago", appShell(userName, inner))
}

// RecipeImportPanel renders the import tool with an optional parsed draft.
func RecipeImportPanel(userName, message, errorMessage, title string, ingredients []DraftIngredient) templ.Component {
	inner := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if errorMessage != "" {
			if _, err := fmt.Fprintf(w, `<p class="form-message error">%s</p>`, templ.EscapeString(errorMessage)); err != nil {
				return err
			}
		}
		if message != "" {
			if _, err := fmt.Fprintf(w, `<p class="form-message">%s</p>`, templ.EscapeString(message)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<form hx-post="/app/tools/recipe-import" hx-target="#content" method="post" enctype="multipart/form-data" class="import-form">
<h1>Tarif İçe Aktar</h1>
<label>Tarif adı<input type="text" name="recipe_title"></label>
<label>PDF dosyası<input type="file" name="recipe_file" accept="application/pdf,text/plain"></label>
<label>veya metin yapıştır<textarea name="recipe_text" rows="8"></textarea></label>
<button type="submit">Çözümle</button>
</form>`); err != nil {
			return err
		}
		if len(ingredients) > 0 {
			if _, err := fmt.Fprintf(w, `<div class="import-draft"><h2>%s</h2><table><tr><th>Malzeme</th><th>Miktar</th><th>Birim</th></tr>`, templ.EscapeString(title)); err != nil {
				return err
			}
			for _, ing := range ingredients {
				if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%g</td><td>%s</td></tr>`,
					templ.EscapeString(ing.Name), ing.Quantity, templ.EscapeString(ing.Unit)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</table></div>`); err != nil {
				return err
			}
		}
		return nil
	})
	return layout.Base("Tarif İçe Aktar — mutfago", appShell(userName, inner))
}
