package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"mutfago/internal/views/layout"
)

// Home renders the public landing page.
func Home() templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="hero">
<h1>mutfago</h1>
<p>Kileriniz, alışveriş listeleriniz ve tarifleriniz tek bir mutfakta.</p>
<p><a class="button" href="/login">Giriş Yap</a> <a class="button" href="/signup">Kayıt Ol</a></p>
</section>`)
		return err
	})
	return layout.Base("mutfago — mutfak yönetimi", content)
}
