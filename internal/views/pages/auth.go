package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"mutfago/internal/views/layout"
)

func loginForm(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message != "" {
			if _, err := fmt.Fprintf(w, `<p class="form-message">%s</p>`, templ.EscapeString(message)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<form hx-post="/login" hx-target="#content" method="post" class="auth-form">
<h1>Giriş Yap</h1>
<label>E-posta<input type="email" name="email" value="%s" required></label>
<label>Şifre<input type="password" name="password" required></label>
<button type="submit">Giriş</button>
<p><a href="/signup">Hesabın yok mu? Kayıt ol</a></p>
</form>`, templ.EscapeString(email))
		return err
	})
}

// Login renders the full sign-in page.
func Login(message, email string) templ.Component {
	return layout.Base("Giriş — mutfago", loginForm(message, email))
}

// LoginPartial renders only the form for HTMX swaps.
func LoginPartial(message, email string) templ.Component {
	return loginForm(message, email)
}

func signupForm(message, name, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message != "" {
			if _, err := fmt.Fprintf(w, `<p class="form-message">%s</p>`, templ.EscapeString(message)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<form hx-post="/signup" hx-target="#content" method="post" class="auth-form">
<h1>Kayıt Ol</h1>
<label>İsim<input type="text" name="name" value="%s" required></label>
<label>E-posta<input type="email" name="email" value="%s" required></label>
<label>Şifre<input type="password" name="password" minlength="6" required></label>
<button type="submit">Kayıt Ol</button>
<p><a href="/login">Zaten üye misin? Giriş yap</a></p>
</form>`, templ.EscapeString(name), templ.EscapeString(email))
		return err
	})
}

// Signup renders the full registration page.
func Signup(message, name, email string) templ.Component {
	return layout.Base("Kayıt — mutfago", signupForm(message, name, email))
}

// SignupPartial renders only the form for HTMX swaps.
func SignupPartial(message, name, email string) templ.Component {
	return signupForm(message, name, email)
}
