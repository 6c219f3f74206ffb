package templates

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
)

// PasswordResetSubject is the subject line of the reset code email.
const PasswordResetSubject = "Your password reset code"

// PasswordResetCode renders the body of the one-time password reset email.
func PasswordResetCode(code string, ttl time.Duration) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html><body style="font-family:sans-serif">`+
				`<p>Use the code below to reset your password.</p>`+
				`<p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p>`+
				`<p>The code expires in %d minutes and can be used once. `+
				`If you did not request a reset, ignore this email.</p>`+
				`</body></html>`,
			templ.EscapeString(code), int(ttl.Minutes()),
		)
		return err
	})
}
