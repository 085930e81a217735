package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

const welcomeText = `Hello {{.Name}},

Your {{.AppName}} account is ready. You can now sign in with your email address.

— the {{.AppName}} team
`

const welcomeHTML = `<html>
<body style="font-family: sans-serif; color: #333;">
  <p>Hello <strong>{{.Name}}</strong>,</p>
  <p>Your {{.AppName}} account is ready. You can now sign in with your email address.</p>
  <p>— the {{.AppName}} team</p>
</body>
</html>
`

var (
	welcomeTextTmpl = texttpl.Must(texttpl.New("welcome_text").Parse(welcomeText))
	welcomeHTMLTmpl = htmpl.Must(htmpl.New("welcome_html").Parse(welcomeHTML))
)

// RenderWelcome renders the welcome email for a freshly created account.
// Data keys: Name, AppName.
func RenderWelcome(data map[string]any) (subject, text, html string, err error) {
	appName := "our service"
	if v, ok := data["AppName"].(string); ok && v != "" {
		appName = v
	}
	subject = fmt.Sprintf("Welcome to %s", appName)

	var tb, hb bytes.Buffer
	if err = welcomeTextTmpl.Execute(&tb, data); err != nil {
		return "", "", "", err
	}
	if err = welcomeHTMLTmpl.Execute(&hb, data); err != nil {
		return "", "", "", err
	}
	return subject, tb.String(), hb.String(), nil
}
