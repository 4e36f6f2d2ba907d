package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const VerificationSubject = "Mystery Message | Verification Code"

var verificationHTML = htmltemplate.Must(htmltemplate.New("verification_html").Parse(
	`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Verification Code</title></head>
<body>
<h2>Hello {{.Username}},</h2>
<p>Thank you for registering. Please use the following verification code to complete your registration:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px">{{.Code}}</p>
<p>If you did not request this code, please ignore this email.</p>
</body>
</html>`))

var verificationText = texttemplate.Must(texttemplate.New("verification_text").Parse(
	`Hello {{.Username}},

Thank you for registering. Please use the following verification code to complete your registration:

{{.Code}}

If you did not request this code, please ignore this email.
`))

// VerificationEmail builds the sign-up verification email
func VerificationEmail(to, username, code string) (Email, error) {
	data := struct {
		Username string
		Code     string
	}{username, code}

	var html, text bytes.Buffer
	if err := verificationHTML.Execute(&html, data); err != nil {
		return Email{}, fmt.Errorf("render verification html: %w", err)
	}
	if err := verificationText.Execute(&text, data); err != nil {
		return Email{}, fmt.Errorf("render verification text: %w", err)
	}

	return Email{
		To:      to,
		Subject: VerificationSubject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
