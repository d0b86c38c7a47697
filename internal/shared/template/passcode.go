// Package template renders the emails sent by the service.
package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/shandysiswandi/passcode/internal/pkg/mail"
)

// PasscodeSubject is the subject line of the passcode email.
const PasscodeSubject = "Your Login Code"

//go:embed passcode.html passcode.txt
var files embed.FS

var (
	passcodeHTML = htmltemplate.Must(htmltemplate.ParseFS(files, "passcode.html"))
	passcodeText = texttemplate.Must(texttemplate.ParseFS(files, "passcode.txt"))
)

// PasscodeData fills the passcode email.
type PasscodeData struct {
	Email            string
	Code             string
	ExpiresInMinutes int
}

// PasscodeMessage renders the HTML and text bodies addressed to data.Email.
func PasscodeMessage(data PasscodeData) (mail.Message, error) {
	view := struct {
		Subject          string
		Code             string
		ExpiresInMinutes int
	}{PasscodeSubject, data.Code, data.ExpiresInMinutes}

	var html, text bytes.Buffer
	if err := passcodeHTML.Execute(&html, view); err != nil {
		return mail.Message{}, fmt.Errorf("template: render passcode html: %w", err)
	}
	if err := passcodeText.Execute(&text, view); err != nil {
		return mail.Message{}, fmt.Errorf("template: render passcode text: %w", err)
	}

	return mail.Message{
		To:       []string{data.Email},
		Subject:  PasscodeSubject,
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
