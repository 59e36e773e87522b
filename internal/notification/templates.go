package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	SubjectConfirmation = "Confirmação de Consulta - OdontoApp"
	SubjectUpdate       = "Atualização de Consulta - OdontoApp"
	SubjectCancellation = "Consulta Cancelada - OdontoApp"
	SubjectReminder     = "Lembrete de Consulta - OdontoApp"
	SubjectWelcome      = "Bem-vindo ao OdontoApp"
)

const layout = `{{define "layout"}}<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
  </head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1 style="color: #2c3e50;">{{.Title}}</h1>
      <p>Olá, {{.ClientName}}!</p>
      {{template "body" .}}
      <p>Atenciosamente,<br>Equipe OdontoApp</p>
    </div>
  </body>
</html>{{end}}
{{define "details"}}
      <div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
        <p><strong>Profissional:</strong> {{.ProfessionalName}}</p>
        <p><strong>Tratamento:</strong> {{.TreatmentName}}</p>
        <p><strong>Data e Hora:</strong> {{.When}}</p>
        {{if .StatusLabel}}<p><strong>Status:</strong> {{.StatusLabel}}</p>{{end}}
      </div>{{end}}`

var bodies = map[string]string{
	"confirmation": `{{define "body"}}
      <p>Sua consulta foi agendada com sucesso. Abaixo estão os detalhes:</p>
      {{template "details" .}}
      <p>Por favor, chegue com 15 minutos de antecedência.</p>
      <p>Se precisar remarcar ou cancelar sua consulta, entre em contato conosco.</p>{{end}}`,

	"update": `{{define "body"}}
      <p>Sua consulta foi {{.StatusLabel}}. Abaixo estão os detalhes atualizados:</p>
      {{template "details" .}}
      {{if .Scheduled}}<p>Por favor, chegue com 15 minutos de antecedência.</p>{{end}}
      <p>Se precisar de mais informações, entre em contato conosco.</p>{{end}}`,

	"cancellation": `{{define "body"}}
      <p>Sua consulta foi cancelada. Seguem os dados da consulta cancelada:</p>
      {{template "details" .}}
      <p>Para agendar um novo horário, acesse o OdontoApp ou entre em contato conosco.</p>{{end}}`,

	"reminder": `{{define "body"}}
      <p>Este é um lembrete da sua consulta agendada para amanhã.</p>
      {{template "details" .}}
      <p>Por favor, chegue com 15 minutos de antecedência.</p>{{end}}`,

	"welcome": `{{define "body"}}
      <p>Sua conta no OdontoApp foi criada com sucesso.</p>
      <p>Agora você pode agendar consultas e acompanhar seus tratamentos.</p>{{end}}`,
}

var templates = func() map[string]*template.Template {
	out := make(map[string]*template.Template, len(bodies))
	for name, body := range bodies {
		t := template.Must(template.New(name).Parse(layout))
		out[name] = template.Must(t.Parse(body))
	}
	return out
}()

// view is the data every template sees.
type view struct {
	Title            string
	ClientName       string
	ProfessionalName string
	TreatmentName    string
	When             string
	StatusLabel      string
	Scheduled        bool
}

func render(name string, v view) (string, error) {
	t, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
