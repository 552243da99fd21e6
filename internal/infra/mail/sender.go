package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/painel-crm/internal/usecase"
)

const defaultFrom = "nao-responda@painel.com.br"

var reportTemplate = template.Must(template.New("relatorio").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: Arial, sans-serif; color: #222">
  <h2>Follow-up de {{.Data}}</h2>
  <p>Total: <b>{{.Total}}</b> &middot; Enviados: <b>{{.Sucesso}}</b> &middot; Erros: <b>{{.Erro}}</b></p>
  <table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse">
    <tr style="background: #1A659E; color: #fff">
      <th>Dia</th><th>Total</th><th>Sucesso</th><th>Erro</th><th>Pendente</th>
    </tr>
    {{range .Dias}}{{if .Total}}
    <tr>
      <td>Dia {{.Dia}}</td><td>{{.Total}}</td><td>{{.Sucesso}}</td><td>{{.Erro}}</td><td>{{.Pendente}}</td>
    </tr>
    {{end}}{{end}}
  </table>
</body>
</html>`))

// EmailSender envia os relatórios diários por SMTP.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	if from == "" {
		from = defaultFrom
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func renderReport(rel usecase.RelatorioFollowUp) (string, error) {
	var body bytes.Buffer
	if err := reportTemplate.Execute(&body, rel); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailSender) SendFollowUpReport(to string, rel usecase.RelatorioFollowUp) error {
	body, err := renderReport(rel)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Relatório de follow-up %s 📊", rel.Data))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}
