// Package mail envia e-mails transacionais via SMTP usando gomail.
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/colhetron/separacao-api/internal/application/auth"
	"github.com/colhetron/separacao-api/pkg/config"
)

var _ auth.Mailer = (*GomailSender)(nil)

// GomailSender implementa auth.Mailer sobre um servidor SMTP.
type GomailSender struct {
	cfg config.SMTPConfig
}

// NewGomailSender constrói o remetente com a configuração SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// SendRecoveryCode envia o código de recuperação de senha para o endereço dado.
func (s *GomailSender) SendRecoveryCode(to, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Colhetron - Código de recuperação de senha")
	m.SetBody("text/html", fmt.Sprintf(`
		<p>Olá,</p>
		<p>Seu código de recuperação de senha é:</p>
		<p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p>
		<p>O código é válido por 15 minutos. Se você não solicitou a
		recuperação, ignore este e-mail.</p>`, code))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar e-mail de recuperação: %w", err)
	}
	return nil
}
