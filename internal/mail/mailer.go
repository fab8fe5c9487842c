package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// 送信チャネルの約束。本番はSMTP、テストはモック。
type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// SMTPで送る実装。
type SMTPMailer struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

func NewSMTPMailer(host string, port string, from string, username string, password string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		from: from,
		auth: auth,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to string, subject string, body string) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(sb.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
