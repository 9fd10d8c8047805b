// Package email delivers the transactional mails sent by the contact and
// subscribe endpoints.
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"resty.dev/v3"

	"episolve/apperr"
)

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// DefaultTimeout bounds one delivery, dial included.
const DefaultTimeout = 30 * time.Second

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Timeout  time.Duration
}

type SMTPSender struct {
	host     string
	port     string
	user     string
	password string
	timeout  time.Duration
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	port := cfg.Port
	if port == "" {
		port = "587"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SMTPSender{
		host:     cfg.Host,
		port:     port,
		user:     cfg.User,
		password: cfg.Password,
		timeout:  timeout,
	}
}

// buildMessage renders msg as an RFC 5322 message. Addresses are
// re-serialized from their parsed form and the subject is Q-encoded, so
// no header value can carry a line break.
func buildMessage(msg Message) (from, to *mail.Address, raw []byte, err error) {
	from, err = mail.ParseAddress(msg.From)
	if err != nil {
		return nil, nil, nil, apperr.Integration(err, "parsing sender address "+msg.From)
	}
	to, err = mail.ParseAddress(msg.To)
	if err != nil {
		return nil, nil, nil, apperr.Integration(err, "parsing recipient address "+msg.To)
	}

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", from.String(), to.String(), mime.QEncoding.Encode("utf-8", msg.Subject), msg.HTML)
	return from, to, []byte(message), nil
}

// Send delivers msg in one SMTP session. The dial and the whole exchange
// share a deadline: the sender's timeout or ctx's deadline if sooner.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	from, to, message, err := buildMessage(msg)
	if err != nil {
		return err
	}
	if err := s.deliver(ctx, from.Address, to.Address, message); err != nil {
		return apperr.Integration(err, "sending email via smtp to "+to.Address)
	}
	return nil
}

func (s *SMTPSender) deliver(ctx context.Context, from, to string, message []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(s.host, s.port))
	if err != nil {
		return err
	}
	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}
	if s.user != "" {
		if err := c.Auth(smtp.PlainAuth("", s.user, s.password, s.host)); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

const resendURL = "https://api.resend.com"

// ResendSender posts messages to the Resend HTTP API.
type ResendSender struct {
	client *resty.Client
}

type ResendOption func(*resty.Client)

// WithBaseURL points the sender at another API host.
func WithBaseURL(url string) ResendOption {
	return func(c *resty.Client) { c.SetBaseURL(url) }
}

func NewResendSender(apiKey string, opts ...ResendOption) *ResendSender {
	client := resty.New().
		SetBaseURL(resendURL).
		SetAuthToken(apiKey).
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", "application/json")
	for _, opt := range opts {
		opt(client)
	}
	return &ResendSender{client: client}
}

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	var apiErr resendError
	res, err := s.client.R().
		SetContext(ctx).
		SetBody(resendEmail{From: msg.From, To: []string{msg.To}, Subject: msg.Subject, HTML: msg.HTML}).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		return apperr.Integration(err, "sending email via resend to "+msg.To)
	}
	if res.IsError() {
		detail := strings.TrimSpace(apiErr.Message)
		if detail == "" {
			detail = res.Status()
		}
		return apperr.Integration(fmt.Errorf("resend: %d %s", res.StatusCode(), detail), "sending email via resend to "+msg.To)
	}
	return nil
}

func (s *ResendSender) Close() error {
	return s.client.Close()
}
