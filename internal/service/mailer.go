package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"time"

	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/logger"

	mail "github.com/wneessen/go-mail"
)

// Mailer delivers one message to one recipient. Broadcasts send per
// recipient so a bounced address is reported without aborting the run.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers mail through an SMTP relay, using implicit TLS when
// pointed at port 465 as the default Gmail relay requires
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	timeout  time.Duration
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer bound to the given relay and credentials
func NewSMTPMailer(host string, port int, username, password, from string, timeout time.Duration) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		timeout:  timeout,
	}
}

// Send composes a plain text message and pushes it through the relay
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.username == "" || m.password == "" {
		return apperrors.ErrMailCredentialsMissing
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTimeout(m.timeout),
	}
	if m.port == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMailConnectionFailure, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return classifySendError(err)
	}
	return nil
}

// classifySendError maps transport errors onto the mail error taxonomy.
// SMTP replies 534 and 535 are credential rejections, the rest of the dial
// and delivery failures split into timeouts and connection errors.
func classifySendError(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) && (tpErr.Code == 534 || tpErr.Code == 535) {
		return fmt.Errorf("%w: %v", apperrors.ErrMailAuthFailure, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", apperrors.ErrMailTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperrors.ErrMailTimeout, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrMailConnectionFailure, err)
}

// ConsoleMailer logs messages instead of delivering them. It backs
// development and test environments that have no SMTP relay.
type ConsoleMailer struct {
	log *logger.Logger
}

var _ Mailer = (*ConsoleMailer)(nil)

// NewConsoleMailer creates a mailer that writes to the application log
func NewConsoleMailer(log *logger.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

// Send records the message in the log and reports success
func (m *ConsoleMailer) Send(_ context.Context, to, subject, body string) error {
	m.log.WithFields(map[string]interface{}{
		"to":      to,
		"subject": subject,
		"size":    len(body),
	}).Info("mail suppressed, console mailer active")
	return nil
}
