package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/sales-reporter/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// Envelope is the constructed message prior to sending.
type Envelope struct {
	From           string
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

// Dispatcher sends a report artifact by email. Exactly one send attempt per
// call; retries are the scheduler's business.
type Dispatcher interface {
	Send(ctx context.Context, env Envelope) error
}

type Settings struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
}

type dispatcher struct {
	settings Settings
}

func NewDispatcher(settings Settings) Dispatcher {
	return &dispatcher{settings: settings}
}

func (d *dispatcher) Send(ctx context.Context, env Envelope) error {
	logger := zerolog.Ctx(ctx)

	if !d.settings.Enabled {
		logger.Info().Msg("delivery disabled, skipping send")
		return nil
	}

	payload, err := os.ReadFile(env.AttachmentPath)
	if err != nil {
		return domain.Classify(domain.ErrAttachment,
			fmt.Errorf("failed to read report artifact: %w", err))
	}

	msg := mail.NewMsg()
	if err := msg.From(env.From); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", env.From, err)
	}
	if err := msg.To(env.To); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", env.To, err)
	}
	msg.Subject(env.Subject)
	msg.SetBodyString(mail.TypeTextPlain, env.Body)
	if err := msg.AttachReader(filepath.Base(env.AttachmentPath), bytes.NewReader(payload)); err != nil {
		return domain.Classify(domain.ErrAttachment,
			fmt.Errorf("failed to attach report artifact: %w", err))
	}

	client, err := mail.NewClient(d.settings.Host,
		mail.WithPort(d.settings.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(d.settings.Username),
		mail.WithPassword(d.settings.Password),
	)
	if err != nil {
		return domain.Classify(domain.ErrNetwork,
			fmt.Errorf("failed to configure mail client: %w", err))
	}

	logger.Info().
		Str("relay", fmt.Sprintf("%s:%d", d.settings.Host, d.settings.Port)).
		Str("recipient", env.To).
		Msg("sending report")

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return domain.Classify(classifySendErr(err),
			fmt.Errorf("failed to send report: %w", err))
	}
	return nil
}

// classifySendErr maps a go-mail failure onto the delivery error taxonomy.
// go-mail has no stable reason for every failure mode, so the SMTP 535 reply
// and auth markers in the chain are checked as a fallback.
func classifySendErr(err error) domain.ErrorKind {
	var sendErr *mail.SendError
	if errors.As(err, &sendErr) && sendErr.Reason == mail.ErrSMTPAuth {
		return domain.ErrAuthentication
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "535") || strings.Contains(msg, "auth") {
		return domain.ErrAuthentication
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.ErrNetwork
	}
	return domain.ErrNetwork
}
