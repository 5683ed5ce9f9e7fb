package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/shared/config"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// TicketNotifier e-mails the support inbox when a ticket is opened or changes status.
type TicketNotifier struct {
	sender        Sender
	fromAddress   string
	fromName      string
	notifyAddress string
	logger        logger.Interface
}

func NewTicketNotifier(cfg *config.EmailConfig, log logger.Interface) *TicketNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return NewTicketNotifierWithSender(dialer, cfg, log)
}

func NewTicketNotifierWithSender(sender Sender, cfg *config.EmailConfig, log logger.Interface) *TicketNotifier {
	return &TicketNotifier{
		sender:        sender,
		fromAddress:   cfg.FromAddress,
		fromName:      cfg.FromName,
		notifyAddress: cfg.NotifyAddress,
		logger:        log,
	}
}

func (n *TicketNotifier) Name() string {
	return "email-ticket-notifier"
}

// Handle ignores event types that do not warrant a notification.
func (n *TicketNotifier) Handle(ctx context.Context, event events.DomainEvent) error {
	var subject, plainBody, htmlBody string

	switch ev := event.(type) {
	case ticket.TicketCreatedEvent:
		subject = fmt.Sprintf("[Ticket #%d] New ticket: %s", ev.TicketID, ev.Title)
		plainBody = fmt.Sprintf("A new ticket was opened.\n\nTitle: %s\nCategory: %s\n", ev.Title, ev.Category)
		htmlBody = fmt.Sprintf(`<html><body>
<h2>New ticket #%d</h2>
<p><strong>Title:</strong> %s</p>
<p><strong>Category:</strong> %s</p>
</body></html>`, ev.TicketID, html.EscapeString(ev.Title), html.EscapeString(ev.Category))

	case ticket.TicketStatusChangedEvent:
		subject = fmt.Sprintf("[Ticket #%d] Status changed to %s", ev.TicketID, ev.NewStatus)
		plainBody = fmt.Sprintf("Ticket \"%s\" moved from %s to %s.\n", ev.Title, ev.OldStatus, ev.NewStatus)
		htmlBody = fmt.Sprintf(`<html><body>
<h2>Ticket #%d status changed</h2>
<p>%s moved from <strong>%s</strong> to <strong>%s</strong>.</p>
</body></html>`, ev.TicketID, html.EscapeString(ev.Title), ev.OldStatus, ev.NewStatus)

	default:
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return n.send(subject, htmlBody, plainBody)
}

func (n *TicketNotifier) send(subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.fromAddress, n.fromName)
	m.SetHeader("To", n.notifyAddress)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Debugw("ticket notification sent", "to", n.notifyAddress, "subject", subject)
	return nil
}
