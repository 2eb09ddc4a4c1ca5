package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"FlowTally/internal/config"
	"FlowTally/internal/model"
)

const summarySubject = "FlowTally run summary"

// EmailNotifier reports completed runs by email. It owns the rendering of
// the summary message; callers only hand it the finished report.
type EmailNotifier struct {
	cfg  config.SMTPConfig
	auth smtp.Auth
}

// NewEmailNotifier creates a new EmailNotifier.
func NewEmailNotifier(cfg config.SMTPConfig) model.Notifier {
	// PlainAuth will not send credentials until the server identifies itself as a trusted one.
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	return &EmailNotifier{cfg: cfg, auth: auth}
}

// SendRunSummary renders the run statistics of a report and mails them to
// the configured recipients.
func (n *EmailNotifier) SendRunSummary(report *model.Report) error {
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	recipients := strings.Split(n.cfg.To, ",")

	var msg strings.Builder
	fmt.Fprintf(&msg, "To: %s\r\n", n.cfg.To)
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&msg, "Subject: %s\r\n", summarySubject)
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(renderSummary(report))

	if err := smtp.SendMail(addr, n.auth, n.cfg.From, recipients, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// renderSummary formats the body of the run-summary email from the
// report's statistics and tally sizes.
func renderSummary(report *model.Report) string {
	var body strings.Builder
	body.WriteString("Flow log run complete.\r\n\r\n")
	fmt.Fprintf(&body, "Lines seen: %d\r\n", report.Stats.LinesSeen)
	fmt.Fprintf(&body, "Aggregated: %d\r\n", report.Stats.Aggregated)
	fmt.Fprintf(&body, "Skipped: %d\r\n", report.Stats.Skipped)
	fmt.Fprintf(&body, "Untagged: %d\r\n", report.Stats.Untagged)
	fmt.Fprintf(&body, "Distinct tags: %d\r\n", report.Tags.Len())
	fmt.Fprintf(&body, "Distinct port/protocol keys: %d\r\n", report.Ports.Len())
	return body.String()
}
