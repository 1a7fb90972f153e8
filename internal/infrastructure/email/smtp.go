package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"centrex/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	OpsAddress  string
}

// SMTPNotifier sends operational mail over SMTP. Sync failure mail is
// best effort: a delivery error is logged and swallowed so it can never
// change the outcome of a provisioning request.
type SMTPNotifier struct {
	config SMTPConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPNotifier(config SMTPConfig, logger logger.Interface) *SMTPNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPNotifier{
		config: config,
		dialer: dialer,
		logger: logger,
	}
}

// NotifySyncFailure alerts the operations mailbox that a provisioning
// change was saved locally but could not be pushed to the telephony
// control plane.
func (s *SMTPNotifier) NotifySyncFailure(merchantNumber, extensionCode, operation, reason string) {
	if s.config.OpsAddress == "" {
		return
	}

	subject := fmt.Sprintf("PBX sync failed: %s %s", operation, extensionCode)
	plainBody := fmt.Sprintf(`A provisioning change was saved locally but did not reach the PBX control plane.

Merchant:  %s
Extension: %s
Operation: %s
Reason:    %s

The local record is authoritative. Re-run the sync from the admin console once the control plane is reachable.
`, merchantNumber, extensionCode, operation, reason)

	if err := s.sendEmail(s.config.OpsAddress, subject, plainBody); err != nil {
		s.logger.Warn("failed to send sync failure mail",
			"merchant_number", merchantNumber,
			"extension_code", extensionCode,
			"error", err,
		)
	}
}

func (s *SMTPNotifier) sendEmail(to, subject, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
