// Package alerting emails the operator when a scan run degrades.
package alerting

import (
	"fmt"
	"strings"

	"github.com/MATrsx/freegameping/internal/config"
	"github.com/MATrsx/freegameping/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service sends plain-text operator alerts via SMTP. Disabled (a no-op)
// when no alert email is configured.
type Service struct {
	config *config.Config
}

// NewService creates the alerting service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// Enabled reports whether operator alerting is configured
func (s *Service) Enabled() bool {
	return s.config.AlertEmail != ""
}

// ScanDegraded sends a best-effort alert about a scan that finished with
// adapter errors or delivery failures. Failures to send are logged and
// swallowed; alerting must never affect the scan itself.
func (s *Service) ScanDegraded(rep *models.ScanReport) {
	if !s.Enabled() {
		return
	}

	subject := fmt.Sprintf("FreeGamePing scan %s degraded (%d adapter errors, %d delivery failures)",
		rep.RunID, rep.AdapterErrors, rep.DeliveryFails)

	if err := s.send(subject, buildScanBody(rep)); err != nil {
		logrus.Errorf("Failed to send scan alert email: %v", err)
		return
	}

	logrus.Infof("Sent scan alert email to %s", s.config.AlertEmail)
}

func buildScanBody(rep *models.ScanReport) string {
	var body strings.Builder

	body.WriteString(fmt.Sprintf("Scan %s (%s trigger) started %s\n", rep.RunID, rep.Trigger,
		rep.StartedAt.Format("2006-01-02 15:04:05 UTC")))
	body.WriteString(fmt.Sprintf("Duration: %v\n\n", rep.Duration))
	body.WriteString(fmt.Sprintf("Guilds scanned:    %d\n", rep.GuildsScanned))
	body.WriteString(fmt.Sprintf("Announced:         %d\n", rep.Announced))
	body.WriteString(fmt.Sprintf("Adapter errors:    %d\n", rep.AdapterErrors))
	body.WriteString(fmt.Sprintf("Delivery failures: %d\n", rep.DeliveryFails))

	if len(rep.PerStorefront) > 0 {
		body.WriteString("\nAnnouncements per storefront:\n")
		for _, sf := range models.AllStorefronts {
			if count, ok := rep.PerStorefront[sf]; ok {
				body.WriteString(fmt.Sprintf("  %-6s %d\n", sf, count))
			}
		}
	}

	return body.String()
}

func (s *Service) send(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.AlertEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
