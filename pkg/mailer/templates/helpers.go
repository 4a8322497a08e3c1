package templates

import (
	"time"

	"github.com/reciclaqui/backend/config"
)

// Option pattern
type Option func(*EmailData)

func WithName(name string) Option { return func(d *EmailData) { d.Name = name } }
func WithRole(role string) Option { return func(d *EmailData) { d.Role = role } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

// NewBaseEmailData fills common fields from config, then applies Options.
func NewBaseEmailData(cfg *config.Config, typ string, name, email, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: recipient,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		PrivacyURL:     cfg.PrivacyURL,
		UnsubscribeURL: cfg.UnsubscribeURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewWelcomeEmailData builds the template payload for the welcome email
// sent right after registration.
func NewWelcomeEmailData(cfg *config.Config, name, email, role string, opts ...Option) map[string]any {
	opts = append([]Option{WithRole(role), WithTime(time.Now())}, opts...)
	d := NewBaseEmailData(cfg, Welcome, name, email, email, opts...)
	return ToMap(d)
}
