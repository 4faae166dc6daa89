// Package email sends transactional e-mail through Resend. Bodies are
// rendered from HTML templates embedded in the binary.
package email

import (
	"context"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/config"
)

type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
}

// SendEmail renders templateName with data and sends the result to a
// single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("email_id", sent.Id).
		Str("template", string(templateName)).
		Msg("email sent")
	return nil
}
