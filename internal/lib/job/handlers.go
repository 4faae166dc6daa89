package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

var errNoRecipient = errors.New("welcome email has no recipient")

// handleWelcomeEmailTask delivers one welcome e-mail. Bad payloads are
// dropped; delivery failures go back to asynq for retry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decoding %s payload: %v: %w", TaskWelcome, err, asynq.SkipRetry)
	}
	if p.To == "" {
		return fmt.Errorf("%w: %w", errNoRecipient, asynq.SkipRetry)
	}

	retried, _ := asynq.GetRetryCount(ctx)
	log := j.logger.With().
		Str("task", TaskWelcome).
		Str("to", p.To).
		Int("retried", retried).
		Logger()

	if err := j.sender.SendWelcomeEmail(ctx, p.To, p.Username); err != nil {
		log.Error().Err(err).Msg("welcome email delivery failed")
		return err
	}

	log.Info().Msg("welcome email delivered")
	return nil
}
