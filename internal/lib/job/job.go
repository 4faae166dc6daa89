// Package job runs background work on Asynq, a Redis-backed task queue.
// The API process enqueues tasks through Client and the embedded worker
// server executes them.
package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/config"
	"github.com/deppfellow/placerate/internal/metrics"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// WelcomeSender delivers the welcome e-mail. *email.Client implements it.
type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, to, username string) error
}

type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	sender WelcomeSender
	logger *zerolog.Logger
}

// NewJobService builds the queue client and the worker server against
// cfg.Redis.Address. Handlers deliver e-mail through sender.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, sender WelcomeSender) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			QueueCritical: 6,
			QueueDefault:  3,
			QueueLow:      1,
		},
		Logger: &asynqLogger{logger: logger},
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		sender: sender,
		logger: logger,
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start launches the workers in the background and returns.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")
	return j.server.Start(j.mux())
}

// Stop waits for running tasks and closes the queue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// EnqueueWelcomeEmail queues the welcome e-mail of a new account.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, username string) error {
	task, err := NewWelcomeEmailTask(to, username)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		j.logger.Debug().Str("to", to).Msg("welcome email already queued")
		return nil
	}
	metrics.RecordJobEnqueue(TaskWelcome, err)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("welcome email enqueued")
	return nil
}

// asynqLogger routes the worker server's own logs through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
