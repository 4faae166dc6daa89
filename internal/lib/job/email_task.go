package job

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

const (
	TaskWelcome = "email:welcome"

	welcomeMaxRetry = 3
	welcomeTimeout  = 30 * time.Second

	// welcomeUniqueFor suppresses a second welcome task for the same
	// address while the first is still queued.
	welcomeUniqueFor = time.Hour
)

type WelcomeEmailPayload struct {
	To       string `json:"to"`
	Username string `json:"username"`
}

func NewWelcomeEmailTask(to, username string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to, Username: username})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskWelcome, payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(welcomeMaxRetry),
		asynq.Timeout(welcomeTimeout),
		asynq.Unique(welcomeUniqueFor),
	), nil
}
