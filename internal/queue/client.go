package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/nikhilbhutani/fluencyscore/internal/config"
	"github.com/nikhilbhutani/fluencyscore/internal/models"
)

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueAttemptRecord schedules an attempt for persistence. The attempt ID
// doubles as the task ID so a retried request cannot enqueue it twice.
func (c *Client) EnqueueAttemptRecord(a *models.Attempt) error {
	task, err := NewAttemptRecordTask(a)
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task,
		asynq.TaskID(a.ID.String()),
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeAttemptRecord, err)
	}
	return nil
}

// NewAttemptRecordTask wraps an attempt into an asynq task.
func NewAttemptRecordTask(a *models.Attempt) (*asynq.Task, error) {
	data, err := json.Marshal(AttemptRecordPayload{Attempt: *a})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(TypeAttemptRecord, data), nil
}
