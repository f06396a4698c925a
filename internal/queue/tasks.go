package queue

import "github.com/nikhilbhutani/fluencyscore/internal/models"

const (
	TypeAttemptRecord = "attempt:record"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

type AttemptRecordPayload struct {
	Attempt models.Attempt `json:"attempt"`
}
