package entity

import "time"

// Cycle job states
const (
	JobQueued  = "queued"
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

// CycleJob tracks a notification cycle dispatched to the background workers
type CycleJob struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	Notified  bool      `json:"notified"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
