package ports

import "time"

// Task names understood by the mail worker.
const (
	TaskWelcomeEmail         = "send_welcome_email"
	TaskEmployerWelcomeEmail = "send_employer_welcome_email"
	TaskJobApplicationEmail  = "send_job_application_email"
)

// Task is one unit of asynchronous work.
type Task struct {
	Name       string            `json:"task"`
	Args       map[string]string `json:"kwargs"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

// TaskQueue accepts tasks without waiting for them to run.
type TaskQueue interface {
	Enqueue(task Task)
}
