package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/easework/jobboard-api/internal/core/ports"
)

// EmailQueueKey is the list the external mail worker pops from.
const EmailQueueKey = "jobboard:queue:email"

// Outbox hands tasks to the mail worker by pushing their JSON envelope
// onto a Redis list.
type Outbox struct {
	client *redis.Client
	key    string
}

// NewOutbox creates an Outbox pushing to EmailQueueKey.
func NewOutbox(client *redis.Client) *Outbox {
	return &Outbox{client: client, key: EmailQueueKey}
}

// Run pushes task; it implements queue.TaskRunner.
func (o *Outbox) Run(ctx context.Context, task ports.Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode task %s: %w", task.Name, err)
	}
	if err := o.client.RPush(ctx, o.key, payload).Err(); err != nil {
		return fmt.Errorf("push task %s: %w", task.Name, err)
	}
	return nil
}
