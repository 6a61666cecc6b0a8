package announce

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	app "lineup/internal/application/queue/announce"
	"lineup/internal/shared/logger"
)

const announcementChannel = "lineup:queue:announcements"

// announcementMessage is the wire shape published for display boards.
type announcementMessage struct {
	Kind        string `json:"kind"`
	Priority    string `json:"priority"`
	TicketID    uint   `json:"ticket_id"`
	QueueNumber string `json:"queue_number"`
	CounterID   uint   `json:"counter_id"`
	CounterName string `json:"counter_name,omitempty"`
}

// RedisPublisher fans announcements out over redis pub/sub so every display
// board instance sees them regardless of which server handled the call.
type RedisPublisher struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisPublisher(client *redis.Client, log logger.Interface) *RedisPublisher {
	return &RedisPublisher{client: client, logger: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, a app.Announcement) error {
	msg := announcementMessage{
		Kind:        string(a.Kind),
		Priority:    a.Priority.String(),
		TicketID:    a.TicketID,
		QueueNumber: a.QueueNumber,
		CounterID:   a.CounterID,
		CounterName: a.CounterName,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal announcement: %w", err)
	}

	if err := p.client.Publish(ctx, announcementChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish announcement: %w", err)
	}
	return nil
}

// LogPublisher writes announcements to the log. Used in development when no
// redis instance is configured.
type LogPublisher struct {
	logger logger.Interface
}

func NewLogPublisher(log logger.Interface) *LogPublisher {
	return &LogPublisher{logger: log}
}

func (p *LogPublisher) Publish(ctx context.Context, a app.Announcement) error {
	p.logger.Infow("announcement",
		"kind", a.Kind,
		"queue_number", a.QueueNumber,
		"counter", a.CounterName,
	)
	return nil
}
