package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultPingInterval is how often a liveness ping is published.
const DefaultPingInterval = 120 * time.Second

// Publisher sends a payload to a topic without waiting for delivery.
type Publisher interface {
	Publish(topic string, payload string)
}

// Status publishes lock events for one node.
type Status struct {
	pub      Publisher
	clientID string
	now      func() time.Time
}

// NewStatus returns a Status publishing through pub.
func NewStatus(pub Publisher, clientID string) *Status {
	return &Status{pub: pub, clientID: clientID, now: time.Now}
}

// AccessTopic is where access events are published.
func AccessTopic(clientID string) string {
	return fmt.Sprintf("keylock/status/node/%s/access", clientID)
}

// PresenceTopic carries the retained "online" or "offline" state.
func PresenceTopic(clientID string) string {
	return fmt.Sprintf("keylock/status/node/%s/presence", clientID)
}

// PingTopic is where liveness pings are published.
func PingTopic(clientID string) string {
	return fmt.Sprintf("keylock/status/node/%s/ping", clientID)
}

type accessEvent struct {
	Event     string `json:"event"`
	Timestamp int64  `json:"timestamp"`
}

// Event publishes an access event such as "granted" or "locked".
func (s *Status) Event(name string) {
	b, err := json.Marshal(accessEvent{Event: name, Timestamp: s.now().Unix()})
	if err != nil {
		return
	}
	s.pub.Publish(AccessTopic(s.clientID), string(b))
}

// Ping publishes one liveness ping.
func (s *Status) Ping() {
	s.pub.Publish(PingTopic(s.clientID), `{"status":"ok"}`)
}

// RunPing publishes a ping every interval until ctx is done.
func (s *Status) RunPing(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPingInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Ping()
		}
	}
}
