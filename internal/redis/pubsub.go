package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionEventsPubSub broadcasts flow events (stage changes, scoring
// results) so external presentation consumers can follow a session
// without polling.
type SessionEventsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewSessionEventsPubSub(rdb *redis.Client) *SessionEventsPubSub {
	return &SessionEventsPubSub{
		rdb:     rdb,
		channel: ChannelSessionEvents(),
	}
}

// SessionEvent is the wire shape on the events channel.
type SessionEvent struct {
	Type      string `json:"type"` // "stage_changed" | "scored"
	SessionID string `json:"session_id"`
	Stage     string `json:"stage,omitempty"`
	Step      string `json:"step,omitempty"`
	RecordID  string `json:"record_id,omitempty"`
	Success   bool   `json:"success,omitempty"`
	TsUnix    int64  `json:"ts_unix"`
}

func (p *SessionEventsPubSub) PublishStageChanged(ctx context.Context, sessionID, stage, step string) error {
	return p.publish(ctx, SessionEvent{
		Type:      "stage_changed",
		SessionID: sessionID,
		Stage:     stage,
		Step:      step,
		TsUnix:    time.Now().Unix(),
	})
}

func (p *SessionEventsPubSub) PublishScored(ctx context.Context, sessionID, recordID string, success bool) error {
	return p.publish(ctx, SessionEvent{
		Type:      "scored",
		SessionID: sessionID,
		RecordID:  recordID,
		Success:   success,
		TsUnix:    time.Now().Unix(),
	})
}

func (p *SessionEventsPubSub) publish(ctx context.Context, ev SessionEvent) error {
	b, _ := json.Marshal(ev)
	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe delivers events to handler until ctx ends.
func (p *SessionEventsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, ev SessionEvent)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev SessionEvent
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.SessionID != "" {
				handler(ctx, ev)
			}
		}
	}
}
