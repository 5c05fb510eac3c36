package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ShowsPubSub fans show changes out to every API instance so each can drop
// its cached views. A nil *ShowsPubSub publishes nothing.
type ShowsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewShowsPubSub(rdb *redis.Client) *ShowsPubSub {
	if rdb == nil {
		return nil
	}

	return &ShowsPubSub{
		rdb:     rdb,
		channel: ChannelShowsChanged(),
	}
}

type showChangedMsg struct {
	Type   string `json:"type"`
	ShowID string `json:"show_id"`
	TsUnix int64  `json:"ts_unix"`
}

func encodeShowChanged(showID string, now time.Time) []byte {
	b, _ := json.Marshal(showChangedMsg{
		Type:   "show_changed",
		ShowID: showID,
		TsUnix: now.Unix(),
	})
	return b
}

func decodeShowChanged(payload string) (string, bool) {
	var msg showChangedMsg
	if err := json.Unmarshal([]byte(payload), &msg); err != nil || msg.ShowID == "" {
		return "", false
	}
	return msg.ShowID, true
}

func (p *ShowsPubSub) PublishShowChanged(ctx context.Context, showID string) error {
	if p == nil {
		return nil
	}

	return p.rdb.Publish(ctx, p.channel, encodeShowChanged(showID, time.Now())).Err()
}

// Subscribe calls handler for every show change until ctx is done.
func (p *ShowsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, showID string)) error {
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
			if showID, ok := decodeShowChanged(m.Payload); ok {
				handler(ctx, showID)
			}
		}
	}
}
