package live

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/redis/go-redis/v9"
)

// RedisPublisher appends every notification to a per-match Redis stream
// and keeps the latest scoreline under a key with a TTL.
type RedisPublisher struct {
	client       *redis.Client
	streamPrefix string
	scoreTTL     time.Duration
}

// NewRedisPublisher connects to redisURL and checks the connection.
func NewRedisPublisher(redisURL, streamPrefix string, scoreTTL time.Duration) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisPublisher{client: client, streamPrefix: streamPrefix, scoreTTL: scoreTTL}, nil
}

// StreamName is the stream a match's notifications are appended to.
func (p *RedisPublisher) StreamName(matchID uint) string {
	return fmt.Sprintf("%s.%d", p.streamPrefix, matchID)
}

// ScoreKey holds the latest scoreline of a match.
func ScoreKey(matchID uint) string {
	return fmt.Sprintf("cricket:match:%d:score", matchID)
}

func (p *RedisPublisher) Notify(ctx context.Context, n match.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.StreamName(n.MatchID),
		Values: map[string]interface{}{
			"event":     n.Event,
			"data":      string(data),
			"timestamp": n.OccurredAt.Unix(),
		},
	}).Err(); err != nil {
		return fmt.Errorf("xadd: %w", err)
	}

	score, err := json.Marshal(ScorelineOf(n))
	if err != nil {
		return err
	}
	return p.client.Set(ctx, ScoreKey(n.MatchID), score, p.scoreTTL).Err()
}

// Scoreline reads the cached scoreline, returning nil when none is cached.
func (p *RedisPublisher) Scoreline(ctx context.Context, matchID uint) (*Scoreline, error) {
	raw, err := p.client.Get(ctx, ScoreKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sl Scoreline
	if err := json.Unmarshal(raw, &sl); err != nil {
		return nil, err
	}
	return &sl, nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
