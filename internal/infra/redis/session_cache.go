package redis

import (
	"context"
	"encoding/json"
	"time"

	"scam-honeypot-agent/internal/domain/model"
)

// SessionCache mirrors post-ingest session snapshots into redis so dashboards
// and sibling instances can read assessments without touching the live store.
// Writes are best effort; the in-memory store stays authoritative.
type SessionCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewSessionCache(client RedisClient, ttl time.Duration) *SessionCache {
	return &SessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *SessionCache) StoreSnapshot(ctx context.Context, s *model.SessionState) error {
	key := "honeypot_session:" + s.ID
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl)
}

func (c *SessionCache) GetSnapshot(ctx context.Context, sessionID string) (*model.SessionState, error) {
	key := "honeypot_session:" + sessionID
	data, err := c.client.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var s model.SessionState
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *SessionCache) DeleteSnapshot(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, "honeypot_session:"+sessionID)
}
