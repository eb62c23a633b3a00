package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/events"
	"github.com/resolveit/complaint-sync/internal/normalize"
	"github.com/resolveit/complaint-sync/internal/remote"
)

const snapshotPrefix = "resolveit:snapshot:"

// Snapshot is the last working set fetched for an identity.
type Snapshot struct {
	TakenAt    time.Time
	Complaints []domain.Complaint
}

type storedSnapshot struct {
	TakenAt    time.Time                `json:"takenAt"`
	Complaints []remote.ComplaintRecord `json:"complaints"`
}

// SnapshotCache keeps each identity's last working set in Redis so a restarted
// gateway can serve views before its first fetch returns. Records are stored
// in wire form and re-normalized on load.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache returns nil when r is nil; a nil cache does nothing.
func NewSnapshotCache(r *Redis, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	if r == nil || r.Client == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCache{client: r.Client, ttl: ttl, logger: logger}
}

// SnapshotKey is the Redis key for an identity's snapshot.
func SnapshotKey(identity domain.Identity) string {
	return snapshotPrefix + string(identity.Role) + ":" + strings.ToLower(strings.TrimSpace(identity.Email))
}

// Save stores complaints for identity with the cache TTL.
func (c *SnapshotCache) Save(ctx context.Context, identity domain.Identity, complaints []domain.Complaint, takenAt time.Time) error {
	if c == nil {
		return nil
	}
	stored := storedSnapshot{TakenAt: takenAt.UTC(), Complaints: make([]remote.ComplaintRecord, 0, len(complaints))}
	for _, complaint := range complaints {
		stored.Complaints = append(stored.Complaints, normalize.Record(complaint))
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return c.client.Set(ctx, SnapshotKey(identity), payload, c.ttl).Err()
}

// Load returns identity's snapshot. ok is false when none is cached.
func (c *SnapshotCache) Load(ctx context.Context, identity domain.Identity) (Snapshot, bool, error) {
	if c == nil {
		return Snapshot{}, false, nil
	}
	payload, err := c.client.Get(ctx, SnapshotKey(identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	var stored storedSnapshot
	if err := json.Unmarshal(payload, &stored); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	complaints, rejected := normalize.Complaints(stored.Complaints)
	for _, rejectErr := range rejected {
		c.logger.Warn("dropping cached complaint", zap.Error(rejectErr))
	}
	return Snapshot{TakenAt: stored.TakenAt, Complaints: complaints}, true, nil
}

// Delete removes identity's snapshot.
func (c *SnapshotCache) Delete(ctx context.Context, identity domain.Identity) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, SnapshotKey(identity)).Err()
}

// Subscribe saves a fresh snapshot every time identity's working set is
// replaced by a fetch.
func (c *SnapshotCache) Subscribe(d events.Dispatcher, identity domain.Identity) {
	if c == nil || d == nil {
		return
	}
	d.Subscribe(events.EventComplaintsReplaced, func(ctx context.Context, e events.Event) error {
		payload, ok := e.Payload.(events.ComplaintsReplacedPayload)
		if !ok {
			return nil
		}
		if err := c.Save(ctx, identity, payload.Complaints, e.Timestamp); err != nil {
			c.logger.Warn("snapshot save failed", zap.String("email", identity.Email), zap.Error(err))
			return err
		}
		return nil
	})
}
