// Package statussink is the reference Redis-backed implementation of
// enbacs's StatusSink and StatsSink collaborators: a thin wrapper around
// a *redis.Client plus HGetAll/HSet-keyed accessors for per-device status
// and stats hashes.
package statussink

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// statusKey and statsKey are the Redis hash keys backing each device,
// matching the "enb:status:<device>" / "enb:stats:<device>" shape
// SPEC_FULL.md's domain-stack table assigns this package.
func statusKey(device string) string { return fmt.Sprintf("enb:status:%s", device) }
func statsKey(device string) string  { return fmt.Sprintf("enb:stats:%s", device) }

// Client is a Redis-backed StatusSink and StatsSink.
type Client struct {
	redis *redis.Client
	ctx   context.Context
}

// NewClient builds a Client against a Redis server at addr.
func NewClient(addr string) *Client {
	return &Client{
		redis: redis.NewClient(&redis.Options{Addr: addr}),
		ctx:   context.Background(),
	}
}

// Connect verifies connectivity.
func (c *Client) Connect() error {
	return c.redis.Ping(c.ctx).Err()
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.redis.Close()
}

// PutStatus records the current state name for device, and an optional
// fault detail string (empty when the transition was not error-driven).
func (c *Client) PutStatus(device, state string, errDetail string) error {
	fields := map[string]interface{}{
		"state":      state,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if errDetail != "" {
		fields["error"] = errDetail
	} else {
		fields["error"] = ""
	}
	if err := c.redis.HSet(c.ctx, statusKey(device), fields).Err(); err != nil {
		return fmt.Errorf("writing status for %s: %w", device, err)
	}
	return nil
}

// GetStatus reads back the last-recorded state and fault detail for device.
// Returns ("", "", nil) if nothing has been recorded yet.
func (c *Client) GetStatus(device string) (state, errDetail string, err error) {
	vals, err := c.redis.HGetAll(c.ctx, statusKey(device)).Result()
	if err != nil {
		return "", "", fmt.Errorf("reading status for %s: %w", device, err)
	}
	return vals["state"], vals["error"], nil
}

// PutStats records a snapshot of eNodeB statistics for device, overwriting
// any previously recorded values with the same field names.
func (c *Client) PutStats(device string, stats map[string]interface{}) error {
	if len(stats) == 0 {
		return nil
	}
	if err := c.redis.HSet(c.ctx, statsKey(device), stats).Err(); err != nil {
		return fmt.Errorf("writing stats for %s: %w", device, err)
	}
	return nil
}

// ClearStats zeroes every counter recorded for device. Called exactly once
// per radio-stop edge per pkg/enbacs's WaitGetTransientParametersState.
func (c *Client) ClearStats(device string) error {
	if err := c.redis.Del(c.ctx, statsKey(device)).Err(); err != nil {
		return fmt.Errorf("clearing stats for %s: %w", device, err)
	}
	return nil
}

// GetStat reads back a single counter's current value. Returns 0 if unset.
func (c *Client) GetStat(device, counter string) (int64, error) {
	v, err := c.redis.HGet(c.ctx, statsKey(device), counter).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading stat %s for %s: %w", counter, device, err)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing stat %s for %s: %w", counter, device, err)
	}
	return n, nil
}
