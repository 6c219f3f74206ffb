package otp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// attemptScript bumps "attempts" inside the JSON record and keeps the
// remaining TTL. A missing key replies nil and is not created.
var attemptScript = redis.NewScript(`
local value = redis.call('GET', KEYS[1])
if not value then
	return false
end
local rec = cjson.decode(value)
rec.attempts = (tonumber(rec.attempts) or 0) + 1
local out = cjson.encode(rec)
local ttl = redis.call('PTTL', KEYS[1])
if ttl > 0 then
	redis.call('SET', KEYS[1], out, 'PX', ttl)
else
	redis.call('SET', KEYS[1], out)
end
return out
`)

// RedisClient is what RedisStore needs from a go-redis client.
type RedisClient interface {
	redis.Scripter
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps records as JSON values with a TTL matching ExpiresAt.
type RedisStore struct {
	client RedisClient
	now    func() time.Time
}

func NewRedisStore(client RedisClient) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (r *RedisStore) Put(ctx context.Context, key string, rec Record) error {
	ttl := rec.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		_, err := r.Delete(ctx, key)
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (r *RedisStore) Attempt(ctx context.Context, key string) (Record, error) {
	data, err := attemptScript.Run(ctx, r.client, []string{key}).Text()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, errors.Join(ErrStoreUnavailable, err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Delete relies on DEL returning the number of removed keys, so only one
// concurrent caller sees true.
func (r *RedisStore) Delete(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return n > 0, nil
}
