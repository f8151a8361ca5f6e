package highscore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// submitScript raises the stored score atomically so concurrent sessions
// never lower it.
var submitScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0') or 0
local score = tonumber(ARGV[1])
if score > cur then
	redis.call('SET', KEYS[1], ARGV[1])
	return score
end
return cur
`)

// RedisStore shares the best score between every server using the same Redis.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStore{client: client, key: Key}, nil
}

func (r *RedisStore) Load(ctx context.Context) (int, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", r.key, err)
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrCorrupt, raw)
	}
	return score, nil
}

func (r *RedisStore) Submit(ctx context.Context, score int) (int, error) {
	best, err := submitScript.Run(ctx, r.client, []string{r.key}, score).Int()
	if err != nil {
		return 0, fmt.Errorf("submit %s: %w", r.key, err)
	}
	return best, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
