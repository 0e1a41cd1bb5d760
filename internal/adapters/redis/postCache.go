package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	postPort "blogify/internal/ports/post"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "post:"

// genTTL outlives any single read, so a generation never resets under a
// reader that captured it.
const genTTL = 24 * time.Hour

var errStaleView = errors.New("post changed since the view was read")

// PostCacheRedis caches rendered post views as JSON strings. Each post also
// has a generation counter, bumped on every invalidation; a view is only
// written while the generation it was read under is still current.
type PostCacheRedis struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewPostCacheRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *PostCacheRedis {
	return &PostCacheRedis{
		Client: client,
		TTL:    ttl,
		Logger: logger,
	}
}

func viewKey(id string) string { return keyPrefix + id }

func genKey(id string) string { return keyPrefix + id + ":gen" }

// Get returns the cached view. On a miss it returns the generation to hand
// back to Set; a negative generation means the cache is unavailable.
func (c *PostCacheRedis) Get(ctx context.Context, id string) (*postPort.PostDTO, int64, bool) {
	vals, err := c.Client.MGet(ctx, viewKey(id), genKey(id)).Result()
	if err != nil {
		c.Logger.Warn("post cache read failed", zap.String("postID", id), zap.Error(err))
		return nil, -1, false
	}

	gen, err := parseGen(vals[1])
	if err != nil {
		c.Logger.Warn("post cache generation corrupt", zap.String("postID", id), zap.Error(err))
		return nil, -1, false
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, false
	}
	var dto postPort.PostDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		c.Logger.Warn("post cache entry corrupt", zap.String("postID", id), zap.Error(err))
		return nil, gen, false
	}
	return &dto, gen, true
}

// Set stores dto unless the post was invalidated after gen was read.
func (c *PostCacheRedis) Set(ctx context.Context, dto *postPort.PostDTO, gen int64) {
	if gen < 0 {
		return
	}
	payload, err := json.Marshal(dto)
	if err != nil {
		c.Logger.Warn("post cache encode failed", zap.String("postID", dto.ID), zap.Error(err))
		return
	}

	gk := genKey(dto.ID)
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, gk).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleView
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, viewKey(dto.ID), payload, c.TTL)
			return nil
		})
		return err
	}, gk)

	switch {
	case err == nil:
	case errors.Is(err, errStaleView), errors.Is(err, redis.TxFailedErr):
		c.Logger.Debug("post cache write skipped", zap.String("postID", dto.ID), zap.Error(err))
	default:
		c.Logger.Warn("post cache write failed", zap.String("postID", dto.ID), zap.Error(err))
	}
}

// Invalidate drops the view and bumps the generation so in-flight reads
// cannot write their older copy back.
func (c *PostCacheRedis) Invalidate(ctx context.Context, id string) {
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(id))
		pipe.Expire(ctx, genKey(id), genTTL)
		pipe.Del(ctx, viewKey(id))
		return nil
	})
	if err != nil {
		c.Logger.Warn("post cache invalidation failed", zap.String("postID", id), zap.Error(err))
	}
}

func parseGen(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
