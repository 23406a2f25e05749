package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
)

const (
	checkerCacheSize   = 1024 * 1024 // 1 MB, tokens and user ids are tiny
	checkerCacheExpire = 60          // seconds
)

// LoginChecker resolves session tokens against redis, with a small
// in-process cache in front so the hot path of every authenticated
// request does not hit redis each time.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	cache       *freecache.Cache
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		cache:       freecache.NewCache(checkerCacheSize),
	}
}

func (c *LoginChecker) SessionUserID(ctx context.Context, token string) (int, error) {
	if userIDBytes, err := c.cache.Get([]byte(token)); err == nil {
		userID, err := strconv.Atoi(string(userIDBytes))
		if err == nil {
			return userID, nil
		}
	}

	sessionKey := sessionKeyPrefix + token
	cmd := c.redisClient.HGetAll(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		return 0, err
	}

	fields := cmd.Val()
	if len(fields) == 0 {
		return 0, ErrNoSession
	}

	createdAtUnix, err := strconv.ParseInt(fields[sessionFieldCreatedAt], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse session created at: %w", err)
	}
	createdAt := time.Unix(createdAtUnix, 0)
	if time.Since(createdAt) > c.ttl {
		return 0, ErrNoSession
	}

	userID, err := strconv.Atoi(fields[sessionFieldUserID])
	if err != nil {
		return 0, fmt.Errorf("parse session user id: %w", err)
	}

	// cache set failures are fine, next check just goes to redis again
	_ = c.cache.Set([]byte(token), []byte(strconv.Itoa(userID)), checkerCacheExpire)

	return userID, nil
}
