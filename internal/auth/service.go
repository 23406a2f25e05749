package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aiotex/weighttracker/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "wt-service-session||"
	tokensSetKey     = "wt-service-sessions"

	sessionFieldUserID    = "user_id"
	sessionFieldCreatedAt = "created_at"
)

type Session struct {
	Token     string
	UserID    int
	CreatedAt time.Time
}

type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login creates a new session token bound to the given user.
func (as *Service) Login(ctx context.Context, userID int, createdAt time.Time) (string, error) {
	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	cmdHSet := as.redisClient.HSet(ctx, sessionKey,
		sessionFieldUserID, userID,
		sessionFieldCreatedAt, createdAt.Unix(),
	)
	if err := cmdHSet.Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	cmdSAdd := as.redisClient.SAdd(ctx, tokensSetKey, token)
	if err := cmdSAdd.Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	session, err := as.session(ctx, token)
	if err != nil {
		return false, err
	}

	sessionKey := sessionKeyPrefix + token
	cmdDel := as.redisClient.Del(ctx, sessionKey)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}

	// remove token from the list of sessions
	cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, token)
	if err := cmdSRem.Err(); err != nil {
		return false, err
	}

	return session.UserID > 0, nil
}

func (as *Service) session(ctx context.Context, token string) (*Session, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := as.redisClient.HGetAll(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		return nil, err
	}

	fields := cmd.Val()
	if len(fields) == 0 {
		return nil, ErrNoSession
	}

	userID, err := strconv.Atoi(fields[sessionFieldUserID])
	if err != nil {
		return nil, fmt.Errorf("parse session user id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(fields[sessionFieldCreatedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse session created at: %w", err)
	}

	return &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Warnln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Warnf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		session, err := as.session(ctx, token)
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		sessionDuration := time.Since(session.CreatedAt)
		if sessionDuration > as.ttl {
			log.Warnf("=>\twill clean the session with token: %s", token)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		sessionKey := sessionKeyPrefix + token
		cmdDel := as.redisClient.Del(ctx, sessionKey)
		if err := cmdDel.Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}

		// remove token from the list of sessions
		cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, token)
		if err := cmdSRem.Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}
}
