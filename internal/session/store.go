package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/models"
	"github.com/oakfield-primary/portal-api/pkg/config"
)

// Session is the hydrated state of one signed-in browser.
type Session struct {
	ID    string
	Token string
	User  models.User
}

// storage is the slice of redis the store actually issues. Get reports a
// missing key as redis.Nil, matching the client it wraps.
type storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	SetPair(ctx context.Context, ttl time.Duration, pairs map[string]string) error
	TTL(ctx context.Context, key string) (time.Duration, error)
	Del(ctx context.Context, keys ...string) error
}

// Store persists sessions in redis behind a small in-process cache. Token
// and identity live under separate keys so either can be refreshed
// independently; the session id travels in a signed cookie.
type Store struct {
	storage storage
	cfg     config.SessionConfig
	logger  *zap.Logger

	mu    sync.RWMutex
	cache map[string]*Session
}

func NewStore(client *redis.Client, cfg config.SessionConfig, logger *zap.Logger) *Store {
	return &Store{
		storage: redisStorage{client: client},
		cfg:     cfg,
		logger:  logger,
		cache:   make(map[string]*Session),
	}
}

// redisStorage adapts a go-redis client to the storage interface. SetPair
// writes both keys in one transaction so a session is never half-stored.
type redisStorage struct {
	client *redis.Client
}

func (r redisStorage) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r redisStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r redisStorage) SetPair(ctx context.Context, ttl time.Duration, pairs map[string]string) error {
	pipe := r.client.TxPipeline()
	for key, value := range pairs {
		pipe.Set(ctx, key, value, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r redisStorage) TTL(ctx context.Context, key string) (time.Duration, error) {
	return r.client.TTL(ctx, key).Result()
}

func (r redisStorage) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func tokenKey(id string) string { return fmt.Sprintf("portal:session:%s:token", id) }
func userKey(id string) string  { return fmt.Sprintf("portal:session:%s:user", id) }

// Login stores a fresh session and returns its id and the signed cookie value.
func (s *Store) Login(ctx context.Context, token string, user models.User) (string, string, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(user)
	if err != nil {
		return "", "", fmt.Errorf("marshal session user: %w", err)
	}
	pairs := map[string]string{
		tokenKey(id): token,
		userKey(id):  string(payload),
	}
	if err := s.storage.SetPair(ctx, s.cfg.TTL, pairs); err != nil {
		return "", "", fmt.Errorf("store session: %w", err)
	}

	s.mu.Lock()
	s.cache[id] = &Session{ID: id, Token: token, User: user}
	s.mu.Unlock()

	cookie, err := s.signCookie(id)
	if err != nil {
		return "", "", err
	}
	return id, cookie, nil
}

// Hydrate resolves a cookie value to a live session. Any cookie or storage
// anomaly resolves to signed out, never an error page; a stored identity
// blob that no longer unmarshals counts as absent and both keys are cleared.
func (s *Store) Hydrate(ctx context.Context, cookieValue string) (*Session, error) {
	id, ok := s.parseCookie(cookieValue)
	if !ok {
		return nil, nil
	}

	s.mu.RLock()
	cached, hit := s.cache[id]
	s.mu.RUnlock()
	if hit {
		return cached, nil
	}

	token, err := s.storage.Get(ctx, tokenKey(id))
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}
	payload, err := s.storage.Get(ctx, userKey(id))
	if err == redis.Nil {
		s.Logout(ctx, id)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		s.logger.Warn("discarding malformed session identity", zap.String("session_id", id))
		s.Logout(ctx, id)
		return nil, nil
	}

	sess := &Session{ID: id, Token: token, User: user}
	s.mu.Lock()
	s.cache[id] = sess
	s.mu.Unlock()
	return sess, nil
}

// UpdateUser merges non-zero fields into the stored identity and
// re-persists it, preserving the remaining TTL of the token key so both
// halves expire together.
func (s *Store) UpdateUser(ctx context.Context, id string, partial models.User) error {
	s.mu.RLock()
	cached := s.cache[id]
	s.mu.RUnlock()

	user := partial
	if cached != nil {
		user = mergeUser(cached.User, partial)
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	ttl, err := s.storage.TTL(ctx, tokenKey(id))
	if err != nil || ttl <= 0 {
		ttl = s.cfg.TTL
	}
	if err := s.storage.Set(ctx, userKey(id), string(payload), ttl); err != nil {
		return fmt.Errorf("store session user: %w", err)
	}

	s.mu.Lock()
	if cached != nil {
		s.cache[id] = &Session{ID: id, Token: cached.Token, User: user}
	}
	s.mu.Unlock()
	return nil
}

// Logout removes the session everywhere. Redis errors are logged, not
// returned: a failed cleanup must never block a sign-out.
func (s *Store) Logout(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()

	if err := s.storage.Del(ctx, tokenKey(id), userKey(id)); err != nil {
		s.logger.Warn("session cleanup failed", zap.String("session_id", id), zap.Error(err))
	}
}

func mergeUser(base, partial models.User) models.User {
	merged := base
	if partial.Email != "" {
		merged.Email = partial.Email
	}
	if partial.FullName != "" {
		merged.FullName = partial.FullName
	}
	if partial.Role != "" {
		merged.Role = partial.Role
	}
	if partial.ParentID != "" {
		merged.ParentID = partial.ParentID
	}
	if partial.PhoneNumber != "" {
		merged.PhoneNumber = partial.PhoneNumber
	}
	if partial.Address != "" {
		merged.Address = partial.Address
	}
	return merged
}

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *Store) signCookie(id string) (string, error) {
	now := time.Now()
	claims := cookieClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// parseCookie extracts the session id from a cookie value. Any parse or
// signature failure means no session.
func (s *Store) parseCookie(value string) (string, bool) {
	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", false
	}
	return claims.SessionID, true
}
