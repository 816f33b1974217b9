package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/models"
	"github.com/oakfield-primary/portal-api/pkg/config"
)

type fakeStorage struct {
	data    map[string]string
	deleted [][]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: make(map[string]string)}
}

func (f *fakeStorage) Get(_ context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeStorage) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeStorage) SetPair(_ context.Context, _ time.Duration, pairs map[string]string) error {
	for key, value := range pairs {
		f.data[key] = value
	}
	return nil
}

func (f *fakeStorage) TTL(_ context.Context, _ string) (time.Duration, error) {
	return time.Hour, nil
}

func (f *fakeStorage) Del(_ context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys)
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func newTestStore(secret string) *Store {
	cfg := config.SessionConfig{
		CookieName: "portal_session",
		Secret:     secret,
		TTL:        time.Hour,
	}
	return NewStore(nil, cfg, zap.NewNop())
}

func newFakeStore(fake *fakeStorage) *Store {
	cfg := config.SessionConfig{
		CookieName: "portal_session",
		Secret:     "test-secret",
		TTL:        time.Hour,
	}
	return &Store{
		storage: fake,
		cfg:     cfg,
		logger:  zap.NewNop(),
		cache:   make(map[string]*Session),
	}
}

func TestCookieRoundTrip(t *testing.T) {
	store := newTestStore("test-secret")

	signed, err := store.signCookie("abc-123")
	require.NoError(t, err)

	id, ok := store.parseCookie(signed)
	assert.True(t, ok)
	assert.Equal(t, "abc-123", id)
}

func TestParseCookieRejectsTamperedValue(t *testing.T) {
	store := newTestStore("test-secret")

	signed, err := store.signCookie("abc-123")
	require.NoError(t, err)

	_, ok := store.parseCookie(signed + "x")
	assert.False(t, ok)
}

func TestParseCookieRejectsWrongSecret(t *testing.T) {
	signer := newTestStore("secret-one")
	verifier := newTestStore("secret-two")

	signed, err := signer.signCookie("abc-123")
	require.NoError(t, err)

	_, ok := verifier.parseCookie(signed)
	assert.False(t, ok)
}

func TestParseCookieRejectsGarbage(t *testing.T) {
	store := newTestStore("test-secret")

	_, ok := store.parseCookie("not-a-jwt")
	assert.False(t, ok)

	_, ok = store.parseCookie("")
	assert.False(t, ok)
}

func TestHydrateLoadsStoredSession(t *testing.T) {
	fake := newFakeStorage()
	store := newFakeStore(fake)

	fake.data[tokenKey("sess-1")] = "upstream-token"
	fake.data[userKey("sess-1")] = `{"uid":"u1","email":"parent@example.com","role":"parent"}`

	cookie, err := store.signCookie("sess-1")
	require.NoError(t, err)

	sess, err := store.Hydrate(context.Background(), cookie)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "sess-1", sess.ID)
	assert.Equal(t, "upstream-token", sess.Token)
	assert.Equal(t, "u1", sess.User.UID)
}

func TestHydrateUnknownSessionIsSignedOut(t *testing.T) {
	fake := newFakeStorage()
	store := newFakeStore(fake)

	cookie, err := store.signCookie("sess-1")
	require.NoError(t, err)

	sess, err := store.Hydrate(context.Background(), cookie)
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Empty(t, fake.deleted)
}

func TestHydrateMissingUserKeyClearsSession(t *testing.T) {
	fake := newFakeStorage()
	store := newFakeStore(fake)

	fake.data[tokenKey("sess-1")] = "upstream-token"

	cookie, err := store.signCookie("sess-1")
	require.NoError(t, err)

	sess, err := store.Hydrate(context.Background(), cookie)
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.Len(t, fake.deleted, 1)
	assert.ElementsMatch(t, []string{tokenKey("sess-1"), userKey("sess-1")}, fake.deleted[0])
	assert.NotContains(t, fake.data, tokenKey("sess-1"))
}

func TestHydrateMalformedIdentityClearsSession(t *testing.T) {
	fake := newFakeStorage()
	store := newFakeStore(fake)

	fake.data[tokenKey("sess-1")] = "upstream-token"
	fake.data[userKey("sess-1")] = `{"uid":`

	cookie, err := store.signCookie("sess-1")
	require.NoError(t, err)

	sess, err := store.Hydrate(context.Background(), cookie)
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.Len(t, fake.deleted, 1)
	assert.ElementsMatch(t, []string{tokenKey("sess-1"), userKey("sess-1")}, fake.deleted[0])
	assert.NotContains(t, fake.data, tokenKey("sess-1"))
	assert.NotContains(t, fake.data, userKey("sess-1"))
}

func TestLoginThenHydrateAfterCacheMiss(t *testing.T) {
	fake := newFakeStorage()
	store := newFakeStore(fake)

	user := models.User{UID: "u1", Email: "parent@example.com", Role: models.RoleParent, ParentID: "p1"}
	id, cookie, err := store.Login(context.Background(), "upstream-token", user)
	require.NoError(t, err)

	// Force the storage path as a second instance behind the same redis would.
	store.mu.Lock()
	delete(store.cache, id)
	store.mu.Unlock()

	sess, err := store.Hydrate(context.Background(), cookie)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, id, sess.ID)
	assert.Equal(t, "upstream-token", sess.Token)
	assert.Equal(t, user, sess.User)
}

func TestMergeUserKeepsBaseForZeroFields(t *testing.T) {
	base := models.User{
		UID:         "u1",
		Email:       "old@example.com",
		FullName:    "Old Name",
		Role:        models.RoleParent,
		ParentID:    "p1",
		PhoneNumber: "555-0100",
	}

	merged := mergeUser(base, models.User{FullName: "New Name"})

	assert.Equal(t, "New Name", merged.FullName)
	assert.Equal(t, "old@example.com", merged.Email)
	assert.Equal(t, models.RoleParent, merged.Role)
	assert.Equal(t, "p1", merged.ParentID)
	assert.Equal(t, "555-0100", merged.PhoneNumber)
}
