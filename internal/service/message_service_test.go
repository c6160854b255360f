package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee_messaging/internal/db/dbtest"
	"employee_messaging/internal/domain"
	"employee_messaging/internal/repository"
	"employee_messaging/internal/utils/cachetest"
)

type messageFixture struct {
	svc      *MessageService
	repo     *repository.MessageRepository
	cache    *cachetest.Memory
	managerA *domain.User
	managerB *domain.User
	employee *domain.User
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	gdb := dbtest.Open(t)
	auth := NewAuthService(repository.NewUserRepository(gdb))
	register := func(username, role string) *domain.User {
		u, err := auth.Register(context.Background(), RegisterInput{
			Username: username, Email: username + "@test.com",
			Password: "secret1", ConfirmPassword: "secret1", Role: role,
		})
		require.NoError(t, err)
		return u
	}

	cache := cachetest.New()
	repo := repository.NewMessageRepository(gdb)
	return &messageFixture{
		svc:      NewMessageService(repo, cache, time.Minute),
		repo:     repo,
		cache:    cache,
		managerA: register("alice", "manager"),
		managerB: register("bob", "manager"),
		employee: register("erin", "employee"),
	}
}

func contents(msgs []domain.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Content
	}
	return out
}

func TestMessageService_Visibility(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	_, err := f.svc.Send(ctx, f.managerA, "Policy update")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, f.managerB, "Lunch at noon")
	require.NoError(t, err)

	sentA, err := f.svc.Sent(ctx, f.managerA)
	require.NoError(t, err)
	assert.Equal(t, []string{"Policy update"}, contents(sentA))

	sentB, err := f.svc.Sent(ctx, f.managerB)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lunch at noon"}, contents(sentB))

	all, err := f.svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Policy update", "Lunch at noon"}, contents(all))
	assert.Equal(t, "alice", all[0].Sender.Username)
}

func TestMessageService_EmptyContentAccepted(t *testing.T) {
	f := newMessageFixture(t)

	msg, err := f.svc.Send(context.Background(), f.managerA, "")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, "", msg.Content)
}

func TestMessageService_AllIsCachedPerLatestMessage(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	one, err := f.svc.Send(ctx, f.managerA, "one")
	require.NoError(t, err)

	all, err := f.svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, f.cache.Has(allMessagesKey(one.ID)))

	two, err := f.svc.Send(ctx, f.managerA, "two")
	require.NoError(t, err)
	assert.False(t, f.cache.Has(allMessagesKey(two.ID)))

	all, err = f.svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, contents(all))
	assert.True(t, f.cache.Has(allMessagesKey(two.ID)))
}

// pausingStore holds its first ListAll after the snapshot is read until resume is closed.
type pausingStore struct {
	*repository.MessageRepository
	once   sync.Once
	taken  chan struct{}
	resume chan struct{}
}

func (p *pausingStore) ListAll(ctx context.Context) ([]domain.Message, error) {
	msgs, err := p.MessageRepository.ListAll(ctx)
	p.once.Do(func() {
		close(p.taken)
		<-p.resume
	})
	return msgs, err
}

func TestMessageService_LateSnapshotDoesNotHideBroadcast(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	store := &pausingStore{MessageRepository: f.repo, taken: make(chan struct{}), resume: make(chan struct{})}
	svc := NewMessageService(store, f.cache, time.Minute)

	stale := make(chan []domain.Message, 1)
	go func() {
		msgs, _ := svc.All(ctx)
		stale <- msgs
	}()

	<-store.taken // Reader holds an empty snapshot
	_, err := svc.Send(ctx, f.managerA, "Policy update")
	require.NoError(t, err)
	close(store.resume) // Reader now caches its empty snapshot
	assert.Empty(t, <-stale)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Policy update"}, contents(all))
}

func TestMessageService_CacheOutageFallsBackToStore(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	f.cache.Err = errors.New("redis down")

	_, err := f.svc.Send(ctx, f.managerA, "still delivered")
	require.NoError(t, err)

	all, err := f.svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"still delivered"}, contents(all))
}

func TestMessageService_Respond(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	msg, err := f.svc.Send(ctx, f.managerA, "Policy update")
	require.NoError(t, err)

	err = f.svc.Respond(ctx, f.employee, msg.ID, "Got it")
	assert.ErrorIs(t, err, domain.ErrResponsesUnsupported)

	err = f.svc.Respond(ctx, f.employee, msg.ID+100, "Got it")
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)

	// Nothing about the message changes.
	all, err := f.svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Policy update"}, contents(all))
}
