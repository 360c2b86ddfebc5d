package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports/mocks"
	"github.com/bnema/yamcl/internal/ports/porttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type gatherHarness struct {
	engine   *GatherEngine
	producer *mocks.MockProducer
	clock    *porttest.ManualClock
	registry *NotificationRegistry
	root     string
}

func newGatherHarness(t *testing.T, settings domain.Settings, opts GatherOptions) *gatherHarness {
	t.Helper()

	repo := mocks.NewMockSettingsRepository(t)
	repo.EXPECT().Load(mockAnyContext()).Return(settings, nil)
	producer := mocks.NewMockProducer(t)
	clock := porttest.NewManualClock(testEpoch)
	registry := NewNotificationRegistry(nil, clock, NotificationRegistryOptions{})

	return &gatherHarness{
		engine:   NewGatherEngine(repo, producer, NewIconResolver(nil), registry, clock, opts),
		producer: producer,
		clock:    clock,
		registry: registry,
		root:     settings.TargetRootPath,
	}
}

func newRootedGatherHarness(t *testing.T, opts GatherOptions) *gatherHarness {
	t.Helper()

	return newGatherHarness(t, domain.Settings{TargetRootPath: t.TempDir()}, opts)
}

func (h *gatherHarness) expectStream() *porttest.Stream {
	stream := porttest.NewStream()
	h.producer.EXPECT().StartGather(mock.Anything, h.root).Return(stream, nil).Once()

	return stream
}

func (h *gatherHarness) waitForRetry(t *testing.T) {
	t.Helper()

	require.Eventually(t, func() bool { return h.clock.Pending() == 1 }, time.Second, time.Millisecond)
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return ctx
}

func played(name string, epochMillis int64) domain.GatherEvent {
	return domain.ItemDiscovered(domain.RawInstance{
		Name:            name,
		ID:              name + "-id",
		LastPlayedEpoch: epochMillis,
		Type:            domain.InstanceTypeMultiMC,
	})
}

func instanceNames(instances []domain.Instance) []string {
	names := make([]string, 0, len(instances))
	for _, instance := range instances {
		names = append(names, instance.Name)
	}

	return names
}

func TestGatherEngineSortsByLastPlayedDescending(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)

	stream.Send(played("A", 1_700_000_100_000))
	stream.Send(played("B", 1_700_000_300_000))
	stream.Send(played("C", 1_700_000_200_000))
	stream.Send(domain.GatherComplete(3))

	got, err := session.Wait(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, instanceNames(got))
	assert.Equal(t, got, h.engine.Published())

	notification, ok := h.registry.Get(GatherNotificationKey)
	require.True(t, ok)
	assert.Equal(t, domain.NotificationSuccess, notification.Status)
	assert.Equal(t, "Gathered 3 instances", notification.Message)
}

func TestGatherEngineReportsRunningCount(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)

	notification, ok := h.registry.Get(GatherNotificationKey)
	require.True(t, ok)
	assert.Equal(t, "Gathering instances...", notification.Message)

	stream.Send(played("A", 1))
	stream.Send(played("B", 2))
	require.Eventually(t, func() bool {
		notification, ok := h.registry.Get(GatherNotificationKey)
		return ok && notification.Message == "Gathering instances... 2 found"
	}, time.Second, time.Millisecond)

	notification, _ = h.registry.Get(GatherNotificationKey)
	assert.Equal(t, domain.NotificationRunning, notification.Status)

	stream.Send(domain.GatherComplete(2))
	_, err = session.Wait(testContext(t))
	require.NoError(t, err)
}

func TestGatherEngineUnknownLastPlayedSortsLastAndStable(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)

	stream.Send(played("never-1", 0))
	stream.Send(played("recent", 1_700_000_000_000))
	stream.Send(domain.ItemDiscovered(domain.RawInstance{Name: "string-date", LastPlayedString: "2023-01-02T03:04:05"}))
	stream.Send(played("never-2", 0))
	stream.Send(domain.GatherComplete(4))

	got, err := session.Wait(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"recent", "string-date", "never-1", "never-2"}, instanceNames(got))
	assert.Nil(t, got[2].LastPlayed)
}

func TestGatherEngineEmptyRootConverges(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)
	stream.Send(domain.GatherComplete(0))

	got, err := session.Wait(testContext(t))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGatherEngineRetriesEarlyCompletionAfterDelay(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)

	stream.Send(played("a", 1))
	stream.Send(played("b", 2))
	stream.Send(domain.GatherComplete(3))
	h.waitForRetry(t)

	h.clock.Advance(DefaultGatherRetryDelay - time.Millisecond)
	assert.Equal(t, 1, h.clock.Pending())
	select {
	case <-session.Done():
		t.Fatal("session converged before the retry delay elapsed")
	default:
	}

	stream.Send(played("c", 3))
	h.clock.Advance(time.Millisecond)

	got, err := session.Wait(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, instanceNames(got))
}

func TestGatherEngineRetryReusesExpectedCount(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)

	stream.Send(domain.GatherComplete(2))
	h.waitForRetry(t)

	stream.Send(played("a", 1))
	h.clock.Advance(DefaultGatherRetryDelay)
	h.waitForRetry(t)

	stream.Send(played("b", 2))
	h.clock.Advance(DefaultGatherRetryDelay)

	got, err := session.Wait(testContext(t))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGatherEngineCompletionBeforeItemsThenStreamClose(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)

	stream.Send(domain.GatherComplete(2))
	h.waitForRetry(t)
	stream.Send(played("a", 1))
	stream.Send(played("b", 2))
	require.NoError(t, stream.Close())
	h.clock.Advance(DefaultGatherRetryDelay)

	got, err := session.Wait(testContext(t))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGatherEngineIgnoresEventsAfterConvergence(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)

	stream.Send(played("a", 1))
	stream.Send(domain.GatherComplete(1))
	_, err = session.Wait(testContext(t))
	require.NoError(t, err)

	require.Eventually(t, stream.Closed, time.Second, time.Millisecond)
	assert.False(t, stream.Send(played("late", 2)))
	assert.False(t, stream.Send(domain.GatherComplete(2)))
	assert.Equal(t, []string{"a"}, instanceNames(h.engine.Published()))
}

func TestGatherEngineRetriesAreBounded(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{MaxRetries: 3})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)
	stream.Send(domain.GatherComplete(1))

	for range 3 {
		h.waitForRetry(t)
		h.clock.Advance(DefaultGatherRetryDelay)
	}

	_, err = session.Wait(testContext(t))
	require.ErrorIs(t, err, domain.ErrGatherNotConverged)
	assert.Empty(t, h.engine.Published())

	notification, ok := h.registry.Get(GatherNotificationKey)
	require.True(t, ok)
	assert.Equal(t, domain.NotificationError, notification.Status)
}

func TestGatherEngineStreamClosedWithoutCompletion(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	session, err := h.engine.Start(testContext(t))
	require.NoError(t, err)
	stream.Send(played("a", 1))
	require.NoError(t, stream.Close())

	_, err = session.Wait(testContext(t))
	require.ErrorIs(t, err, domain.ErrStreamClosed)
}

func TestGatherEngineNewSessionSupersedesOld(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	first := h.expectStream()
	second := h.expectStream()

	old, err := h.engine.Start(testContext(t))
	require.NoError(t, err)
	first.Send(played("stale", 1))
	first.Send(domain.GatherComplete(2))
	h.waitForRetry(t)

	current, err := h.engine.Start(testContext(t))
	require.NoError(t, err)
	assert.NotEqual(t, old.ID(), current.ID())

	_, err = old.Wait(testContext(t))
	require.ErrorIs(t, err, domain.ErrGatherSuperseded)
	require.Eventually(t, first.Closed, time.Second, time.Millisecond)
	assert.Equal(t, 0, h.clock.Pending(), "superseded retry timer must be stopped")

	second.Send(played("fresh", 1))
	second.Send(domain.GatherComplete(1))

	got, err := current.Wait(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, instanceNames(got))
	assert.Equal(t, []string{"fresh"}, instanceNames(h.engine.Published()))
}

func TestGatherEngineOnPublish(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	stream := h.expectStream()

	var received [][]domain.Instance
	h.engine.OnPublish(func(instances []domain.Instance) {
		received = append(received, instances)
	})

	stream.Send(played("a", 1))
	stream.Send(domain.GatherComplete(1))
	_, err := h.engine.Gather(testContext(t))
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, []string{"a"}, instanceNames(received[0]))
}

func TestGatherEngineResolvesIconsAgainstIconRoot(t *testing.T) {
	root := t.TempDir()
	h := newGatherHarness(t, domain.Settings{TargetRootPath: root, IconRootPath: "/icons"}, GatherOptions{})
	h.producer.EXPECT().UnlockIconCache(mockAnyContext(), "/icons").Return(errors.New("locked")).Once()
	stream := h.expectStream()

	stream.Send(domain.ItemDiscovered(domain.RawInstance{Name: "a", Icon: "foo.png"}))
	stream.Send(domain.ItemDiscovered(domain.RawInstance{Name: "b", Icon: "creeper"}))
	stream.Send(domain.GatherComplete(2))

	got, err := h.engine.Gather(testContext(t))
	require.NoError(t, err)
	icons := map[string]string{}
	for _, instance := range got {
		icons[instance.Name] = instance.Icon
	}
	assert.Equal(t, map[string]string{"a": "file:///icons/foo.png", "b": DefaultIcon}, icons)
}

func TestGatherEnginePreconditions(t *testing.T) {
	tests := []struct {
		name    string
		root    func(t *testing.T) string
		wantErr error
	}{
		{name: "unset", root: func(*testing.T) string { return "  " }, wantErr: domain.ErrTargetPathUnset},
		{name: "missing", root: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") }, wantErr: domain.ErrTargetPathMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newGatherHarness(t, domain.Settings{TargetRootPath: tt.root(t)}, GatherOptions{})

			session, err := h.engine.Start(testContext(t))
			require.Nil(t, session)
			require.ErrorIs(t, err, tt.wantErr)

			var perr *domain.PreconditionError
			require.ErrorAs(t, err, &perr)

			notification, ok := h.registry.Get(GatherNotificationKey)
			require.True(t, ok)
			assert.Equal(t, domain.NotificationError, notification.Status)

			h.clock.Advance(DefaultNotificationErrorTTL)
			_, ok = h.registry.Get(GatherNotificationKey)
			assert.False(t, ok)
		})
	}
}

func TestGatherEngineProducerStartFailure(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	startErr := errors.New("backend unavailable")
	h.producer.EXPECT().StartGather(mock.Anything, h.root).Return(nil, startErr).Once()

	_, err := h.engine.Start(testContext(t))
	require.ErrorIs(t, err, startErr)

	var perr *domain.ProducerError
	require.ErrorAs(t, err, &perr)
}

func TestGatherEngineCallerCancellation(t *testing.T) {
	h := newRootedGatherHarness(t, GatherOptions{})
	h.expectStream()

	ctx, cancel := context.WithCancel(context.Background())
	session, err := h.engine.Start(ctx)
	require.NoError(t, err)
	cancel()

	_, err = session.Wait(testContext(t))
	require.ErrorIs(t, err, context.Canceled)

	notification, ok := h.registry.Get(GatherNotificationKey)
	require.True(t, ok)
	assert.Equal(t, domain.NotificationError, notification.Status)
}
