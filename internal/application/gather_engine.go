package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/logging"
	"github.com/bnema/yamcl/internal/ports"
	"github.com/google/uuid"
)

const (
	GatherNotificationKey = "gather"

	DefaultGatherRetryDelay = 50 * time.Millisecond
	DefaultGatherMaxRetries = 200
)

type GatherOptions struct {
	RetryDelay time.Duration
	MaxRetries int
}

// GatherEngine runs gather sessions against the producer. At most one
// session is active; starting a new one supersedes the previous.
type GatherEngine struct {
	settings      ports.SettingsRepository
	producer      ports.Producer
	icons         *IconResolver
	notifications *NotificationRegistry
	clock         ports.Clock
	retryDelay    time.Duration
	maxRetries    int

	mu          sync.Mutex
	active      *GatherSession
	published   []domain.Instance
	subscribers []func([]domain.Instance)
}

func NewGatherEngine(
	settings ports.SettingsRepository,
	producer ports.Producer,
	icons *IconResolver,
	notifications *NotificationRegistry,
	clock ports.Clock,
	opts GatherOptions,
) *GatherEngine {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultGatherRetryDelay
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultGatherMaxRetries
	}

	return &GatherEngine{
		settings:      settings,
		producer:      producer,
		icons:         icons,
		notifications: notifications,
		clock:         clock,
		retryDelay:    opts.RetryDelay,
		maxRetries:    opts.MaxRetries,
	}
}

// OnPublish registers fn to receive each converged instance list. fn runs on
// the session goroutine while the engine is locked and must not call back
// into the engine.
func (e *GatherEngine) OnPublish(fn func([]domain.Instance)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.subscribers = append(e.subscribers, fn)
}

// Published returns the last converged instance list.
func (e *GatherEngine) Published() []domain.Instance {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.published)
}

// Gather starts a session and waits for its result.
func (e *GatherEngine) Gather(ctx context.Context) ([]domain.Instance, error) {
	session, err := e.Start(ctx)
	if err != nil {
		return nil, err
	}

	return session.Wait(ctx)
}

func (e *GatherEngine) Start(ctx context.Context) (*GatherSession, error) {
	e.supersede()

	settings, err := e.settings.Load(ctx)
	if err != nil {
		err = fmt.Errorf("load settings: %w", err)
		e.notifications.Finish(GatherNotificationKey, fmt.Sprintf("Failed to gather instances: %s", err), domain.NotificationError)
		return nil, err
	}

	root, err := checkTargetRoot(settings.TargetRootPath)
	if err != nil {
		e.notifications.Finish(GatherNotificationKey, preconditionMessage(err), domain.NotificationError)
		return nil, err
	}

	log := logging.FromContext(ctx)
	iconRoot := strings.TrimSpace(settings.IconRootPath)
	if iconRoot != "" {
		if err := e.producer.UnlockIconCache(ctx, iconRoot); err != nil {
			log.Warn().Err(err).Str("path", iconRoot).Msg("unlock icon cache")
		}
	}

	e.notifications.Create(GatherNotificationKey, gatherProgressMessage(0))

	sessionCtx, cancel := context.WithCancelCause(ctx)
	stream, err := e.producer.StartGather(sessionCtx, root)
	if err != nil {
		cancel(err)
		err = &domain.ProducerError{Op: "start gather", Err: err}
		e.notifications.Finish(GatherNotificationKey, fmt.Sprintf("Failed to gather instances: %s", err), domain.NotificationError)
		return nil, err
	}

	session := &GatherSession{
		id:       uuid.NewString(),
		engine:   e,
		stream:   stream,
		iconRoot: iconRoot,
		ctx:      sessionCtx,
		cancel:   cancel,
		retries:  make(chan int),
		done:     make(chan struct{}),
	}

	e.mu.Lock()
	if e.active != nil {
		e.active.cancel(domain.ErrGatherSuperseded)
	}
	e.active = session
	e.mu.Unlock()

	log.Debug().Str("session", session.id).Str("root", root).Msg("gather started")
	go session.run()

	return session, nil
}

func (e *GatherEngine) supersede() {
	e.mu.Lock()
	prev := e.active
	e.active = nil
	e.mu.Unlock()

	if prev != nil {
		prev.cancel(domain.ErrGatherSuperseded)
	}
}

// publish stores and fans out a converged result if s is still the active
// session, and finishes the gather notification in the same critical section.
func (e *GatherEngine) publish(s *GatherSession, instances []domain.Instance) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != s {
		return false
	}

	e.published = instances
	for _, fn := range e.subscribers {
		fn(slices.Clone(instances))
	}
	e.notifications.Finish(GatherNotificationKey, fmt.Sprintf("Gathered %d instances", len(instances)))

	return true
}

// progress refreshes the running gather notification with the number of
// instances s has received so far.
func (e *GatherEngine) progress(s *GatherSession, found int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != s {
		return
	}

	e.notifications.Create(GatherNotificationKey, gatherProgressMessage(found))
}

func gatherProgressMessage(found int) string {
	if found == 0 {
		return "Gathering instances..."
	}
	return fmt.Sprintf("Gathering instances... %d found", found)
}

func (e *GatherEngine) fail(s *GatherSession, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != s {
		return
	}

	e.notifications.Finish(GatherNotificationKey, fmt.Sprintf("Failed to gather instances: %s", err), domain.NotificationError)
}

func checkTargetRoot(path string) (string, error) {
	root := strings.TrimSpace(path)
	if root == "" {
		return "", &domain.PreconditionError{Err: domain.ErrTargetPathUnset}
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", &domain.PreconditionError{Path: root, Err: domain.ErrTargetPathMissing}
	}

	return root, nil
}

func preconditionMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrTargetPathUnset):
		return "Instance directory path is unset! Set it with `yamcl settings set-root`."
	case errors.Is(err, domain.ErrTargetPathMissing):
		return fmt.Sprintf("Instance directory is missing: %s", err)
	default:
		return err.Error()
	}
}

// GatherSession is one run of the gather protocol. Its fields below the
// marker are owned by the run goroutine.
type GatherSession struct {
	id       string
	engine   *GatherEngine
	stream   ports.GatherStream
	iconRoot string
	ctx      context.Context
	cancel   context.CancelCauseFunc
	retries  chan int
	done     chan struct{}

	// run goroutine only
	events         <-chan domain.GatherEvent
	accumulated    []domain.Instance
	attempts       int
	pendingRetries int
	drained        bool
	timers         []ports.Timer

	// written before done is closed
	result []domain.Instance
	err    error
}

func (s *GatherSession) ID() string {
	return s.id
}

func (s *GatherSession) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session converges or fails, or ctx ends.
func (s *GatherSession) Wait(ctx context.Context) ([]domain.Instance, error) {
	select {
	case <-s.done:
		return slices.Clone(s.result), s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel stops the session without publishing.
func (s *GatherSession) Cancel() {
	s.cancel(context.Canceled)
}

func (s *GatherSession) run() {
	defer close(s.done)
	defer func() {
		for _, timer := range s.timers {
			timer.Stop()
		}
		s.cancel(nil)
		_ = s.stream.Close()
	}()

	s.events = s.stream.Events()
	for {
		select {
		case <-s.ctx.Done():
			s.end(nil, context.Cause(s.ctx))
			return

		case event, ok := <-s.events:
			if s.handle(event, ok) {
				return
			}

		case expected := <-s.retries:
			// Events already buffered were delivered before this retry fired.
			if s.drainBuffered() {
				return
			}
			s.pendingRetries--
			logging.FromContext(s.ctx).Debug().
				Str("session", s.id).
				Int("expected", expected).
				Int("have", len(s.accumulated)).
				Msg("retrying completion")
			if s.complete(expected) {
				return
			}
		}
	}
}

// handle processes one stream receive and reports whether the session has ended.
func (s *GatherSession) handle(event domain.GatherEvent, ok bool) bool {
	if !ok {
		s.events = nil
		s.drained = true
		if s.pendingRetries == 0 {
			s.end(nil, fmt.Errorf("%w: received %d instances", domain.ErrStreamClosed, len(s.accumulated)))
			return true
		}
		return false
	}

	switch event.Kind {
	case domain.GatherEventItem:
		s.accumulate(event.Instance)
	case domain.GatherEventComplete:
		return s.complete(event.Expected)
	default:
		logging.FromContext(s.ctx).Warn().Str("session", s.id).Str("kind", string(event.Kind)).Msg("ignoring unknown gather event")
	}

	return false
}

func (s *GatherSession) drainBuffered() bool {
	for s.events != nil {
		select {
		case event, ok := <-s.events:
			if s.handle(event, ok) {
				return true
			}
		default:
			return false
		}
	}

	return false
}

func (s *GatherSession) accumulate(raw domain.RawInstance) {
	s.accumulated = append(s.accumulated, domain.Instance{
		Name:          raw.Name,
		Icon:          s.engine.icons.Resolve(s.ctx, raw.Icon, s.iconRoot),
		Path:          raw.Path,
		MinecraftPath: raw.MinecraftPath,
		ID:            raw.ID,
		ReleaseID:     raw.ReleaseID,
		Modloader:     raw.Modloader,
		LastPlayed:    domain.NormalizeLastPlayed(raw.LastPlayedEpoch, raw.LastPlayedString),
		Type:          raw.Type,
	})
	s.engine.progress(s, len(s.accumulated))
}

// complete handles a completion for expected items and reports whether the
// session has ended.
func (s *GatherSession) complete(expected int) bool {
	if len(s.accumulated) == expected {
		sorted := slices.Clone(s.accumulated)
		sort.SliceStable(sorted, func(i, j int) bool {
			return domain.PlayedBefore(sorted[i], sorted[j])
		})
		s.end(sorted, nil)
		return true
	}

	if s.attempts >= s.engine.maxRetries {
		s.end(nil, fmt.Errorf("%w: have %d instances, expected %d after %d retries",
			domain.ErrGatherNotConverged, len(s.accumulated), expected, s.attempts))
		return true
	}

	if s.drained && s.pendingRetries == 0 {
		s.end(nil, fmt.Errorf("%w: have %d instances, expected %d",
			domain.ErrStreamClosed, len(s.accumulated), expected))
		return true
	}

	s.attempts++
	s.pendingRetries++
	s.timers = append(s.timers, s.engine.clock.AfterFunc(s.engine.retryDelay, func() {
		select {
		case s.retries <- expected:
		case <-s.ctx.Done():
		}
	}))

	return false
}

func (s *GatherSession) end(result []domain.Instance, err error) {
	if err == nil && !s.engine.publish(s, result) {
		err = domain.ErrGatherSuperseded
		result = nil
	}

	s.result, s.err = result, err
	if err == nil || errors.Is(err, domain.ErrGatherSuperseded) {
		return
	}

	s.engine.fail(s, err)
}
