package application

import (
	"slices"
	"sync"
	"time"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports"
)

const (
	DefaultNotificationSuccessTTL = 2500 * time.Millisecond
	DefaultNotificationErrorTTL   = 10 * time.Second
)

type NotificationRegistryOptions struct {
	SuccessTTL time.Duration
	ErrorTTL   time.Duration
}

type notificationEntry struct {
	notification domain.Notification
	generation   uint64
	timer        ports.Timer
}

// NotificationRegistry holds transient status messages keyed by caller-chosen
// ids. Terminal entries expire on their own; every change republishes the
// whole list in key insertion order.
type NotificationRegistry struct {
	mu         sync.Mutex
	clock      ports.Clock
	publisher  ports.NotificationPublisher
	successTTL time.Duration
	errorTTL   time.Duration
	entries    map[string]*notificationEntry
	order      []string
	generation uint64
}

func NewNotificationRegistry(publisher ports.NotificationPublisher, clock ports.Clock, opts NotificationRegistryOptions) *NotificationRegistry {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if opts.SuccessTTL <= 0 {
		opts.SuccessTTL = DefaultNotificationSuccessTTL
	}
	if opts.ErrorTTL <= 0 {
		opts.ErrorTTL = DefaultNotificationErrorTTL
	}

	return &NotificationRegistry{
		clock:      clock,
		publisher:  publisher,
		successTTL: opts.SuccessTTL,
		errorTTL:   opts.ErrorTTL,
		entries:    map[string]*notificationEntry{},
	}
}

// Create sets the entry for key. Status defaults to running; a terminal
// status also arms expiry.
func (r *NotificationRegistry) Create(key, message string, status ...domain.NotificationStatus) {
	s := domain.NotificationRunning
	if len(status) > 0 && status[0].Valid() {
		s = status[0]
	}

	r.put(key, message, s, s.Terminal())
}

// Finish sets the entry for key and always arms expiry. Status defaults to success.
func (r *NotificationRegistry) Finish(key, message string, status ...domain.NotificationStatus) {
	s := domain.NotificationSuccess
	if len(status) > 0 && status[0].Valid() {
		s = status[0]
	}

	r.put(key, message, s, true)
}

func (r *NotificationRegistry) Get(key string) (domain.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return domain.Notification{}, false
	}

	return entry.notification, true
}

func (r *NotificationRegistry) List() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshotLocked()
}

// Close stops all pending expiry timers. Entries stay readable.
func (r *NotificationRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.timer != nil {
			entry.timer.Stop()
			entry.timer = nil
		}
	}
}

func (r *NotificationRegistry) put(key, message string, status domain.NotificationStatus, arm bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	generation := r.generation

	entry, ok := r.entries[key]
	if ok {
		if entry.timer != nil {
			entry.timer.Stop()
		}
	} else {
		entry = &notificationEntry{}
		r.entries[key] = entry
		r.order = append(r.order, key)
	}

	entry.notification = domain.Notification{
		Key:       key,
		Message:   message,
		Status:    status,
		CreatedAt: r.clock.Now(),
	}
	entry.generation = generation
	entry.timer = nil

	if arm {
		entry.timer = r.clock.AfterFunc(r.ttlFor(status), func() {
			r.expire(key, generation)
		})
	}

	r.publishLocked()
}

// expire removes key only if it still holds the entry that armed the timer.
func (r *NotificationRegistry) expire(key string, generation uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok || entry.generation != generation {
		return
	}

	delete(r.entries, key)
	if i := slices.Index(r.order, key); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}

	r.publishLocked()
}

func (r *NotificationRegistry) ttlFor(status domain.NotificationStatus) time.Duration {
	if status == domain.NotificationError {
		return r.errorTTL
	}

	return r.successTTL
}

func (r *NotificationRegistry) snapshotLocked() []domain.Notification {
	list := make([]domain.Notification, 0, len(r.order))
	for _, key := range r.order {
		list = append(list, r.entries[key].notification)
	}

	return list
}

func (r *NotificationRegistry) publishLocked() {
	if r.publisher == nil {
		return
	}

	r.publisher.Publish(r.snapshotLocked())
}
