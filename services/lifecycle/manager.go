// Package lifecycle tracks installed versions of the offline app shell and decides which one serves.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CacheStore is the cache operations the lifecycle needs.
type CacheStore interface {
	Install(ctx context.Context, cacheName string, manifest []string) error
	Names() ([]string, error)
	Delete(cacheName string) error
}

// Version is one installed build of the app shell.
type Version struct {
	ID          string    `json:"id"`
	CacheName   string    `json:"cacheName"`
	Manifest    []string  `json:"manifest"`
	InstalledAt time.Time `json:"installedAt"`
	ActivatedAt time.Time `json:"activatedAt,omitempty"`
}

// Manager holds the active version and at most one waiting version.
// A waiting version takes over on SkipWaiting or once no foreground client is attached.
type Manager struct {
	caches CacheStore
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	active  *Version
	waiting *Version
	clients map[string]struct{}
}

func NewManager(caches CacheStore, logger *zap.Logger) *Manager {
	return &Manager{
		caches:  caches,
		logger:  logger.Named("lifecycle"),
		now:     time.Now,
		clients: make(map[string]struct{}),
	}
}

// Restore adopts a cache committed by an earlier run as the active version, so the shell stays
// servable when the next install cannot reach the origin. cacheName is preferred; otherwise the
// last committed cache in name order is used. It does nothing once a version is active.
func (m *Manager) Restore(cacheName string) (Version, bool) {
	names, err := m.caches.Names()
	if err != nil {
		m.logger.Warn("listing caches failed", zap.Error(err))
		return Version{}, false
	}
	if len(names) == 0 {
		return Version{}, false
	}
	adopt := names[len(names)-1]
	for _, n := range names {
		if n == cacheName {
			adopt = n
			break
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return *m.active, false
	}
	now := m.now()
	m.active = &Version{
		ID:          uuid.NewString(),
		CacheName:   adopt,
		InstalledAt: now,
		ActivatedAt: now,
	}
	m.logger.Info("restored committed cache", zap.String("version", m.active.ID), zap.String("cache", adopt))
	return *m.active, true
}

// Install commits the manifest under cacheName. The new version activates immediately when nothing
// is active yet or no client is attached; otherwise it waits. A failed install leaves both the active and waiting versions as they were.
func (m *Manager) Install(ctx context.Context, cacheName string, manifest []string) (Version, error) {
	if err := m.caches.Install(ctx, cacheName, manifest); err != nil {
		return Version{}, err
	}

	v := &Version{
		ID:          uuid.NewString(),
		CacheName:   cacheName,
		Manifest:    append([]string(nil), manifest...),
		InstalledAt: m.now(),
	}

	m.mu.Lock()
	if m.active == nil || len(m.clients) == 0 {
		m.waiting = v
		m.activateLocked()
		out := *m.active
		m.mu.Unlock()
		m.cleanup(out.CacheName)
		return out, nil
	}
	m.waiting = v
	m.mu.Unlock()

	m.logger.Info("version installed and waiting", zap.String("version", v.ID), zap.String("cache", cacheName))
	return *v, nil
}

// SkipWaiting activates the waiting version now. Without a waiting version it does nothing.
func (m *Manager) SkipWaiting(_ context.Context) error {
	m.mu.Lock()
	if m.waiting == nil {
		m.mu.Unlock()
		return nil
	}
	m.activateLocked()
	cacheName := m.active.CacheName
	m.mu.Unlock()

	m.cleanup(cacheName)
	return nil
}

// ClientConnected attaches a foreground client and returns its id.
func (m *Manager) ClientConnected() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.clients[id] = struct{}{}
	m.mu.Unlock()
	return id
}

// ClientDisconnected detaches a client; the last one to leave lets a waiting version activate.
func (m *Manager) ClientDisconnected(id string) bool {
	m.mu.Lock()
	if _, ok := m.clients[id]; !ok {
		m.mu.Unlock()
		return false
	}
	delete(m.clients, id)
	if len(m.clients) > 0 || m.waiting == nil {
		m.mu.Unlock()
		return true
	}
	m.activateLocked()
	cacheName := m.active.CacheName
	m.mu.Unlock()

	m.cleanup(cacheName)
	return true
}

func (m *Manager) activateLocked() {
	v := m.waiting
	v.ActivatedAt = m.now()
	m.active = v
	m.waiting = nil
	m.logger.Info("version activated", zap.String("version", v.ID), zap.String("cache", v.CacheName))
}

// cleanup deletes every committed cache other than the active one.
func (m *Manager) cleanup(activeCache string) {
	names, err := m.caches.Names()
	if err != nil {
		m.logger.Warn("listing caches failed", zap.Error(err))
		return
	}

	m.mu.Lock()
	keep := map[string]bool{activeCache: true}
	if m.waiting != nil {
		keep[m.waiting.CacheName] = true
	}
	m.mu.Unlock()

	for _, name := range names {
		if keep[name] {
			continue
		}
		if err := m.caches.Delete(name); err != nil {
			m.logger.Warn("deleting old cache failed", zap.String("cache", name), zap.Error(err))
			continue
		}
		m.logger.Info("old cache deleted", zap.String("cache", name))
	}
}

func (m *Manager) Active() (Version, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Version{}, false
	}
	return *m.active, true
}

func (m *Manager) Waiting() (Version, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.waiting == nil {
		return Version{}, false
	}
	return *m.waiting, true
}

// ActiveCacheName is the cache requests are served from, or "" before the first activation.
func (m *Manager) ActiveCacheName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ""
	}
	return m.active.CacheName
}

func (m *Manager) Clients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}
