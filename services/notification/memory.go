package notification

import (
	"context"
	"sort"
	"sync"

	"vaxremind/models"
)

// MemorySurface keeps live notifications in process, keyed by tag.
type MemorySurface struct {
	mu    sync.Mutex
	live  map[string]models.DisplayedNotification
	shown int
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{live: make(map[string]models.DisplayedNotification)}
}

func (m *MemorySurface) Show(_ context.Context, n models.DisplayedNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live[n.Tag] = n
	m.shown++
	return nil
}

func (m *MemorySurface) Close(_ context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.live, tag)
	return nil
}

func (m *MemorySurface) Get(tag string) (models.DisplayedNotification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.live[tag]
	return n, ok
}

// Live returns the live notifications ordered by tag.
func (m *MemorySurface) Live() []models.DisplayedNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.DisplayedNotification, 0, len(m.live))
	for _, n := range m.live {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Shown counts every Show call, including replacements.
func (m *MemorySurface) Shown() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shown
}
