// Package offline keeps a disk copy of the application shell so it can be served without network.
package offline

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	stagingPrefix = ".staging-"
	retiredPrefix = ".retired-"

	fetchConcurrency = 4
	memoryCacheSize  = 4 * 1024 * 1024
)

// Manager owns the committed caches under one directory, one sub-directory per cache name.
type Manager struct {
	dir     string
	fetcher Fetcher
	logger  *zap.Logger

	mu     sync.RWMutex
	stores map[string]*diskv.Diskv
}

func NewManager(dir string, fetcher Fetcher, logger *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("offline.NewManager: failed to create cache dir: %w", err)
	}
	return &Manager{
		dir:     dir,
		fetcher: fetcher,
		logger:  logger.Named("offline"),
		stores:  make(map[string]*diskv.Diskv),
	}, nil
}

func newStore(path string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     path,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: memoryCacheSize,
	})
}

func resourceKey(path string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(path))
}

func validName(name string) bool {
	return name != "" && !strings.HasPrefix(name, ".") && filepath.Base(name) == name
}

// Install fetches every manifest entry into a staging directory and swaps it in as a unit.
// On any failure nothing is committed and a previously committed cache of the same name stays servable.
func (m *Manager) Install(ctx context.Context, cacheName string, manifest []string) error {
	if !validName(cacheName) {
		return fmt.Errorf("%w: %q", ErrInvalidCacheName, cacheName)
	}

	staging := filepath.Join(m.dir, stagingPrefix+cacheName+"-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return &InstallError{Cache: cacheName, Err: err}
	}
	store := newStore(staging)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for _, path := range manifest {
		g.Go(func() error {
			res, err := m.fetcher.Fetch(gctx, path)
			if err != nil {
				return &InstallError{Cache: cacheName, Path: path, Err: err}
			}
			b, err := json.Marshal(Resource{Path: path, ContentType: res.ContentType, Body: res.Body})
			if err != nil {
				return &InstallError{Cache: cacheName, Path: path, Err: err}
			}
			if err := store.Write(resourceKey(path), b); err != nil {
				return &InstallError{Cache: cacheName, Path: path, Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_ = os.RemoveAll(staging)
		m.logger.Warn("cache install failed", zap.String("cache", cacheName), zap.Error(err))
		return err
	}

	if err := m.commit(cacheName, staging); err != nil {
		_ = os.RemoveAll(staging)
		return &InstallError{Cache: cacheName, Err: err}
	}
	m.logger.Info("cache installed", zap.String("cache", cacheName), zap.Int("resources", len(manifest)))
	return nil
}

func (m *Manager) commit(cacheName, staging string) error {
	target := filepath.Join(m.dir, cacheName)
	retired := ""

	m.mu.Lock()
	if _, err := os.Stat(target); err == nil {
		retired = filepath.Join(m.dir, retiredPrefix+cacheName+"-"+uuid.NewString())
		if err := os.Rename(target, retired); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("retiring previous cache: %w", err)
		}
	}
	if err := os.Rename(staging, target); err != nil {
		if retired != "" {
			_ = os.Rename(retired, target)
		}
		m.mu.Unlock()
		return fmt.Errorf("committing staged cache: %w", err)
	}
	delete(m.stores, cacheName)
	m.mu.Unlock()

	if retired != "" {
		if err := os.RemoveAll(retired); err != nil {
			m.logger.Warn("failed to remove retired cache", zap.String("path", retired), zap.Error(err))
		}
	}
	return nil
}

// committed returns the store for a committed cache, or nil when the cache does not exist.
func (m *Manager) committed(cacheName string) *diskv.Diskv {
	if !validName(cacheName) {
		return nil
	}
	m.mu.RLock()
	store, ok := m.stores[cacheName]
	m.mu.RUnlock()
	if ok {
		return store
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[cacheName]; ok {
		return store
	}
	path := filepath.Join(m.dir, cacheName)
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return nil
	}
	store = newStore(path)
	m.stores[cacheName] = store
	return store
}

// Lookup reads a resource from a committed cache only.
func (m *Manager) Lookup(cacheName, path string) (*Resource, bool) {
	store := m.committed(cacheName)
	if store == nil {
		return nil, false
	}
	m.mu.RLock()
	b, err := store.Read(resourceKey(path))
	m.mu.RUnlock()
	if err != nil {
		return nil, false
	}
	var res Resource
	if err := json.Unmarshal(b, &res); err != nil {
		m.logger.Warn("corrupt cache entry", zap.String("cache", cacheName), zap.String("path", path), zap.Error(err))
		return nil, false
	}
	res.FromCache = true
	return &res, true
}

// Serve answers from the cache first and falls through to the network on a miss.
func (m *Manager) Serve(ctx context.Context, cacheName, path string) (*Resource, error) {
	if res, ok := m.Lookup(cacheName, path); ok {
		return res, nil
	}
	res, err := m.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNetworkUnavailable, path, err)
	}
	return res, nil
}

// Names lists committed caches.
func (m *Manager) Names() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && validName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a committed cache. Deleting a missing cache is not an error.
func (m *Manager) Delete(cacheName string) error {
	if !validName(cacheName) {
		return fmt.Errorf("%w: %q", ErrInvalidCacheName, cacheName)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, cacheName)
	if err := os.RemoveAll(filepath.Join(m.dir, cacheName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
