package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor keeps the latest health snapshot of the backing services.
type HealthMonitor struct {
	redisClients []*redis.Client
	mongoClient  *mongo.Client
	logger       *zap.Logger

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client, logger *zap.Logger) *HealthMonitor {
	return &HealthMonitor{redisClients: redisClients, mongoClient: mongoClient, logger: logger}
}

// Status returns latest stored health snapshot.
func (h *HealthMonitor) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Run performs a check immediately and then every interval until ctx is done.
func (h *HealthMonitor) Run(ctx context.Context, interval time.Duration) {
	h.check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.check(ctx)
		}
	}
}

func (h *HealthMonitor) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var redisHealth []bool
	for _, client := range h.redisClients {
		err := client.Ping(pingCtx).Err()
		if err != nil {
			h.logger.Warn("redis connection lost", zap.Error(err))
		}
		redisHealth = append(redisHealth, err == nil)
	}

	mongoHealthy := false
	if h.mongoClient != nil {
		mongoHealthy = h.mongoClient.Ping(pingCtx, nil) == nil
	}

	h.mu.Lock()
	h.current = HealthStatus{
		Mongo:     mongoHealthy,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
	h.mu.Unlock()
}

// Healthy reports whether every configured service answered the last check.
// Before the first check it reports true.
func (h *HealthMonitor) Healthy() bool {
	st := h.Status()
	if st.CheckedAt.IsZero() {
		return true
	}
	if h.mongoClient != nil && !st.Mongo {
		return false
	}
	for _, ok := range st.Redis {
		if !ok {
			return false
		}
	}
	return true
}
