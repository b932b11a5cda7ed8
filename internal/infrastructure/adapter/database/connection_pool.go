package database

import (
	"fmt"
	"sync"
	"time"

	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
)

// PoolStats is a point-in-time snapshot of the connection pool.
type PoolStats struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxLifetimeClosed  int64
}

// PoolMonitor samples the connection pool on an interval and warns when the
// pool approaches exhaustion.
type PoolMonitor struct {
	manager  *Manager
	logger   coreport.Logger
	latest   *PoolStats
	mutex    sync.RWMutex
	stopChan chan struct{}
}

func NewPoolMonitor(manager *Manager, logger coreport.Logger) *PoolMonitor {
	return &PoolMonitor{
		manager:  manager,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start samples the pool once immediately, then on every tick until Stop.
func (m *PoolMonitor) Start(interval time.Duration) error {
	if err := m.sample(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.sample(); err != nil {
					m.logger.Error("Failed to sample connection pool", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()

	return nil
}

func (m *PoolMonitor) Stop() {
	close(m.stopChan)
}

// Stats returns the most recent snapshot.
func (m *PoolMonitor) Stats() PoolStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.latest == nil {
		return PoolStats{}
	}
	return *m.latest
}

func (m *PoolMonitor) sample() error {
	sqlDB, err := m.manager.DB().DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()

	m.mutex.Lock()
	m.latest = &PoolStats{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
	m.mutex.Unlock()

	if float64(stats.InUse) > float64(stats.MaxOpenConnections)*0.8 {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return nil
}
