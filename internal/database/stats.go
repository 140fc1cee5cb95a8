package database

import (
	"context"
	"time"

	"github.com/Aidin1998/studysheets/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CollectStats samples the connection pool into prometheus gauges every interval
// until ctx is cancelled.
func CollectStats(ctx context.Context, db *gorm.DB, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		RecordStats(db, logger)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RecordStats samples the connection pool once.
func RecordStats(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("Failed to read connection pool stats", zap.Error(err))
		return
	}

	stats := sqlDB.Stats()
	metrics.DBOpenConns.Set(float64(stats.OpenConnections))
	metrics.DBIdleConns.Set(float64(stats.Idle))
	metrics.DBInUseConns.Set(float64(stats.InUse))
}
