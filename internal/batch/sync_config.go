package batch

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultBatchSize = 200
	defaultInterval  = 10 * time.Second
)

type SyncConfig struct {
	BatchSize int
	Interval  time.Duration
}

func GetSyncConfig() SyncConfig {
	cfg := SyncConfig{
		BatchSize: defaultBatchSize,
		Interval:  defaultInterval,
	}

	if v := os.Getenv("SYNC_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchSize = n
		}
	}
	if v := os.Getenv("SYNC_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Interval = time.Duration(n) * time.Second
		}
	}

	return cfg
}
