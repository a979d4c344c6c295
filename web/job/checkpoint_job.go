// Package job contains the cron jobs scheduled by the web server.
package job

import (
	"github.com/mhsanaei/rolepanel/database"
	"github.com/mhsanaei/rolepanel/logger"

	"gorm.io/gorm"
)

// CheckpointJob folds the SQLite WAL back into the database file.
type CheckpointJob struct {
	db *gorm.DB
}

func NewCheckpointJob(db *gorm.DB) *CheckpointJob {
	return &CheckpointJob{db: db}
}

func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(j.db); err != nil {
		logger.Warning("wal checkpoint failed:", err)
		return
	}
	logger.Debug("wal checkpoint done")
}
