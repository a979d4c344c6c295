package job

import (
	"path/filepath"
	"testing"

	"github.com/mhsanaei/rolepanel/config"
	"github.com/mhsanaei/rolepanel/database"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointJob(t *testing.T) {
	cfg := &config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "job.db")}
	db, err := database.InitDB(cfg, database.Seed{AdminLogin: "admin", AdminPassword: "admin"})
	require.NoError(t, err)
	defer database.CloseDB(db)

	var j cron.Job = NewCheckpointJob(db)
	assert.NotPanics(t, j.Run)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.NotPanics(t, j.Run, "a closed database is logged, not fatal")
}
