package main

import (
	"path/filepath"
	"testing"

	"github.com/mhsanaei/rolepanel/config"
	"github.com/mhsanaei/rolepanel/database"
	"github.com/mhsanaei/rolepanel/util/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCloseDB(t *testing.T) {
	crypto.Cost = bcrypt.MinCost
	cfg := &config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "main.db")}
	db, err := database.InitDB(cfg, database.Seed{AdminLogin: "admin", AdminPassword: "admin"})
	require.NoError(t, err)

	assert.NotPanics(t, func() { closeDB(db) })
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "closeDB releases the handle")

	// Closing again only logs.
	assert.NotPanics(t, func() { closeDB(db) })
	assert.NotPanics(t, func() { closeDB(nil) })
}
