// Package database opens the rolepanel SQLite store, creates its schema and
// seeds the baseline roles and the default admin.
package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mhsanaei/rolepanel/config"
	"github.com/mhsanaei/rolepanel/database/model"
	"github.com/mhsanaei/rolepanel/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Seed is the account created when the users table is empty at startup.
type Seed struct {
	AdminLogin    string
	AdminPassword string
}

func initModels(db *gorm.DB) error {
	models := []any{
		&model.Role{},
		&model.User{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

func initRoles(db *gorm.DB) error {
	for _, name := range []string{model.RoleUser, model.RoleAdmin} {
		if _, err := EnsureRole(db, name); err != nil {
			return fmt.Errorf("ensure role %q: %w", name, err)
		}
	}
	return nil
}

func initUser(db *gorm.DB, seed Seed) error {
	empty, err := isTableEmpty(db, "users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}

	role, err := EnsureRole(db, model.RoleAdmin)
	if err != nil {
		return err
	}
	hash, err := crypto.HashPasswordAsBcrypt(seed.AdminPassword)
	if err != nil {
		return err
	}
	user := &model.User{
		Login:    seed.AdminLogin,
		Password: hash,
		RoleId:   role.Id,
	}
	return db.Create(user).Error
}

func isTableEmpty(db *gorm.DB, tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

// EnsureRole returns the role with the given name, inserting it first if it
// is missing. Concurrent callers all get the same row.
func EnsureRole(db *gorm.DB, name string) (*model.Role, error) {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&model.Role{Name: name}).Error
	if err != nil {
		return nil, err
	}
	role := &model.Role{}
	if err := db.Where("name = ?", name).Take(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// Open connects to the SQLite file described by cfg without touching the schema.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return nil, err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := cfg.Path + "?_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if _, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;"); err != nil {
		return nil, err
	}
	return db, nil
}

// InitDB opens the store, creates missing tables and seeds baseline rows.
// Running it again on an existing store leaves the data untouched.
func InitDB(cfg *config.DatabaseConfig, seed Seed) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, seed); err != nil {
		_ = CloseDB(db)
		return nil, err
	}
	return db, nil
}

// Migrate runs the schema and seed steps of InitDB on an open handle.
func Migrate(db *gorm.DB, seed Seed) error {
	if err := initModels(db); err != nil {
		return err
	}
	if err := initRoles(db); err != nil {
		return err
	}
	return initUser(db, seed)
}

func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := Checkpoint(db); err != nil {
		log.Printf("error executing checkpoint: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Checkpoint folds the WAL back into the main database file.
func Checkpoint(db *gorm.DB) error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}

// ConstraintViolation is a write rejected by a unique or foreign key
// constraint. Its message is the driver's.
type ConstraintViolation struct {
	Err error
}

func (e *ConstraintViolation) Error() string {
	return e.Err.Error()
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// AsConstraintViolation wraps err in a ConstraintViolation when the store
// reports a unique or foreign key failure, and returns it unchanged otherwise.
func AsConstraintViolation(db *gorm.DB, err error) error {
	if err == nil {
		return nil
	}
	translated := err
	if t, ok := db.Dialector.(gorm.ErrorTranslator); ok {
		translated = t.Translate(err)
	}
	if errors.Is(translated, gorm.ErrDuplicatedKey) || errors.Is(translated, gorm.ErrForeignKeyViolated) {
		return &ConstraintViolation{Err: err}
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return &ConstraintViolation{Err: err}
	}
	return err
}
