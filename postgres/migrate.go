package postgres

import (
	"fmt"
	"time"

	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/audit"
	"gorm.io/gorm"
)

// Migration is used to hold the database key and function for creating the migration.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

func (m Migration) execute(db *gorm.DB) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := m.Executor(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

// Migrations returns every schema change the application requires, in order.
func Migrations() []Migration {
	return []Migration{
		{
			Key: "2023-02-11-create-users",
			Executor: func(db *gorm.DB) error {
				return db.AutoMigrate(new(whisperwall.User))
			},
		},
		{
			Key: "2023-02-11-create-audit-events",
			Executor: func(db *gorm.DB) error {
				return db.AutoMigrate(new(audit.Event))
			},
		},
	}
}

func migrateUp(db *gorm.DB, schema string, migrations []Migration) error {
	if err := ensureSchema(db, schema); err != nil {
		return err
	}

	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	toRun, err := determineMigrationsToRun(db, migrations)
	if err != nil {
		return err
	}

	for _, m := range toRun {
		if err := m.execute(db); err != nil {
			return fmt.Errorf("migration %q: %w", m.Key, err)
		}

		if err := createMigrationRecord(db, m.Key); err != nil {
			return err
		}
	}

	return nil
}

func ensureSchema(db *gorm.DB, schema string) error {
	return db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error
}

func ensureMigrationsTable(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			ran_at bigint,
			key text,
			CONSTRAINT migrations_key UNIQUE (key)
		)
	`).Error
}

type migrationKeyCol struct {
	Key string
}

func determineMigrationsToRun(db *gorm.DB, allMigrations []Migration) ([]Migration, error) {
	ranMigrations := []migrationKeyCol{}
	r := db.Raw("SELECT key FROM migrations;")
	if r.Error != nil {
		return nil, r.Error
	}
	r.Scan(&ranMigrations)

	if len(ranMigrations) == 0 {
		return allMigrations, nil
	}

	toRun := []Migration{}
	for _, candidate := range allMigrations {
		var ran bool
		for _, ranMigration := range ranMigrations {
			if candidate.Key == ranMigration.Key {
				ran = true
				break
			}
		}

		if !ran {
			toRun = append(toRun, candidate)
		}
	}

	return toRun, nil
}

func createMigrationRecord(db *gorm.DB, key string) error {
	return db.Exec(`INSERT INTO migrations (key, ran_at) VALUES (?, ?)`, key, time.Now().Unix()).Error
}
