package migrations

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// Migration is the bookkeeping row behind the migrations table. Batch
// groups the migrations applied by one Migrate run so Rollback can
// unwind them together.
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

// MigrationDefinition pairs a named Up step with its optional Down
// step. A nil Down makes the migration irreversible.
type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

// Migrator applies registered migrations in order, each inside its own
// transaction, and records the ones that ran.
type Migrator struct {
	db         *gorm.DB
	migrations []MigrationDefinition
}

func NewMigrator(db *gorm.DB) (*Migrator, error) {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("preparing migrations table: %w", err)
	}
	return &Migrator{db: db}, nil
}

func (m *Migrator) AddMigration(migration MigrationDefinition) {
	m.migrations = append(m.migrations, migration)
}

// Migrate runs every registered migration that has not run yet. All
// migrations applied by one call share a batch number.
func (m *Migrator) Migrate() error {
	batch := m.latestBatch() + 1

	applied := 0
	for _, migration := range m.migrations {
		if m.hasRun(migration.Name) {
			continue
		}

		log.Printf("migrating %s", migration.Name)
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&Migration{Name: migration.Name, Batch: batch}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", migration.Name, err)
		}
		applied++
	}

	log.Printf("migrations up to date, %d applied", applied)
	return nil
}

// Rollback unwinds the latest batches, newest migration first within
// each batch. steps counts batches, not individual migrations.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}

	for batch := m.latestBatch(); steps > 0 && batch > 0; batch-- {
		var records []Migration
		if err := m.db.Where("batch = ?", batch).Order("id DESC").Find(&records).Error; err != nil {
			return fmt.Errorf("reading batch %d: %w", batch, err)
		}

		for _, record := range records {
			migration := m.findMigration(record.Name)
			if migration == nil {
				return fmt.Errorf("no definition registered for migration %s", record.Name)
			}
			if migration.Down == nil {
				return fmt.Errorf("migration %s has no rollback", record.Name)
			}

			log.Printf("rolling back %s", record.Name)
			rec := record
			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Down(tx); err != nil {
					return err
				}
				return tx.Delete(&rec).Error
			})
			if err != nil {
				return fmt.Errorf("rollback of %s: %w", record.Name, err)
			}
		}
		steps--
	}

	return nil
}

func (m *Migrator) hasRun(name string) bool {
	var count int64
	m.db.Model(&Migration{}).Where("name = ?", name).Count(&count)
	return count > 0
}

func (m *Migrator) latestBatch() int {
	var migration Migration
	m.db.Order("batch DESC").First(&migration)
	return migration.Batch
}

func (m *Migrator) findMigration(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}
