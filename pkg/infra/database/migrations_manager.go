package database

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	ID   string
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

var (
	migrationsRegistry = make(map[string]Migration)
	migrationsOrder    = make([]string, 0)
)

func RegisterMigration(m Migration) {
	if _, exists := migrationsRegistry[m.ID]; exists {
		panic(fmt.Sprintf("migration with ID %s already registered", m.ID))
	}
	migrationsRegistry[m.ID] = m
	migrationsOrder = append(migrationsOrder, m.ID)
}

type MigrationsManager struct {
	db *gorm.DB
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db}
}

func (m *MigrationsManager) ensureMigrationsTable() error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS public.migration_version (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	return m.db.Exec(createTableSQL).Error
}

func (m *MigrationsManager) getAppliedMigrations() (map[string]struct{}, error) {
	type row struct{ ID string }
	var rows []row
	if err := m.db.Raw("SELECT id FROM public.migration_version").Scan(&rows).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		applied[r.ID] = struct{}{}
	}
	return applied, nil
}

func (m *MigrationsManager) ApplyPending() error {
	if err := m.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := m.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}

	sort.Slice(migrationsOrder, func(i, j int) bool { return migrationsOrder[i] < migrationsOrder[j] })

	for _, id := range migrationsOrder {
		if _, ok := applied[id]; ok {
			continue
		}
		mig := migrationsRegistry[id]
		if mig.Up == nil {
			return fmt.Errorf("migration %s has no Up function", id)
		}
		if err := mig.Up(m.db); err != nil {
			return fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
		}
		if err := m.db.Exec("INSERT INTO public.migration_version (id, name, applied_at) VALUES (?, ?, ?)", mig.ID, mig.Name, time.Now()).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", mig.ID, err)
		}
	}
	return nil
}

// MigrationStatus reports whether a registered migration has been applied.
type MigrationStatus struct {
	ID      string
	Name    string
	Applied bool
}

func (m *MigrationsManager) Status() ([]MigrationStatus, error) {
	if err := m.ensureMigrationsTable(); err != nil {
		return nil, fmt.Errorf("ensure migrations table: %w", err)
	}
	applied, err := m.getAppliedMigrations()
	if err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	sort.Slice(migrationsOrder, func(i, j int) bool { return migrationsOrder[i] < migrationsOrder[j] })

	out := make([]MigrationStatus, 0, len(migrationsOrder))
	for _, id := range migrationsOrder {
		_, ok := applied[id]
		out = append(out, MigrationStatus{ID: id, Name: migrationsRegistry[id].Name, Applied: ok})
	}
	return out, nil
}

// RollbackLast reverts the most recently applied migration. It returns the
// reverted ID, or "" when nothing was applied.
func (m *MigrationsManager) RollbackLast() (string, error) {
	statuses, err := m.Status()
	if err != nil {
		return "", err
	}
	for i := len(statuses) - 1; i >= 0; i-- {
		if !statuses[i].Applied {
			continue
		}
		mig := migrationsRegistry[statuses[i].ID]
		if mig.Down == nil {
			return "", fmt.Errorf("migration %s has no Down function", mig.ID)
		}
		if err := mig.Down(m.db); err != nil {
			return "", fmt.Errorf("revert migration %s (%s): %w", mig.ID, mig.Name, err)
		}
		if err := m.db.Exec("DELETE FROM public.migration_version WHERE id = ?", mig.ID).Error; err != nil {
			return "", fmt.Errorf("unrecord migration %s: %w", mig.ID, err)
		}
		return mig.ID, nil
	}
	return "", nil
}
