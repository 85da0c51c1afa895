package migrations

import (
	"github.com/NeuralTrust/TrustChat/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250301_create_policies_table",
		Name: "Create policies table",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS policies (
					id               TEXT PRIMARY KEY,
					name             TEXT NOT NULL,
					type             TEXT NOT NULL,
					scope            TEXT NOT NULL DEFAULT 'company_wide',
					applicable_users TEXT[] NOT NULL DEFAULT '{}',
					version          TEXT NOT NULL DEFAULT '1.0',
					effective_date   TEXT,
					active           BOOLEAN NOT NULL DEFAULT TRUE,
					rules            JSONB NOT NULL DEFAULT '{}'::jsonb,
					created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT policies_scope_check CHECK (scope IN ('company_wide', 'user_specific'))
				);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_policies_active
				ON policies (active);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS policies;`).Error
		},
	})
}
