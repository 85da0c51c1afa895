package migrations

import (
	"github.com/NeuralTrust/TrustChat/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250315_add_policies_applicable_users_index",
		Name: "Index user specific policies by applicable user",

		Up: func(db *gorm.DB) error {
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_policies_applicable_users
				ON policies USING GIN (applicable_users);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP INDEX IF EXISTS idx_policies_applicable_users;`).Error
		},
	})
}
