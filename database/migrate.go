package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migrate creates or alters every table to match the models.
func Migrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err := migrateDB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

type index struct {
	name    string
	table   string
	columns string
	unique  bool
}

var indexes = []index{
	{name: "idx_admin_users_username", table: "admin_users", columns: "username", unique: true},
	{name: "idx_admin_users_email", table: "admin_users", columns: "email", unique: true},
	{name: "idx_projects_featured", table: "projects", columns: "featured"},
	{name: "idx_projects_created_at", table: "projects", columns: "created_at"},
	{name: "idx_projects_client", table: "projects", columns: "client"},
	{name: "idx_clients_active", table: "clients", columns: "active"},
	{name: "idx_clients_sort_order", table: "clients", columns: "sort_order"},
	{name: "idx_messages_read", table: "messages", columns: "read"},
	{name: "idx_messages_created_at", table: "messages", columns: "created_at"},
}

// EnsureIndexes creates the lookup indexes. A failing index is logged and
// skipped; the number of indexes in place afterwards is returned.
func EnsureIndexes(ctx context.Context, db *gorm.DB) int {
	created := 0
	for _, idx := range indexes {
		stmt := "CREATE INDEX IF NOT EXISTS"
		if idx.unique {
			stmt = "CREATE UNIQUE INDEX IF NOT EXISTS"
		}
		sql := fmt.Sprintf(`%s %s ON %s (%s)`, stmt, idx.name, idx.table, quoteColumn(idx.columns))
		if err := db.WithContext(ctx).Exec(sql).Error; err != nil {
			log.Warn().Err(err).Str("index", idx.name).Msg("could not create index")
			continue
		}
		created++
	}
	log.Info().Int("count", created).Msg("database indexes ensured")
	return created
}

// read is a keyword in some dialects.
func quoteColumn(column string) string {
	return `"` + column + `"`
}
