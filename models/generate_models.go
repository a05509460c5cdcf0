package models

import (
	"fmt"

	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Query generation usage:

Set GENERATE_QUERY=true and start the binary. It connects, migrates, writes
typed query helpers for every collection into ./query and exits. The
generated package is optional tooling for ad-hoc scripts; the API goes
through the database repos.
*/

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&AdminUser{},
		&Portfolio{},
		&Project{},
		&Client{},
		&ContactMessage{},
	}
}

// GenerateQueries writes gorm/gen query helpers for All into outPath.
func GenerateQueries(db *gorm.DB, outPath string) error {
	if outPath == "" {
		outPath = "./query"
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()
	return nil
}
