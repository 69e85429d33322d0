package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns []string
}

// secondaryIndexes back the scoping predicates and the default ordering.
var secondaryIndexes = []index{
	{"projects", "idx_projects_owner_id", []string{"owner_id"}},
	{"projects", "idx_projects_created_at", []string{"created_at"}},
	{"project_participants", "idx_project_participants_user_id", []string{"user_id"}},
	{"tasks", "idx_tasks_project_id_is_active", []string{"project_id", "is_active"}},
	{"tasks", "idx_tasks_executor_id", []string{"executor_id"}},
	{"tasks", "idx_tasks_checker_id", []string{"checker_id"}},
	{"tasks", "idx_tasks_created_at", []string{"created_at"}},
	{"users", "idx_users_created_at", []string{"created_at"}},
}

// AddIndexes creates the secondary indexes that do not exist yet.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
