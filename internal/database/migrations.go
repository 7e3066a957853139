package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database.
// The ordered containers carry a non-unique (parent, order) index so
// in-order child scans stay cheap.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Ordered-container scans
		{"boards", "idx_boards_workspace_order", `workspace_id, "order"`},
		{"board_columns", "idx_board_columns_board_order", `board_id, "order"`},
		{"issues", "idx_issues_column_order", `column_id, "order"`},
		{"issues", "idx_issues_workspace_id", "workspace_id"},

		// Membership lookups
		{"memberships", "idx_memberships_organization_id", "organization_id"},
		{"memberships", "idx_memberships_user_id", "user_id"},

		// Organization invite code index
		{"organizations", "idx_organizations_invite_code", "invite_code"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
