package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent
// (CREATE ... IF NOT EXISTS) so the full set re-runs on every startup;
// ALTER TABLE additions tolerate the duplicate-column error on re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS deliverables (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL DEFAULT 'generic',
		base_points REAL NOT NULL DEFAULT 0,
		base_hours  REAL NOT NULL DEFAULT 0,
		base_price  REAL NOT NULL DEFAULT 0,
		scope       TEXT NOT NULL DEFAULT '',
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deliverables_active ON deliverables(active)`,

	`CREATE TABLE IF NOT EXISTS packages (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS package_deliverables (
		package_id         TEXT NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
		deliverable_id     TEXT NOT NULL REFERENCES deliverables(id),
		order_index        INTEGER NOT NULL DEFAULT 0,
		default_complexity REAL NOT NULL DEFAULT 1.0,
		quantity           INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (package_id, deliverable_id)
	)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id                   TEXT PRIMARY KEY,
		client_name          TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL DEFAULT 'draft'
		                     CHECK(status IN ('draft','studio_review','pending_client','complete')),
		week_count           INTEGER NOT NULL DEFAULT 0,
		starts_on            TEXT,
		ends_on              TEXT,
		package_name         TEXT NOT NULL DEFAULT '',
		package_description  TEXT NOT NULL DEFAULT '',
		share_token          TEXT NOT NULL DEFAULT '',
		point_total          REAL NOT NULL DEFAULT 0,
		hour_total           REAL NOT NULL DEFAULT 0,
		price_total          REAL NOT NULL DEFAULT 0,
		deliverable_count    INTEGER NOT NULL DEFAULT 0,
		agenda               TEXT NOT NULL DEFAULT '',
		agenda_generation_id TEXT NOT NULL DEFAULT '',
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sprints_share_token ON sprints(share_token) WHERE share_token != ''`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_status ON sprints(status)`,

	`CREATE TABLE IF NOT EXISTS sprint_deliverables (
		id              TEXT PRIMARY KEY,
		sprint_id       TEXT NOT NULL REFERENCES sprints(id) ON DELETE CASCADE,
		deliverable_id  TEXT NOT NULL REFERENCES deliverables(id),
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		category        TEXT NOT NULL DEFAULT 'generic',
		scope           TEXT NOT NULL DEFAULT '',
		complexity      REAL NOT NULL DEFAULT 1.0,
		quantity        INTEGER NOT NULL DEFAULT 1,
		base_points     REAL NOT NULL DEFAULT 0,
		adjusted_points REAL NOT NULL DEFAULT 0,
		adjusted_hours  REAL NOT NULL DEFAULT 0,
		adjusted_price  REAL NOT NULL DEFAULT 0,
		content         TEXT NOT NULL DEFAULT '',
		notes           TEXT NOT NULL DEFAULT '',
		attachments     TEXT NOT NULL DEFAULT '[]',
		delivery_url    TEXT NOT NULL DEFAULT '',
		current_version TEXT NOT NULL DEFAULT '0.0',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sprint_deliverables_sprint ON sprint_deliverables(sprint_id)`,

	`CREATE TABLE IF NOT EXISTS sprint_deliverable_versions (
		id                    TEXT PRIMARY KEY,
		sprint_deliverable_id TEXT NOT NULL REFERENCES sprint_deliverables(id) ON DELETE CASCADE,
		major                 INTEGER NOT NULL,
		minor                 INTEGER NOT NULL,
		content               TEXT NOT NULL DEFAULT '',
		notes                 TEXT NOT NULL DEFAULT '',
		type_data             TEXT NOT NULL DEFAULT '',
		author                TEXT NOT NULL DEFAULT '',
		created_at            TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_versions_unique
		ON sprint_deliverable_versions(sprint_deliverable_id, major, minor)`,

	`CREATE TABLE IF NOT EXISTS budget_plans (
		id                TEXT PRIMARY KEY,
		sprint_id         TEXT NOT NULL REFERENCES sprints(id) ON DELETE CASCADE,
		total_value       REAL NOT NULL DEFAULT 0,
		upfront_pct       REAL NOT NULL DEFAULT 0,
		equity_pct        REAL NOT NULL DEFAULT 0,
		deferred          INTEGER NOT NULL DEFAULT 0,
		miss_policy       TEXT NOT NULL DEFAULT '',
		upfront_amount    REAL NOT NULL DEFAULT 0,
		equity_amount     REAL NOT NULL DEFAULT 0,
		deferred_amount   REAL NOT NULL DEFAULT 0,
		completion_amount REAL NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_budget_plans_sprint ON budget_plans(sprint_id)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id            TEXT PRIMARY KEY,
		sprint_id     TEXT NOT NULL REFERENCES sprints(id) ON DELETE CASCADE,
		label         TEXT NOT NULL,
		amount        REAL NOT NULL DEFAULT 0,
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','paid','failed')),
		sort_order    INTEGER NOT NULL DEFAULT 0,
		processor_ref TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_invoices_sprint ON invoices(sprint_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_processor_ref ON invoices(processor_ref) WHERE processor_ref != ''`,

	`CREATE TABLE IF NOT EXISTS agenda_generations (
		id           TEXT PRIMARY KEY,
		sprint_id    TEXT NOT NULL REFERENCES sprints(id) ON DELETE CASCADE,
		model        TEXT NOT NULL DEFAULT '',
		raw_response TEXT NOT NULL DEFAULT '',
		success      INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_agenda_generations_sprint ON agenda_generations(sprint_id)`,

	`CREATE TABLE IF NOT EXISTS change_log (
		id         TEXT PRIMARY KEY,
		sprint_id  TEXT NOT NULL REFERENCES sprints(id) ON DELETE CASCADE,
		summary    TEXT NOT NULL,
		actor      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_change_log_sprint ON change_log(sprint_id)`,
}
