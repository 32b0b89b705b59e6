package app

import (
	"fmt"

	"hris-dashboard/internal/attendance"
	"hris-dashboard/internal/candidate"
	"hris-dashboard/internal/employee"
	"hris-dashboard/internal/leave"
	"hris-dashboard/internal/notification"
	"hris-dashboard/internal/user"

	"gorm.io/gorm"
)

// The outbox is written with database/sql, so it has no gorm model.
const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id             UUID PRIMARY KEY,
	request_id     VARCHAR(64),
	aggregate_type VARCHAR(50)  NOT NULL,
	aggregate_id   VARCHAR(64)  NOT NULL,
	event_type     VARCHAR(100) NOT NULL,
	topic          VARCHAR(150) NOT NULL,
	payload        JSONB        NOT NULL,
	status         VARCHAR(20)  NOT NULL DEFAULT 'pending',
	retry_count    INT          NOT NULL DEFAULT 0,
	next_retry_at  TIMESTAMPTZ,
	error_message  TEXT,
	processed_at   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_pending
	ON outbox_events (status, next_retry_at, created_at);
`

// Username and email uniqueness moved to partial indexes that skip
// soft-deleted rows. AutoMigrate never drops an index, so the full ones
// from earlier schemas are removed here.
const legacyUniqueIndexDDL = `
DROP INDEX IF EXISTS uq_users_username;
DROP INDEX IF EXISTS uq_employee_email;
DROP INDEX IF EXISTS uq_candidate_email;
`

// Migrate creates or alters every table the API owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&employee.Employee{},
		&candidate.Candidate{},
		&leave.Leave{},
		&attendance.Attendance{},
		&notification.Notification{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if err := DropLegacyUniqueIndexes(db); err != nil {
		return err
	}
	if err := db.Exec(outboxDDL).Error; err != nil {
		return fmt.Errorf("create outbox table: %w", err)
	}
	return nil
}

func DropLegacyUniqueIndexes(db *gorm.DB) error {
	if err := db.Exec(legacyUniqueIndexDDL).Error; err != nil {
		return fmt.Errorf("drop legacy unique indexes: %w", err)
	}
	return nil
}
