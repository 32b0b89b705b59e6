package leave_test

import (
	"context"
	"testing"

	"hris-dashboard/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (leave.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return leave.NewRepository(db), mock
}

var leaveColumns = []string{"id", "employee_name", "position", "department", "date", "reason", "status"}

func TestLeaveRepository_FindAll(t *testing.T) {
	t.Run("status and search", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "leaves" WHERE status = \$1 ` +
			`AND \(LOWER\(employee_name\) LIKE \$2 OR LOWER\(reason\) LIKE \$3\) ` +
			`AND "leaves"\."deleted_at" IS NULL ORDER BY date DESC,created_at DESC`).
			WithArgs("Approved", "%ann%", "%ann%").
			WillReturnRows(sqlmock.NewRows(leaveColumns).
				AddRow(uuid.NewString(), "Ann", "Senior", "Developer", "10/09/24", "family", "Approved"))

		got, err := repo.FindAll(context.Background(), leave.ListFilter{Status: leave.StatusApproved, Query: "  ANN "})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Ann", got[0].EmployeeName)
		assert.Equal(t, leave.StatusApproved, got[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty filter adds no conditions", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "leaves" WHERE "leaves"\."deleted_at" IS NULL ORDER BY date DESC,created_at DESC`).
			WithoutArgs().
			WillReturnRows(sqlmock.NewRows(leaveColumns))

		got, err := repo.FindAll(context.Background(), leave.ListFilter{Query: "   "})

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveRepository_FindApproved(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "leaves" WHERE status = \$1 AND "leaves"\."deleted_at" IS NULL ORDER BY created_at ASC`).
		WithArgs("Approved").
		WillReturnRows(sqlmock.NewRows(leaveColumns).
			AddRow(uuid.NewString(), "A", "Dev", "Staff", "10/09/24", "x", "Approved").
			AddRow(uuid.NewString(), "B", "Dev", "Staff", "11/09/24", "y", "Approved"))

	got, err := repo.FindApproved(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].EmployeeName)
	assert.Equal(t, "B", got[1].EmployeeName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepository_UpdateStatus(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.NewString()

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "leaves" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), id, leave.StatusRejected)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
