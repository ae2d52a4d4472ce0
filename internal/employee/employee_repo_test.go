package employee_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"employee-directory/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (employee.Repository, sqlmock.Sqlmock, *gorm.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return employee.NewRepository(db), mock, db
}

var employeeColumns = []string{
	"id", "full_name", "email", "phone", "dob", "gender", "skills", "department",
	"address", "is_active", "resume", "profile_image", "gallery_images", "created_at", "updated_at",
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := setupRepoTest(t)
	ctx := context.Background()
	id := "6d1c8a9e-2f4b-4c3d-9e8f-1a2b3c4d5e6f"
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows(employeeColumns).AddRow(
				id, "Ada", "ada@example.com", "0812", now, "Female", "{Go,SQL}", "Engineering",
				"London", true, "uploads/r.pdf", "uploads/p.png", "{uploads/a.png}", now, now,
			))

		empl, err := repo.FindByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, empl.ID.String())
		assert.Equal(t, []string{"Go", "SQL"}, []string(empl.Skills))
		assert.Equal(t, []string{"uploads/a.png"}, []string(empl.GalleryImages))
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows(employeeColumns))

		empl, err := repo.FindByID(ctx, id)

		assert.Nil(t, empl)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock, _ := setupRepoTest(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(employeeColumns))

	empls, err := repo.FindAll(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, empls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateWithTx(t *testing.T) {
	repo, mock, db := setupRepoTest(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "employees"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)

	empl := existingEmployee()
	assert.NoError(t, repo.WithTx(tx).Create(context.Background(), empl))
	assert.NoError(t, tx.Commit())
	assert.False(t, empl.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock, _ := setupRepoTest(t)
	ctx := context.Background()

	t.Run("updates row", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, existingEmployee()))
	})

	t.Run("row removed concurrently", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, existingEmployee()), gorm.ErrRecordNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock, _ := setupRepoTest(t)
	ctx := context.Background()
	id := "6d1c8a9e-2f4b-4c3d-9e8f-1a2b3c4d5e6f"

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employees" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employees" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
