package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/sampark-ngo/placement-tracker/internal/models"
)

var studentColumnNames = []string{
	"id", "name", "email", "region", "center_name", "reporting_month", "unique_code", "course", "gender", "phone",
	"educational_qualification", "start_date", "end_date", "placement_month", "city", "state", "address", "company_name",
	"designation", "sector", "placement_county", "pre_training_income", "post_training_income", "remarks",
	"posting_entry_level_job", "green_job", "household_women_headed", "training_proof_uploaded", "placement_proof_uploaded",
	"photo_key", "application_form_key", "attendance_key", "placement_doc_key", "placement_proof_key", "training_proof_key",
}

func newStudentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

// studentRow appends a full-width row with every optional column NULL.
func studentRow(rows *sqlmock.Rows, id int64, name, email string) *sqlmock.Rows {
	row := make([]driver.Value, len(studentColumnNames))
	row[0] = id
	row[1] = name
	row[2] = email
	return rows.AddRow(row...)
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	rows := sqlmock.NewRows(studentColumnNames)
	studentRow(rows, 1, "Asha Rao", "asha@example.org")
	studentRow(rows, 2, "Binod Kumar", "binod@example.org")
	mock.ExpectQuery("SELECT (.+) FROM students ORDER BY id").WillReturnRows(rows)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, int64(1), students[0].ID)
	require.Equal(t, "Binod Kumar", students[1].Name)
	require.Nil(t, students[0].Gender)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	rows := sqlmock.NewRows(studentColumnNames)
	studentRow(rows, 7, "Asha Rao", "asha@example.org")
	mock.ExpectQuery("SELECT (.+) FROM students WHERE id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	student, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), student.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDNoRows(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM students WHERE id = \\$1").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryInsertUsesOnlySetColumns(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	gender := "Female"
	patch := &models.StudentPatch{
		Name:   ptr("Asha Rao"),
		Email:  ptr("asha@example.org"),
		Gender: &gender,
	}

	rows := sqlmock.NewRows(studentColumnNames)
	studentRow(rows, 11, "Asha Rao", "asha@example.org")
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students (name, email, gender) VALUES ($1, $2, $3) RETURNING")).
		WithArgs("Asha Rao", "asha@example.org", "Female").
		WillReturnRows(rows)

	student, err := repo.Insert(context.Background(), patch)
	require.NoError(t, err)
	require.Equal(t, int64(11), student.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryInsertRejectsEmptyPatch(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	_, err := repo.Insert(context.Background(), &models.StudentPatch{})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateAssignsOnlySetColumns(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	remarks := ""
	patch := &models.StudentPatch{
		Name:    ptr("Asha R"),
		Remarks: &remarks,
	}

	rows := sqlmock.NewRows(studentColumnNames)
	studentRow(rows, 11, "Asha R", "asha@example.org")
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE students SET name = $1, remarks = $2 WHERE id = $3 RETURNING")).
		WithArgs("Asha R", "", int64(11)).
		WillReturnRows(rows)

	student, err := repo.Update(context.Background(), 11, patch)
	require.NoError(t, err)
	require.Equal(t, "Asha R", student.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateNoRows(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectQuery("UPDATE students SET").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 42, &models.StudentPatch{Name: ptr("X")})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryAggregateBySkipsEmptyValues(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	rows := sqlmock.NewRows([]string{"name", "value"}).
		AddRow("Female", 12).
		AddRow("Male", 9)
	mock.ExpectQuery("SELECT gender AS name, COUNT\\(id\\) AS value FROM students\\s+WHERE gender IS NOT NULL AND gender <> ''").
		WillReturnRows(rows)

	counts, err := repo.AggregateBy(context.Background(), "gender")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, models.AggregateCount{Name: "Female", Value: 12}, counts[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryAggregateByRejectsUnknownColumn(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	_, err := repo.AggregateBy(context.Background(), "email; DROP TABLE students")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func ptr(s string) *string { return &s }
