package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sampark-ngo/placement-tracker/internal/models"
)

// studentColumns is the full at-rest column list in schema order.
const studentColumns = `id, name, email, region, center_name, reporting_month, unique_code, course, gender, phone,
        educational_qualification, start_date, end_date, placement_month, city, state, address, company_name,
        designation, sector, placement_county, pre_training_income, post_training_income, remarks,
        posting_entry_level_job, green_job, household_women_headed, training_proof_uploaded, placement_proof_uploaded,
        photo_key, application_form_key, attendance_key, placement_doc_key, placement_proof_key, training_proof_key`

// StudentRepository manages persistence for placement records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every record ordered by id. Filtering and paging are client
// concerns over the full sequence.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students ORDER BY id", studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a single record. sql.ErrNoRows passes through untouched
// so callers can map it to a not-found outcome.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Insert creates a record from the set fields of the patch and returns the
// stored row including the assigned id.
func (r *StudentRepository) Insert(ctx context.Context, patch *models.StudentPatch) (*models.Student, error) {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("insert students: no columns")
	}

	names := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for i, col := range cols {
		names = append(names, col.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, col.Value)
	}

	query := fmt.Sprintf("INSERT INTO students (%s) VALUES (%s) RETURNING %s",
		strings.Join(names, ", "), strings.Join(placeholders, ", "), studentColumns)

	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, args...); err != nil {
		return nil, fmt.Errorf("insert student: %w", err)
	}
	return &student, nil
}

// Update applies only the set fields of the patch to the matching row and
// returns the updated row. sql.ErrNoRows is returned when no row matches.
func (r *StudentRepository) Update(ctx context.Context, id int64, patch *models.StudentPatch) (*models.Student, error) {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("update students: no columns")
	}

	assignments := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col.Column, i+1))
		args = append(args, col.Value)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE students SET %s WHERE id = $%d RETURNING %s",
		strings.Join(assignments, ", "), len(args), studentColumns)

	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, args...); err != nil {
		return nil, err
	}
	return &student, nil
}

// Delete removes the row and reports how many rows were affected.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete student rows affected: %w", err)
	}
	return affected, nil
}

// AggregateBy groups non-empty values of an allowlisted column and returns
// bucket counts for chart rendering.
func (r *StudentRepository) AggregateBy(ctx context.Context, column string) ([]models.AggregateCount, error) {
	if !models.IsGroupable(column) {
		return nil, fmt.Errorf("aggregate students: column %q not groupable", column)
	}

	query := fmt.Sprintf(`SELECT %s AS name, COUNT(id) AS value FROM students
        WHERE %s IS NOT NULL AND %s <> '' GROUP BY %s ORDER BY value DESC, name`, column, column, column, column)

	var counts []models.AggregateCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("aggregate students by %s: %w", column, err)
	}
	return counts, nil
}
