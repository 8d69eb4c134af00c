package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sampark-ngo/placement-tracker/internal/models"
	appErrors "github.com/sampark-ngo/placement-tracker/pkg/errors"
)

// dashboardCachePattern matches every cached dashboard payload.
const dashboardCachePattern = "dashboard:*"

var tenDigitPhone = regexp.MustCompile(`^\d{10}$`)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Insert(ctx context.Context, patch *models.StudentPatch) (*models.Student, error)
	Update(ctx context.Context, id int64, patch *models.StudentPatch) (*models.Student, error)
	Delete(ctx context.Context, id int64) (int64, error)
	AggregateBy(ctx context.Context, column string) ([]models.AggregateCount, error)
}

// fileReferenceCleaner releases objects referenced by a deleted record.
type fileReferenceCleaner interface {
	DeleteObjects(ctx context.Context, objectKeys []string) []KeyOutcome
}

// listingInvalidator marks cached listings and summaries stale.
type listingInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// StudentService owns the record lifecycle: validation, persistence, and the
// delete-then-cleanup coordination with the upload broker.
type StudentService struct {
	repo       studentRepository
	files      fileReferenceCleaner
	cache      listingInvalidator
	normalizer *LegacyNormalizer
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, files fileReferenceCleaner, cache listingInvalidator, normalizer *LegacyNormalizer, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = NewLegacyNormalizer(0)
	}
	return &StudentService{repo: repo, files: files, cache: cache, normalizer: normalizer, validator: validate, logger: logger}
}

// List returns the full record sequence ordered by id. Filtering, sorting
// and paging happen client-side over this sequence.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to list student records")
	}
	for i := range students {
		students[i].ApplyFlagDefaults()
	}
	return students, nil
}

// Get returns one record by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "valid student id is required")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load student record")
	}
	student.ApplyFlagDefaults()
	return student, nil
}

// Create inserts a new record. Blank inputs are dropped before validation,
// so name and email must survive as non-empty values.
func (s *StudentService) Create(ctx context.Context, patch models.StudentPatch) (*models.Student, error) {
	s.normalizePatch(&patch)
	patch.DropEmpty()

	if patch.Name == nil || patch.Email == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name and email are required fields")
	}
	if err := s.validateFields(&patch); err != nil {
		return nil, err
	}

	student, err := s.repo.Insert(ctx, &patch)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to create student record")
	}
	s.invalidateDashboards(ctx)
	student.ApplyFlagDefaults()
	return student, nil
}

// Update applies a partial patch to an existing record. Unlike Create it
// keeps explicit empty strings: clearing a field is a valid edit.
func (s *StudentService) Update(ctx context.Context, id int64, patch models.StudentPatch) (*models.Student, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "valid student id is required")
	}
	s.normalizePatch(&patch)
	if patch.IsEmpty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no data provided for update")
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name cannot be empty")
	}
	if patch.Email != nil && *patch.Email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email cannot be empty")
	}
	if err := s.validateFields(&patch); err != nil {
		return nil, err
	}

	student, err := s.repo.Update(ctx, id, &patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to update student record")
	}
	s.invalidateDashboards(ctx)
	student.ApplyFlagDefaults()
	return student, nil
}

// Delete removes a record after releasing its attached objects. Object
// deletion is best effort: individual failures are logged and never block
// the row delete. The pre-delete snapshot is returned.
func (s *StudentService) Delete(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "valid student id is required")
	}

	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load student record")
	}

	if s.files != nil {
		outcomes := s.files.DeleteObjects(ctx, student.FileKeys())
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				s.logger.Warn("file cleanup failed during delete",
					zap.Int64("student_id", id),
					zap.String("key", outcome.Key),
					zap.Error(outcome.Err))
			}
		}
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to delete student record")
	}
	if affected == 0 {
		// Lost a race with a concurrent delete between lookup and delete.
		return nil, appErrors.Clone(appErrors.ErrPersistence, "student record was already deleted")
	}

	s.invalidateDashboards(ctx)
	student.ApplyFlagDefaults()
	return student, nil
}

// AggregateBy groups non-empty values of a chartable column.
func (s *StudentService) AggregateBy(ctx context.Context, field string) ([]models.AggregateCount, error) {
	if !models.IsGroupable(field) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "field is not aggregatable")
	}
	counts, err := s.repo.AggregateBy(ctx, field)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to aggregate student records")
	}
	return counts, nil
}

// normalizePatch canonicalizes legacy month and date tokens in place.
// Values that fail to normalize are unset so the field is dropped rather
// than written as garbage; an explicit empty string survives untouched.
func (s *StudentService) normalizePatch(patch *models.StudentPatch) {
	months := []**string{&patch.ReportingMonth, &patch.PlacementMonth}
	for _, field := range months {
		if *field == nil {
			continue
		}
		norm := s.normalizer.NormalizeMonth(**field)
		if norm == "" && **field != "" {
			*field = nil
			continue
		}
		**field = norm
	}

	dates := []**string{&patch.StartDate, &patch.EndDate}
	for _, field := range dates {
		if *field == nil {
			continue
		}
		norm := s.normalizer.NormalizeDate(**field)
		if norm == "" && **field != "" {
			*field = nil
			continue
		}
		**field = norm
	}
}

func (s *StudentService) validateFields(patch *models.StudentPatch) error {
	if patch.Email != nil && *patch.Email != "" {
		if err := s.validator.Var(*patch.Email, "email"); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "email address is not valid")
		}
	}
	if patch.Phone != nil && *patch.Phone != "" && !tenDigitPhone.MatchString(*patch.Phone) {
		return appErrors.Clone(appErrors.ErrValidation, "phone must be exactly 10 digits")
	}
	return nil
}

func (s *StudentService) invalidateDashboards(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardCachePattern); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
