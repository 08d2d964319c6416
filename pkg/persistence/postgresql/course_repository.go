package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/persistence"
)

// CourseRepository handles course rows. The scalar sections and the three
// committed JSON blobs live in dedicated JSONB columns; code, title, and
// status are broken out for indexing.
type CourseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCourseRepository creates a course repository.
func NewCourseRepository(db *sql.DB, logger *slog.Logger) *CourseRepository {
	return &CourseRepository{db: db, logger: logger.With("module", "postgresql.courses")}
}

const courseColumns = `id, status, sections, collections, attachments, deletion_markers, created_at, updated_at, deleted_at`

// List returns all non-deleted courses, newest first.
func (cr *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	rows, err := cr.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE deleted_at IS NULL ORDER BY created_at DESC`)
	if err != nil {
		return nil, persistence.NewCourseError("List", "", err)
	}
	defer rows.Close()

	var courses []*models.Course

	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, persistence.NewCourseError("List", "", err)
		}

		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewCourseError("List", "", err)
	}

	return courses, nil
}

// GetByID loads one course.
func (cr *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	row := cr.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1 AND deleted_at IS NULL`, id)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrCourseNotFound
		}

		return nil, persistence.NewCourseError("GetByID", id, err)
	}

	return course, nil
}

// Save upserts a course.
func (cr *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	sections, err := json.Marshal(course)
	if err != nil {
		return persistence.NewCourseError("Save", course.ID, err)
	}

	collections, err := json.Marshal(course.Collections)
	if err != nil {
		return persistence.NewCourseError("Save", course.ID, err)
	}

	attachments, err := json.Marshal(course.Attachments)
	if err != nil {
		return persistence.NewCourseError("Save", course.ID, err)
	}

	markers, err := json.Marshal(course.DeletionMarkers)
	if err != nil {
		return persistence.NewCourseError("Save", course.ID, err)
	}

	_, err = cr.db.ExecContext(ctx, `
		INSERT INTO courses (id, status, code, title, sections, collections, attachments, deletion_markers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			code = EXCLUDED.code,
			title = EXCLUDED.title,
			sections = EXCLUDED.sections,
			collections = EXCLUDED.collections,
			attachments = EXCLUDED.attachments,
			deletion_markers = EXCLUDED.deletion_markers,
			updated_at = EXCLUDED.updated_at
	`,
		course.ID, course.Status, course.BasicInfo.Code, course.BasicInfo.Title,
		sections, collections, attachments, markers,
		course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return persistence.NewCourseError("Save", course.ID, err)
	}

	return nil
}

// Delete soft deletes a course by setting deleted_at.
func (cr *CourseRepository) Delete(ctx context.Context, id string) error {
	result, err := cr.db.ExecContext(ctx,
		`UPDATE courses SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return persistence.NewCourseError("Delete", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewCourseError("Delete", id, err)
	}

	if affected == 0 {
		return persistence.ErrCourseNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var (
		id, status                                  string
		sections, collections, attachments, markers []byte
		createdAt, updatedAt                        time.Time
		deletedAt                                   sql.NullTime
	)

	err := row.Scan(&id, &status, &sections, &collections, &attachments, &markers,
		&createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	var course models.Course
	if err := json.Unmarshal(sections, &course); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(collections, &course.Collections); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(attachments, &course.Attachments); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(markers, &course.DeletionMarkers); err != nil {
		return nil, err
	}

	course.ID = id
	course.Status = models.CourseStatus(status)
	course.CreatedAt = createdAt
	course.UpdatedAt = updatedAt

	if deletedAt.Valid {
		course.DeletedAt = &deletedAt.Time
	}

	return &course, nil
}
