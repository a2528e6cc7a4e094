package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

type coursesRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCoursesRepository creates a new instance of the courses repository
func NewCoursesRepository(db *sql.DB, logger *zap.Logger) *coursesRepository {
	return &coursesRepository{
		db:     db,
		logger: logger,
	}
}

// Put writes or overwrites a course record by id and writes each of its
// lessons into the lessons table tagged with the course id. The course
// write and the lesson writes are separate statements; a lesson-write
// failure after the course write leaves the course with an incomplete
// lesson set.
func (r *coursesRepository) Put(ctx context.Context, course *models.Course) error {
	tags, err := json.Marshal(course.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal course tags: %w", err)
	}

	cachedAt := course.CachedAt
	if cachedAt.IsZero() {
		cachedAt = time.Now().UTC()
	}

	query := `
		INSERT OR REPLACE INTO courses
			(id, title, description, category, difficulty, estimated_duration, tags, image_url, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.Category,
		course.Difficulty,
		course.EstimatedDuration,
		string(tags),
		course.ImageURL,
		cachedAt,
	)
	if err != nil {
		r.logger.Error("failed to put course", zap.Error(err), zap.String("course_id", course.ID))
		return fmt.Errorf("failed to put course: %w", err)
	}

	// Replace the lesson set belonging to this course
	if _, err := r.db.ExecContext(ctx, "DELETE FROM lessons WHERE course_id = ?", course.ID); err != nil {
		r.logger.Error("failed to clear course lessons", zap.Error(err), zap.String("course_id", course.ID))
		return fmt.Errorf("failed to clear course lessons: %w", err)
	}

	for _, lesson := range course.Lessons {
		if err := r.putLesson(ctx, course.ID, lesson); err != nil {
			return err
		}
	}

	return nil
}

// putLesson writes a single lesson row tagged with its owning course id
func (r *coursesRepository) putLesson(ctx context.Context, courseID string, lesson models.Lesson) error {
	resources, err := json.Marshal(lesson.Resources)
	if err != nil {
		return fmt.Errorf("failed to marshal lesson resources: %w", err)
	}

	var quiz sql.NullString
	if lesson.Quiz != nil {
		data, err := json.Marshal(lesson.Quiz)
		if err != nil {
			return fmt.Errorf("failed to marshal lesson quiz: %w", err)
		}
		quiz = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT OR REPLACE INTO lessons
			(id, course_id, title, description, content, estimated_duration, resources, quiz)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		lesson.ID,
		courseID,
		lesson.Title,
		lesson.Description,
		lesson.Content,
		lesson.EstimatedDuration,
		string(resources),
		quiz,
	)
	if err != nil {
		r.logger.Error("failed to put lesson", zap.Error(err), zap.String("lesson_id", lesson.ID))
		return fmt.Errorf("failed to put lesson: %w", err)
	}

	return nil
}

// GetByID retrieves a cached course with its lessons re-attached via
// the lessons-by-course index. Returns (nil, nil) when no course record
// exists.
func (r *coursesRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT id, title, description, category, difficulty, estimated_duration, tags, image_url, cached_at
		FROM courses
		WHERE id = ?
	`

	var course models.Course
	var tags string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.Difficulty,
		&course.EstimatedDuration,
		&tags,
		&course.ImageURL,
		&course.CachedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to query course", zap.Error(err), zap.String("course_id", id))
		return nil, fmt.Errorf("failed to query course: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &course.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal course tags: %w", err)
	}

	lessons, err := r.getLessonsByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Lessons = lessons

	return &course, nil
}

// getLessonsByCourse retrieves all lessons indexed by the owning course id
func (r *coursesRepository) getLessonsByCourse(ctx context.Context, courseID string) ([]models.Lesson, error) {
	query := `
		SELECT id, course_id, title, description, content, estimated_duration, resources, quiz
		FROM lessons
		WHERE course_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		r.logger.Error("failed to query lessons", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		var resources string
		var quiz sql.NullString
		if err := rows.Scan(
			&lesson.ID,
			&lesson.CourseID,
			&lesson.Title,
			&lesson.Description,
			&lesson.Content,
			&lesson.EstimatedDuration,
			&resources,
			&quiz,
		); err != nil {
			r.logger.Error("failed to scan lesson", zap.Error(err))
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}

		if err := json.Unmarshal([]byte(resources), &lesson.Resources); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lesson resources: %w", err)
		}
		if quiz.Valid {
			lesson.Quiz = &models.Quiz{}
			if err := json.Unmarshal([]byte(quiz.String), lesson.Quiz); err != nil {
				return nil, fmt.Errorf("failed to unmarshal lesson quiz: %w", err)
			}
		}

		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// ListCached retrieves the identity and cache timestamp of every cached
// course, used by the eviction scan
func (r *coursesRepository) ListCached(ctx context.Context) ([]models.CachedCourseInfo, error) {
	query := `
		SELECT id, cached_at
		FROM courses
		ORDER BY cached_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query cached courses", zap.Error(err))
		return nil, fmt.Errorf("failed to query cached courses: %w", err)
	}
	defer rows.Close()

	var infos []models.CachedCourseInfo
	for rows.Next() {
		var info models.CachedCourseInfo
		if err := rows.Scan(&info.ID, &info.CachedAt); err != nil {
			r.logger.Error("failed to scan cached course", zap.Error(err))
			return nil, fmt.Errorf("failed to scan cached course: %w", err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return infos, nil
}

// Delete removes a cached course and all of its indexed lessons.
// Deleting an absent course is not an error.
func (r *coursesRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM lessons WHERE course_id = ?", id); err != nil {
		r.logger.Error("failed to delete course lessons", zap.Error(err), zap.String("course_id", id))
		return fmt.Errorf("failed to delete course lessons: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id); err != nil {
		r.logger.Error("failed to delete course", zap.Error(err), zap.String("course_id", id))
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return nil
}

// Clear empties the courses and lessons tables
func (r *coursesRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM lessons"); err != nil {
		return fmt.Errorf("failed to clear lessons: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM courses"); err != nil {
		return fmt.Errorf("failed to clear courses: %w", err)
	}
	return nil
}
