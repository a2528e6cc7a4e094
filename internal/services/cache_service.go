package services

import (
	"context"
	"fmt"
	"time"

	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

// CoursesRepository is the interface that wraps course table data access
// in the local store
type CoursesRepository interface {
	// Put writes/overwrites a course record by id and writes each of its
	// lessons into the lessons table tagged with the course id.
	Put(ctx context.Context, course *models.Course) error
	// GetByID returns the course with its lessons re-attached via the
	// lessons-by-course index, or (nil, nil) if no course record exists.
	GetByID(ctx context.Context, id string) (*models.Course, error)
	// ListCached returns the identity and cache timestamp of every cached course.
	ListCached(ctx context.Context) ([]models.CachedCourseInfo, error)
	// Delete removes a cached course and all of its indexed lessons.
	Delete(ctx context.Context, id string) error
	// Clear empties the courses and lessons tables.
	Clear(ctx context.Context) error
}

// UsersRepository is the interface that wraps user snapshot data access
// in the local store
type UsersRepository interface {
	Put(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Clear(ctx context.Context) error
}

// MetadataRepository is the interface that wraps the singleton catalog
// snapshot row in the local store
type MetadataRepository interface {
	PutCatalog(ctx context.Context, snapshot *models.CatalogSnapshot) error
	GetCatalog(ctx context.Context) (*models.CatalogSnapshot, error)
	DeleteCatalog(ctx context.Context) error
	Clear(ctx context.Context) error
}

// RemoteCatalog is the interface that wraps the read side of the remote
// course/user document store
type RemoteCatalog interface {
	// GetCourse returns a course with lessons, or (nil, nil) if the
	// remote store has no such course.
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context, filters models.CourseFilters) ([]models.Course, error)
	GetRecommendedCourses(ctx context.Context, userID string, limit int) ([]models.Course, error)
}

// QueueClearer is the interface that wraps clearing the sync queue,
// used by the full store reset
type QueueClearer interface {
	Clear(ctx context.Context) error
}

type cacheService struct {
	courses          CoursesRepository
	users            UsersRepository
	metadata         MetadataRepository
	queue            QueueClearer
	remote           RemoteCatalog
	recommendedCount int
	maxAge           time.Duration
	logger           *zap.Logger
}

// NewCacheService creates a new cache manager service
func NewCacheService(
	courses CoursesRepository,
	users UsersRepository,
	metadata MetadataRepository,
	queue QueueClearer,
	remote RemoteCatalog,
	recommendedCount int,
	maxAge time.Duration,
	logger *zap.Logger,
) *cacheService {
	return &cacheService{
		courses:          courses,
		users:            users,
		metadata:         metadata,
		queue:            queue,
		remote:           remote,
		recommendedCount: recommendedCount,
		maxAge:           maxAge,
		logger:           logger,
	}
}

// CacheEssentialContent caches the working set the app needs to stay
// usable offline: the user snapshot, every in-progress course, a small
// recommended set and the full catalog metadata snapshot.
//
// Fetch failures for individual courses are logged and skipped; the
// pass fails only when every remote fetch failed or the local store
// itself refused a write.
func (s *cacheService) CacheEssentialContent(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == "" {
		return fmt.Errorf("user id is required")
	}

	if err := s.users.Put(ctx, user); err != nil {
		s.logger.Error("failed to cache user snapshot", zap.Error(err), zap.String("user_id", user.ID))
		return fmt.Errorf("failed to cache user snapshot: %w", err)
	}

	var attempted, failed int

	// Cache in-progress courses derived from completed lessons
	for _, courseID := range user.Progress.InProgressCourseIDs() {
		attempted++
		if err := s.cacheCourse(ctx, courseID); err != nil {
			failed++
			s.logger.Warn("skipping in-progress course", zap.Error(err), zap.String("course_id", courseID))
		}
	}

	// Cache recommended courses
	attempted++
	recommended, err := s.remote.GetRecommendedCourses(ctx, user.ID, s.recommendedCount)
	if err != nil {
		failed++
		s.logger.Warn("skipping recommended courses", zap.Error(err), zap.String("user_id", user.ID))
	} else {
		for _, course := range recommended {
			if err := s.courses.Put(ctx, &course); err != nil {
				s.logger.Error("failed to cache recommended course", zap.Error(err), zap.String("course_id", course.ID))
				return fmt.Errorf("failed to cache recommended course: %w", err)
			}
		}
	}

	// Cache the course catalog metadata snapshot
	attempted++
	catalog, err := s.remote.ListCourses(ctx, models.CourseFilters{})
	if err != nil {
		failed++
		s.logger.Warn("skipping catalog snapshot", zap.Error(err))
	} else {
		snapshot := &models.CatalogSnapshot{
			Courses:    make([]models.CourseSummary, 0, len(catalog)),
			CapturedAt: time.Now().UTC(),
		}
		for _, course := range catalog {
			snapshot.Courses = append(snapshot.Courses, models.CourseSummary{
				ID:          course.ID,
				Title:       course.Title,
				Description: course.Description,
				Category:    course.Category,
				Difficulty:  course.Difficulty,
				ImageURL:    course.ImageURL,
			})
		}
		if err := s.metadata.PutCatalog(ctx, snapshot); err != nil {
			s.logger.Error("failed to cache catalog snapshot", zap.Error(err))
			return fmt.Errorf("failed to cache catalog snapshot: %w", err)
		}
	}

	if attempted > 0 && failed == attempted {
		return fmt.Errorf("failed to cache any essential content")
	}

	return nil
}

// PrefetchCourse fetches and caches one course on demand
func (s *cacheService) PrefetchCourse(ctx context.Context, courseID string) error {
	if courseID == "" {
		return fmt.Errorf("course id is required")
	}

	if err := s.cacheCourse(ctx, courseID); err != nil {
		s.logger.Error("failed to prefetch course", zap.Error(err), zap.String("course_id", courseID))
		return fmt.Errorf("failed to prefetch course: %w", err)
	}

	return nil
}

// cacheCourse fetches a course from the remote store and writes it into
// the local store. A course the remote store no longer has is skipped
// without error.
func (s *cacheService) cacheCourse(ctx context.Context, courseID string) error {
	course, err := s.remote.GetCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to fetch course %s: %w", courseID, err)
	}
	if course == nil {
		s.logger.Debug("course not found on remote store", zap.String("course_id", courseID))
		return nil
	}

	if err := s.courses.Put(ctx, course); err != nil {
		return fmt.Errorf("failed to store course %s: %w", courseID, err)
	}

	return nil
}

// CleanupCache evicts the catalog snapshot and every cached course (with
// its lessons) whose cache timestamp is older than maxAge. Linear scan,
// absolute-age expiry.
func (s *cacheService) CleanupCache(ctx context.Context, maxAge time.Duration) error {
	now := time.Now().UTC()

	catalog, err := s.metadata.GetCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog snapshot: %w", err)
	}
	if catalog != nil && now.Sub(catalog.CapturedAt) > maxAge {
		if err := s.metadata.DeleteCatalog(ctx); err != nil {
			return fmt.Errorf("failed to evict catalog snapshot: %w", err)
		}
		s.logger.Info("evicted stale catalog snapshot", zap.Time("captured_at", catalog.CapturedAt))
	}

	infos, err := s.courses.ListCached(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cached courses: %w", err)
	}

	var evicted int
	for _, info := range infos {
		if now.Sub(info.CachedAt) <= maxAge {
			continue
		}
		if err := s.courses.Delete(ctx, info.ID); err != nil {
			return fmt.Errorf("failed to evict course %s: %w", info.ID, err)
		}
		evicted++
	}

	if evicted > 0 {
		s.logger.Info("evicted stale courses", zap.Int("count", evicted), zap.Duration("max_age", maxAge))
	}

	return nil
}

// DefaultMaxAge returns the configured cache expiry age
func (s *cacheService) DefaultMaxAge() time.Duration {
	return s.maxAge
}

// GetCourse reads a cached course with its lessons from the local store
func (s *cacheService) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	if courseID == "" {
		return nil, fmt.Errorf("course id is required")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		s.logger.Error("failed to read cached course", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to read cached course: %w", err)
	}

	return course, nil
}

// GetCatalog reads the cached catalog snapshot from the local store
func (s *cacheService) GetCatalog(ctx context.Context) (*models.CatalogSnapshot, error) {
	snapshot, err := s.metadata.GetCatalog(ctx)
	if err != nil {
		s.logger.Error("failed to read catalog snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}

	return snapshot, nil
}

// GetUser reads the cached user snapshot from the local store
func (s *cacheService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to read cached user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to read cached user: %w", err)
	}

	return user, nil
}

// SaveUser overwrites the cached user snapshot
func (s *cacheService) SaveUser(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == "" {
		return fmt.Errorf("user id is required")
	}

	if err := s.users.Put(ctx, user); err != nil {
		s.logger.Error("failed to save user snapshot", zap.Error(err), zap.String("user_id", user.ID))
		return fmt.Errorf("failed to save user snapshot: %w", err)
	}

	return nil
}

// Reset empties every table of the local store, used for logout/reset
func (s *cacheService) Reset(ctx context.Context) error {
	if err := s.courses.Clear(ctx); err != nil {
		return fmt.Errorf("failed to reset local store: %w", err)
	}
	if err := s.users.Clear(ctx); err != nil {
		return fmt.Errorf("failed to reset local store: %w", err)
	}
	if err := s.metadata.Clear(ctx); err != nil {
		return fmt.Errorf("failed to reset local store: %w", err)
	}
	if err := s.queue.Clear(ctx); err != nil {
		return fmt.Errorf("failed to reset local store: %w", err)
	}

	s.logger.Info("local store cleared")
	return nil
}
