package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/learnsphere/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockCoursesRepo is an in-memory mock of CoursesRepository
type mockCoursesRepo struct {
	courses map[string]*models.Course
	infos   []models.CachedCourseInfo
	deleted []string
	cleared bool
	putErr  error
	getErr  error
	listErr error
}

func newMockCoursesRepo() *mockCoursesRepo {
	return &mockCoursesRepo{courses: make(map[string]*models.Course)}
}

func (m *mockCoursesRepo) Put(ctx context.Context, course *models.Course) error {
	if m.putErr != nil {
		return m.putErr
	}
	c := *course
	m.courses[course.ID] = &c
	return nil
}

func (m *mockCoursesRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.courses[id], nil
}

func (m *mockCoursesRepo) ListCached(ctx context.Context) ([]models.CachedCourseInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.infos, nil
}

func (m *mockCoursesRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.courses, id)
	return nil
}

func (m *mockCoursesRepo) Clear(ctx context.Context) error {
	m.cleared = true
	m.courses = make(map[string]*models.Course)
	return nil
}

// mockUsersRepo is an in-memory mock of UsersRepository
type mockUsersRepo struct {
	users   map[string]*models.User
	cleared bool
	putErr  error
}

func newMockUsersRepo() *mockUsersRepo {
	return &mockUsersRepo{users: make(map[string]*models.User)}
}

func (m *mockUsersRepo) Put(ctx context.Context, user *models.User) error {
	if m.putErr != nil {
		return m.putErr
	}
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *mockUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.users[id], nil
}

func (m *mockUsersRepo) Clear(ctx context.Context) error {
	m.cleared = true
	m.users = make(map[string]*models.User)
	return nil
}

// mockMetadataRepo is an in-memory mock of MetadataRepository
type mockMetadataRepo struct {
	snapshot *models.CatalogSnapshot
	cleared  bool
	deleted  bool
	putErr   error
}

func (m *mockMetadataRepo) PutCatalog(ctx context.Context, snapshot *models.CatalogSnapshot) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.snapshot = snapshot
	return nil
}

func (m *mockMetadataRepo) GetCatalog(ctx context.Context) (*models.CatalogSnapshot, error) {
	return m.snapshot, nil
}

func (m *mockMetadataRepo) DeleteCatalog(ctx context.Context) error {
	m.deleted = true
	m.snapshot = nil
	return nil
}

func (m *mockMetadataRepo) Clear(ctx context.Context) error {
	m.cleared = true
	m.snapshot = nil
	return nil
}

// mockQueueClearer is a mock of QueueClearer
type mockQueueClearer struct {
	cleared bool
}

func (m *mockQueueClearer) Clear(ctx context.Context) error {
	m.cleared = true
	return nil
}

// mockRemoteCatalog is a mock of RemoteCatalog with per-course failures
type mockRemoteCatalog struct {
	courses        map[string]*models.Course
	failing        map[string]error
	recommended    []models.Course
	recommendedErr error
	catalog        []models.Course
	catalogErr     error
}

func newMockRemoteCatalog() *mockRemoteCatalog {
	return &mockRemoteCatalog{
		courses: make(map[string]*models.Course),
		failing: make(map[string]error),
	}
}

func (m *mockRemoteCatalog) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	if err, ok := m.failing[id]; ok {
		return nil, err
	}
	return m.courses[id], nil
}

func (m *mockRemoteCatalog) ListCourses(ctx context.Context, filters models.CourseFilters) ([]models.Course, error) {
	if m.catalogErr != nil {
		return nil, m.catalogErr
	}
	return m.catalog, nil
}

func (m *mockRemoteCatalog) GetRecommendedCourses(ctx context.Context, userID string, limit int) ([]models.Course, error) {
	if m.recommendedErr != nil {
		return nil, m.recommendedErr
	}
	if limit < len(m.recommended) {
		return m.recommended[:limit], nil
	}
	return m.recommended, nil
}

func setupCacheService(t *testing.T) (*cacheService, *mockCoursesRepo, *mockUsersRepo, *mockMetadataRepo, *mockQueueClearer, *mockRemoteCatalog) {
	t.Helper()
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	courses := newMockCoursesRepo()
	users := newMockUsersRepo()
	metadata := &mockMetadataRepo{}
	queue := &mockQueueClearer{}
	remote := newMockRemoteCatalog()

	svc := NewCacheService(courses, users, metadata, queue, remote, 3, 7*24*time.Hour, logger)
	return svc, courses, users, metadata, queue, remote
}

func remoteCourse(id string, lessons ...string) *models.Course {
	course := &models.Course{ID: id, Title: "Course " + id, Category: "programming"}
	for _, lessonID := range lessons {
		course.Lessons = append(course.Lessons, models.Lesson{ID: lessonID, CourseID: id})
	}
	return course
}

func TestCacheService_CacheEssentialContent(t *testing.T) {
	svc, courses, users, metadata, _, remote := setupCacheService(t)

	remote.courses["go-basics"] = remoteCourse("go-basics", "go-basics-l1")
	remote.courses["sql-101"] = remoteCourse("sql-101", "sql-101-l1")
	remote.recommended = []models.Course{*remoteCourse("rust-intro")}
	remote.catalog = []models.Course{
		*remoteCourse("go-basics"),
		*remoteCourse("sql-101"),
		*remoteCourse("rust-intro"),
	}

	user := &models.User{
		ID: "u1",
		Progress: models.Progress{
			CompletedLessons: []models.LessonRef{
				{CourseID: "go-basics", LessonID: "go-basics-l1"},
				{CourseID: "go-basics", LessonID: "go-basics-l2"},
				{CourseID: "sql-101", LessonID: "sql-101-l1"},
			},
		},
	}

	err := svc.CacheEssentialContent(context.Background(), user)

	require.NoError(t, err)
	assert.Contains(t, users.users, "u1")
	assert.Contains(t, courses.courses, "go-basics")
	assert.Contains(t, courses.courses, "sql-101")
	assert.Contains(t, courses.courses, "rust-intro")
	require.NotNil(t, metadata.snapshot)
	assert.Len(t, metadata.snapshot.Courses, 3)
	assert.False(t, metadata.snapshot.CapturedAt.IsZero())
}

func TestCacheService_CacheEssentialContent_PartialFailure(t *testing.T) {
	svc, courses, _, _, _, remote := setupCacheService(t)

	// Fetching the 2nd of 3 courses fails; the pass must still cache the
	// 1st and 3rd and succeed overall.
	remote.courses["c1"] = remoteCourse("c1")
	remote.failing["c2"] = errors.New("connection refused")
	remote.courses["c3"] = remoteCourse("c3")
	remote.catalog = []models.Course{*remoteCourse("c1")}

	user := &models.User{
		ID: "u1",
		Progress: models.Progress{
			CompletedLessons: []models.LessonRef{
				{CourseID: "c1", LessonID: "l1"},
				{CourseID: "c2", LessonID: "l2"},
				{CourseID: "c3", LessonID: "l3"},
			},
		},
	}

	err := svc.CacheEssentialContent(context.Background(), user)

	require.NoError(t, err)
	assert.Contains(t, courses.courses, "c1")
	assert.NotContains(t, courses.courses, "c2")
	assert.Contains(t, courses.courses, "c3")
}

func TestCacheService_CacheEssentialContent_TotalFailure(t *testing.T) {
	svc, _, _, _, _, remote := setupCacheService(t)

	remote.failing["c1"] = errors.New("connection refused")
	remote.recommendedErr = errors.New("connection refused")
	remote.catalogErr = errors.New("connection refused")

	user := &models.User{
		ID: "u1",
		Progress: models.Progress{
			CompletedLessons: []models.LessonRef{{CourseID: "c1", LessonID: "l1"}},
		},
	}

	err := svc.CacheEssentialContent(context.Background(), user)

	assert.Error(t, err)
}

func TestCacheService_CacheEssentialContent_MissingUserID(t *testing.T) {
	svc, _, _, _, _, _ := setupCacheService(t)

	err := svc.CacheEssentialContent(context.Background(), &models.User{})

	assert.Error(t, err)
}

func TestCacheService_CacheEssentialContent_StorageFault(t *testing.T) {
	svc, _, users, _, _, _ := setupCacheService(t)

	users.putErr = errors.New("database or disk is full")

	err := svc.CacheEssentialContent(context.Background(), &models.User{ID: "u1"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to cache user snapshot")
}

func TestCacheService_PrefetchCourse(t *testing.T) {
	tests := []struct {
		name          string
		courseID      string
		setup         func(*mockRemoteCatalog)
		expectedError bool
		expectCached  bool
	}{
		{
			name:     "success",
			courseID: "go-basics",
			setup: func(remote *mockRemoteCatalog) {
				remote.courses["go-basics"] = remoteCourse("go-basics", "l1", "l2")
			},
			expectCached: true,
		},
		{
			name:     "remote fetch error",
			courseID: "go-basics",
			setup: func(remote *mockRemoteCatalog) {
				remote.failing["go-basics"] = errors.New("connection refused")
			},
			expectedError: true,
		},
		{
			name:     "absent on remote",
			courseID: "gone",
			setup:    func(remote *mockRemoteCatalog) {},
		},
		{
			name:          "missing course id",
			courseID:      "",
			setup:         func(remote *mockRemoteCatalog) {},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, courses, _, _, _, remote := setupCacheService(t)
			tt.setup(remote)

			err := svc.PrefetchCourse(context.Background(), tt.courseID)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.expectCached {
				assert.Contains(t, courses.courses, tt.courseID)
			} else {
				assert.Empty(t, courses.courses)
			}
		})
	}
}

func TestCacheService_CleanupCache(t *testing.T) {
	svc, courses, _, metadata, _, _ := setupCacheService(t)

	now := time.Now().UTC()
	courses.infos = []models.CachedCourseInfo{
		{ID: "stale-course", CachedAt: now.Add(-8 * 24 * time.Hour)},
		{ID: "fresh-course", CachedAt: now.Add(-time.Hour)},
	}
	metadata.snapshot = &models.CatalogSnapshot{CapturedAt: now.Add(-8 * 24 * time.Hour)}

	err := svc.CleanupCache(context.Background(), 7*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, []string{"stale-course"}, courses.deleted)
	assert.True(t, metadata.deleted)
}

func TestCacheService_CleanupCache_ZeroMaxAge(t *testing.T) {
	svc, courses, _, metadata, _, _ := setupCacheService(t)

	// With maxAge 0 everything previously cached is evicted
	now := time.Now().UTC()
	courses.infos = []models.CachedCourseInfo{
		{ID: "web-dev-basics", CachedAt: now.Add(-time.Second)},
	}
	metadata.snapshot = &models.CatalogSnapshot{CapturedAt: now.Add(-time.Second)}

	err := svc.CleanupCache(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"web-dev-basics"}, courses.deleted)
	assert.True(t, metadata.deleted)
}

func TestCacheService_CleanupCache_FreshUntouched(t *testing.T) {
	svc, courses, _, metadata, _, _ := setupCacheService(t)

	now := time.Now().UTC()
	courses.infos = []models.CachedCourseInfo{
		{ID: "fresh-course", CachedAt: now.Add(-time.Hour)},
	}
	metadata.snapshot = &models.CatalogSnapshot{CapturedAt: now.Add(-time.Hour)}

	err := svc.CleanupCache(context.Background(), 7*24*time.Hour)

	require.NoError(t, err)
	assert.Empty(t, courses.deleted)
	assert.False(t, metadata.deleted)
}

func TestCacheService_GetCourse_Absent(t *testing.T) {
	svc, _, _, _, _, _ := setupCacheService(t)

	course, err := svc.GetCourse(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, course)
}

func TestCacheService_Reset(t *testing.T) {
	svc, courses, users, metadata, queue, _ := setupCacheService(t)

	err := svc.Reset(context.Background())

	require.NoError(t, err)
	assert.True(t, courses.cleared)
	assert.True(t, users.cleared)
	assert.True(t, metadata.cleared)
	assert.True(t, queue.cleared)
}
