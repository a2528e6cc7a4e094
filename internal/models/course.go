package models

import "time"

// Difficulty represents the difficulty level of a course or lesson
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ResourceType represents the type of a lesson resource
type ResourceType string

const (
	ResourceTypeArticle  ResourceType = "article"
	ResourceTypeVideo    ResourceType = "video"
	ResourceTypePractice ResourceType = "practice"
	ResourceTypeDocument ResourceType = "document"
)

// Course represents a course cached in the local store.
// A course record is overwritten wholesale on re-cache; there are no
// partial-update semantics.
type Course struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	Difficulty        Difficulty `json:"difficulty"`
	EstimatedDuration int        `json:"estimatedDuration"` // minutes
	Tags              []string   `json:"tags"`
	ImageURL          string     `json:"imageUrl"`
	Lessons           []Lesson   `json:"lessons"`
	CachedAt          time.Time  `json:"cachedAt,omitempty"`
}

// Lesson represents a lesson belonging to a course
type Lesson struct {
	ID                string     `json:"id"`
	CourseID          string     `json:"courseId"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Content           string     `json:"content"`
	EstimatedDuration int        `json:"estimatedDuration"` // minutes
	Resources         []Resource `json:"resources"`
	Quiz              *Quiz      `json:"quiz,omitempty"`
}

// Resource represents supplementary material attached to a lesson
type Resource struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Type  ResourceType `json:"type"`
	URL   string       `json:"url"`
}

// Quiz represents an optional quiz attached to a lesson
type Quiz struct {
	ID           string     `json:"id"`
	Questions    []Question `json:"questions"`
	PassingScore int        `json:"passingScore"`
}

// Question represents a single multiple-choice quiz question
type Question struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	Explanation        string   `json:"explanation"`
}

// CourseSummary represents a lightweight course entry for catalog browsing
type CourseSummary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	ImageURL    string     `json:"imageUrl"`
}

// CatalogSnapshot represents the denormalized course catalog cached for
// offline browsing. Single row, overwritten on each full refresh.
type CatalogSnapshot struct {
	Courses    []CourseSummary `json:"courses"`
	CapturedAt time.Time       `json:"capturedAt"`
}

// CourseFilters represents optional filters for catalog queries against
// the remote store
type CourseFilters struct {
	Category   string
	Difficulty Difficulty
	Search     string
}

// CachedCourseInfo represents a cached course identity with its cache
// timestamp, used by the eviction scan
type CachedCourseInfo struct {
	ID       string    `json:"id"`
	CachedAt time.Time `json:"cachedAt"`
}
