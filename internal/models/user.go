package models

import "time"

// LearningStyle represents the preferred learning style of a user
type LearningStyle string

const (
	LearningStyleVisual      LearningStyle = "visual"
	LearningStyleAuditory    LearningStyle = "auditory"
	LearningStyleReading     LearningStyle = "reading"
	LearningStyleKinesthetic LearningStyle = "kinesthetic"
)

// User represents a snapshot of the authenticated user's profile,
// preferences and progress. Overwritten on every profile mutation that
// should survive offline.
type User struct {
	ID          string              `json:"id" validate:"required"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Preferences LearningPreferences `json:"preferences"`
	Progress    Progress            `json:"progress"`
	JoinedAt    time.Time           `json:"joinedAt"`
}

// LearningPreferences holds the user's learning configuration
type LearningPreferences struct {
	Interests     []string      `json:"interests"`
	LearningStyle LearningStyle `json:"learningStyle"`
	Difficulty    Difficulty    `json:"difficulty"`
	DailyGoal     int           `json:"dailyGoal"` // minutes
}

// Progress holds the user's gamified learning progress
type Progress struct {
	StreakDays       int         `json:"streakDays"`
	LastActive       time.Time   `json:"lastActive"`
	CompletedLessons []LessonRef `json:"completedLessons"`
	Points           int         `json:"points"`
	Badges           []Badge     `json:"badges"`
}

// LessonRef identifies a completed lesson together with its owning
// course. The course id is carried explicitly rather than being parsed
// out of the lesson id's textual shape.
type LessonRef struct {
	CourseID string `json:"courseId"`
	LessonID string `json:"lessonId"`
}

// Badge represents an achievement earned by a user
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// InProgressCourseIDs returns the distinct set of course ids the user
// has completed at least one lesson in, preserving first-seen order.
func (p Progress) InProgressCourseIDs() []string {
	seen := make(map[string]struct{}, len(p.CompletedLessons))
	var ids []string
	for _, ref := range p.CompletedLessons {
		if ref.CourseID == "" {
			continue
		}
		if _, ok := seen[ref.CourseID]; ok {
			continue
		}
		seen[ref.CourseID] = struct{}{}
		ids = append(ids, ref.CourseID)
	}
	return ids
}
