// Package remote provides the client for the remote document store API
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

// Client talks to the remote course/user document store over HTTP
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a new remote store client
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}

	return &Client{
		http:   c,
		logger: logger,
	}
}

// GetCourse retrieves a course with its lessons by id. Returns
// (nil, nil) when the remote store has no such course.
func (c *Client) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&course).
		SetPathParam("courseId", id).
		Get("/courses/{courseId}")
	if err != nil {
		c.logger.Error("failed to fetch course", zap.Error(err), zap.String("course_id", id))
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remote store returned status %d fetching course %s", resp.StatusCode(), id)
	}

	return &course, nil
}

// ListCourses retrieves the course catalog, optionally filtered by
// category, difficulty and a search term
func (c *Client) ListCourses(ctx context.Context, filters models.CourseFilters) ([]models.Course, error) {
	req := c.http.R().SetContext(ctx)
	if filters.Category != "" {
		req.SetQueryParam("category", filters.Category)
	}
	if filters.Difficulty != "" {
		req.SetQueryParam("difficulty", string(filters.Difficulty))
	}
	if filters.Search != "" {
		req.SetQueryParam("search", filters.Search)
	}

	var courses []models.Course
	resp, err := req.SetResult(&courses).Get("/courses")
	if err != nil {
		c.logger.Error("failed to list courses", zap.Error(err))
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remote store returned status %d listing courses", resp.StatusCode())
	}

	return courses, nil
}

// GetRecommendedCourses retrieves the recommended course set for a user
func (c *Client) GetRecommendedCourses(ctx context.Context, userID string, limit int) ([]models.Course, error) {
	var courses []models.Course
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&courses).
		SetPathParam("userId", userID).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		Get("/users/{userId}/recommendations")
	if err != nil {
		c.logger.Error("failed to fetch recommended courses", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to fetch recommended courses: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remote store returned status %d fetching recommendations", resp.StatusCode())
	}

	return courses, nil
}

// CreateDocument creates a document in the named remote collection
func (c *Client) CreateDocument(ctx context.Context, collection string, payload json.RawMessage) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(payload)).
		SetPathParam("collection", collection).
		Post("/{collection}")
	if err != nil {
		return fmt.Errorf("failed to create document in %s: %w", collection, err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote store returned status %d creating document in %s", resp.StatusCode(), collection)
	}
	return nil
}

// UpdateDocument updates a document in the named remote collection. The
// target document is addressed by the payload's id field.
func (c *Client) UpdateDocument(ctx context.Context, collection string, payload json.RawMessage) error {
	id, err := documentID(payload)
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(payload)).
		SetPathParam("collection", collection).
		SetPathParam("id", id).
		Put("/{collection}/{id}")
	if err != nil {
		return fmt.Errorf("failed to update document in %s: %w", collection, err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote store returned status %d updating document %s/%s", resp.StatusCode(), collection, id)
	}
	return nil
}

// DeleteDocument deletes a document from the named remote collection.
// The target document is addressed by the payload's id field.
func (c *Client) DeleteDocument(ctx context.Context, collection string, payload json.RawMessage) error {
	id, err := documentID(payload)
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetPathParam("id", id).
		Delete("/{collection}/{id}")
	if err != nil {
		return fmt.Errorf("failed to delete document from %s: %w", collection, err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote store returned status %d deleting document %s/%s", resp.StatusCode(), collection, id)
	}
	return nil
}

// documentID extracts the id field from an operation payload
func documentID(payload json.RawMessage) (string, error) {
	var doc struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "", fmt.Errorf("failed to parse operation payload: %w", err)
	}
	if doc.ID == "" {
		return "", fmt.Errorf("operation payload has no id field")
	}
	return doc.ID, nil
}
