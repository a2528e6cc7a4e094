package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

// CacheService is the interface that wraps the cache manager business logic.
type CacheService interface {
	// Method CacheEssentialContent caches the user snapshot, the user's in-progress
	// courses, a small recommended set and the catalog metadata snapshot.
	//
	// Individual course fetch failures are tolerated; the method returns an error
	// only when the local store refuses a write or every remote fetch failed.
	CacheEssentialContent(ctx context.Context, user *models.User) error
	// Method PrefetchCourse fetches and caches one course on demand.
	PrefetchCourse(ctx context.Context, courseID string) error
	// Method CleanupCache evicts the catalog snapshot and every cached course older
	// than maxAge, together with their indexed lessons.
	CleanupCache(ctx context.Context, maxAge time.Duration) error
	// Method DefaultMaxAge returns the configured cache expiry age.
	DefaultMaxAge() time.Duration
	// Method GetCourse reads a cached course with its lessons from the local store.
	// Returns (nil, nil) when the course is not cached.
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	// Method GetCatalog reads the cached catalog snapshot, or (nil, nil) if absent.
	GetCatalog(ctx context.Context) (*models.CatalogSnapshot, error)
	// Method GetUser reads the cached user snapshot, or (nil, nil) if absent.
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// Method SaveUser overwrites the cached user snapshot.
	SaveUser(ctx context.Context, user *models.User) error
	// Method Reset empties every table of the local store.
	Reset(ctx context.Context) error
}

// CacheHandler handles HTTP requests for the offline cache
type CacheHandler struct {
	BaseHandler
	service  CacheService
	validate *validator.Validate
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(svc CacheService, logger *zap.Logger) *CacheHandler {
	return &CacheHandler{
		service:     svc,
		validate:    validator.New(),
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all cache handler routes
func (h *CacheHandler) RegisterRoutes(r chi.Router) {
	r.Route("/cache", func(r chi.Router) {
		r.Post("/essential", h.CacheEssential)
		r.Post("/cleanup", h.Cleanup)
		r.Delete("/", h.Reset)
		r.Route("/courses/{courseId}", func(r chi.Router) {
			r.Post("/", h.Prefetch)
			r.Get("/", h.GetCourse)
		})
		r.Get("/catalog", h.GetCatalog)
		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Put("/", h.SaveUser)
		})
	})
}

// CacheEssential handles POST /api/v1/cache/essential
// @Summary Cache essential content
// @Description Cache the user snapshot, in-progress courses, recommendations and catalog metadata for offline use
// @Tags cache
// @Accept json
// @Produce json
// @Param user body models.User true "Authenticated user snapshot"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cache/essential [post]
func (h *CacheHandler) CacheEssential(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&user); err != nil {
		h.respondError(w, http.StatusBadRequest, "user id is required")
		return
	}

	if err := h.service.CacheEssentialContent(r.Context(), &user); err != nil {
		h.logger.Error("failed to cache essential content", zap.Error(err), zap.String("user_id", user.ID))
		h.respondError(w, http.StatusInternalServerError, "failed to cache essential content")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Prefetch handles POST /api/v1/cache/courses/{courseId}
// @Summary Prefetch a course
// @Description Fetch one course from the remote store and cache it with its lessons
// @Tags cache
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 204
// @Failure 500 {object} map[string]string
// @Router /cache/courses/{courseId} [post]
func (h *CacheHandler) Prefetch(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")

	if err := h.service.PrefetchCourse(r.Context(), courseID); err != nil {
		h.logger.Error("failed to prefetch course", zap.Error(err), zap.String("course_id", courseID))
		h.respondError(w, http.StatusInternalServerError, "failed to prefetch course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCourse handles GET /api/v1/cache/courses/{courseId}
// @Summary Get a cached course
// @Description Read a cached course with its lessons from the local store
// @Tags cache
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cache/courses/{courseId} [get]
func (h *CacheHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")

	course, err := h.service.GetCourse(r.Context(), courseID)
	if err != nil {
		h.logger.Error("failed to get cached course", zap.Error(err), zap.String("course_id", courseID))
		h.respondError(w, http.StatusInternalServerError, "failed to get cached course")
		return
	}
	if course == nil {
		h.respondError(w, http.StatusNotFound, "course not cached")
		return
	}

	h.respondJSON(w, http.StatusOK, course)
}

// GetCatalog handles GET /api/v1/cache/catalog
// @Summary Get the cached catalog
// @Description Read the cached course catalog snapshot used for offline browsing
// @Tags cache
// @Produce json
// @Success 200 {object} models.CatalogSnapshot
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cache/catalog [get]
func (h *CacheHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.GetCatalog(r.Context())
	if err != nil {
		h.logger.Error("failed to get catalog snapshot", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get catalog snapshot")
		return
	}
	if snapshot == nil {
		h.respondError(w, http.StatusNotFound, "catalog not cached")
		return
	}

	h.respondJSON(w, http.StatusOK, snapshot)
}

// GetUser handles GET /api/v1/cache/users/{userId}
// @Summary Get the cached user snapshot
// @Tags cache
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cache/users/{userId} [get]
func (h *CacheHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get cached user", zap.Error(err), zap.String("user_id", userID))
		h.respondError(w, http.StatusInternalServerError, "failed to get cached user")
		return
	}
	if user == nil {
		h.respondError(w, http.StatusNotFound, "user not cached")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// SaveUser handles PUT /api/v1/cache/users/{userId}
// @Summary Save the user snapshot
// @Description Overwrite the cached user snapshot so profile mutations survive offline
// @Tags cache
// @Accept json
// @Param userId path string true "User ID"
// @Param user body models.User true "User snapshot"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cache/users/{userId} [put]
func (h *CacheHandler) SaveUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if user.ID == "" {
		user.ID = userID
	}
	if user.ID != userID {
		h.respondError(w, http.StatusBadRequest, "user id mismatch")
		return
	}

	if err := h.service.SaveUser(r.Context(), &user); err != nil {
		h.logger.Error("failed to save user snapshot", zap.Error(err), zap.String("user_id", userID))
		h.respondError(w, http.StatusInternalServerError, "failed to save user snapshot")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Cleanup handles POST /api/v1/cache/cleanup
// @Summary Evict stale cache entries
// @Description Evict the catalog snapshot and cached courses older than the max age
// @Tags cache
// @Produce json
// @Param maxAgeHours query int false "Override the configured max age, in hours"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cache/cleanup [post]
func (h *CacheHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	maxAge := h.service.DefaultMaxAge()
	if param := r.URL.Query().Get("maxAgeHours"); param != "" {
		hours, err := strconv.Atoi(param)
		if err != nil || hours < 0 {
			h.respondError(w, http.StatusBadRequest, "invalid maxAgeHours parameter")
			return
		}
		maxAge = time.Duration(hours) * time.Hour
	}

	if err := h.service.CleanupCache(r.Context(), maxAge); err != nil {
		h.logger.Error("failed to clean up cache", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to clean up cache")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reset handles DELETE /api/v1/cache
// @Summary Clear the local store
// @Description Empty every table of the local store, used on logout/reset
// @Tags cache
// @Success 204
// @Failure 500 {object} map[string]string
// @Router /cache [delete]
func (h *CacheHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		h.logger.Error("failed to reset local store", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to reset local store")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
