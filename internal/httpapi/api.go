// Package httpapi exposes the question bank over HTTP/JSON.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/harshaakurathi/newMCQ-backend/internal/execution"
	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

// subjectListCacheKey names the cache entry for the subject list projection.
const subjectListCacheKey = "qb:subjects"

// subjectListTTL bounds staleness of the cached subject list.
const subjectListTTL = 30 * time.Second

// Cache is the slice of the cache client the API uses for the subject list.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// HealthChecker reports liveness of one dependency.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// API holds the handlers for every endpoint.
type API struct {
	lifecycle *qbank.Lifecycle
	exec      *execution.Client
	cache     Cache
	readiness map[string]HealthChecker
}

// Option configures an API.
type Option func(*API)

// WithCache enables subject-list caching.
func WithCache(c Cache) Option {
	return func(a *API) {
		a.cache = c
	}
}

// WithHealthChecker registers a dependency for the readiness probe.
func WithHealthChecker(name string, hc HealthChecker) Option {
	return func(a *API) {
		a.readiness[name] = hc
	}
}

// New creates the API around the lifecycle manager and execution client.
func New(lifecycle *qbank.Lifecycle, exec *execution.Client, opts ...Option) *API {
	a := &API{
		lifecycle: lifecycle,
		exec:      exec,
		readiness: make(map[string]HealthChecker),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Routes builds the HTTP router.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)

	mux.HandleFunc("GET /subjects", a.handleListSubjects)
	mux.HandleFunc("POST /subjects", a.handleCreateSubject)
	mux.HandleFunc("DELETE /subjects/{subjectName}", a.handleDeleteSubject)
	mux.HandleFunc("DELETE /subjects/id/{subjectId}", a.handleDeleteSubjectByID)
	mux.HandleFunc("GET /subjects/{subjectName}/topics", a.handleListTopics)
	mux.HandleFunc("GET /subjects/{subjectName}/export", a.handleExportSubject)

	mux.HandleFunc("POST /topics", a.handleCreateTopic)
	mux.HandleFunc("DELETE /topic", a.handleDeleteTopicByName)
	mux.HandleFunc("DELETE /topics/{topicId}", a.handleDeleteTopicByID)
	mux.HandleFunc("GET /topics/{topicId}/mcqs", a.handleTopicMCQs)

	mux.HandleFunc("POST /units", a.handleCreateUnit)
	mux.HandleFunc("GET /unit", a.handleGetUnit)
	mux.HandleFunc("DELETE /unit", a.handleDeleteUnit)

	mux.HandleFunc("POST /generate/learning-outcomes", a.handleGenerateOutcomes)
	mux.HandleFunc("POST /generate/questions", a.handleGenerateQuestions)
	mux.HandleFunc("POST /unit/generate-variants", a.handleGenerateVariants)

	mux.HandleFunc("PUT /unit/mcq", a.handleUpdateMCQ)
	mux.HandleFunc("DELETE /unit/mcq", a.handleDeleteMCQ)
	mux.HandleFunc("DELETE /unit/mcqs-by-filter", a.handleDeleteMCQsByFilter)

	mux.HandleFunc("POST /execute-code", a.handleExecuteCode)

	return mux
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	failures := map[string]string{}
	for name, hc := range a.readiness {
		if err := hc.HealthCheck(ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	if len(failures) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Status: "degraded", Failures: failures})
		return
	}
	writeJSON(w, http.StatusOK, readyzResponse{Status: "ready"})
}

// invalidateSubjectList drops the cached listing after any mutation.
func (a *API) invalidateSubjectList(ctx context.Context) {
	if a.cache == nil {
		return
	}
	_ = a.cache.Invalidate(ctx, subjectListCacheKey)
}
