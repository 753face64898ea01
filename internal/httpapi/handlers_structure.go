package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/harshaakurathi/newMCQ-backend/internal/platform/cache"
	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

func (a *API) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if a.cache != nil {
		var cached []qbank.SubjectSummary
		err := a.cache.GetJSON(ctx, subjectListCacheKey, &cached)
		if err == nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("subject list cache read failed", "error", err)
		}
	}

	subjects, err := a.lifecycle.ListSubjects(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if subjects == nil {
		subjects = []qbank.SubjectSummary{}
	}

	if a.cache != nil {
		if err := a.cache.SetJSON(ctx, subjectListCacheKey, subjects, subjectListTTL); err != nil {
			slog.Warn("subject list cache write failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, subjects)
}

func (a *API) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req createSubjectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w, "subjectName", req.SubjectName) {
		return
	}

	subject, err := a.lifecycle.CreateSubject(r.Context(), strings.TrimSpace(req.SubjectName))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	a.invalidateSubjectList(r.Context())
	writeJSON(w, http.StatusCreated, subject)
}

func (a *API) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("subjectName")
	if !requireFields(w, "subjectName", name) {
		return
	}

	if err := a.lifecycle.DeleteSubject(r.Context(), name); err != nil {
		writeServiceError(w, err)
		return
	}

	a.invalidateSubjectList(r.Context())
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}

func (a *API) handleDeleteSubjectByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("subjectId")
	if !requireFields(w, "subjectId", id) {
		return
	}

	if err := a.lifecycle.DeleteSubjectByID(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	a.invalidateSubjectList(r.Context())
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}

func (a *API) handleListTopics(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("subjectName")
	if !requireFields(w, "subjectName", name) {
		return
	}

	topics, err := a.lifecycle.Topics(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if topics == nil {
		topics = []qbank.Topic{}
	}
	writeJSON(w, http.StatusOK, topics)
}

func (a *API) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w, "subjectName", req.SubjectName, "topicName", req.TopicName) {
		return
	}

	subject, err := a.lifecycle.CreateTopic(r.Context(),
		strings.TrimSpace(req.SubjectName), strings.TrimSpace(req.TopicName))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	a.invalidateSubjectList(r.Context())
	writeJSON(w, http.StatusCreated, subject)
}

func (a *API) handleDeleteTopicByName(w http.ResponseWriter, r *http.Request) {
	var req deleteTopicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w, "subjectName", req.SubjectName, "topicName", req.TopicName) {
		return
	}

	err := a.lifecycle.DeleteTopic(r.Context(),
		strings.TrimSpace(req.SubjectName), strings.TrimSpace(req.TopicName))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	a.invalidateSubjectList(r.Context())
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}

func (a *API) handleDeleteTopicByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("topicId")
	if !requireFields(w, "topicId", id) {
		return
	}

	if err := a.lifecycle.DeleteTopicByID(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	a.invalidateSubjectList(r.Context())
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}

func (a *API) handleTopicMCQs(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("topicId")
	if !requireFields(w, "topicId", id) {
		return
	}

	mcqs, err := a.lifecycle.MCQsForTopic(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if mcqs == nil {
		mcqs = []qbank.MCQ{}
	}
	writeJSON(w, http.StatusOK, mcqs)
}

func (a *API) handleCreateUnit(w http.ResponseWriter, r *http.Request) {
	var req createUnitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w,
		"subjectName", req.SubjectName,
		"topicName", req.TopicName,
		"unitName", req.UnitName,
	) {
		return
	}

	subject, err := a.lifecycle.CreateUnit(r.Context(),
		strings.TrimSpace(req.SubjectName),
		strings.TrimSpace(req.TopicName),
		strings.TrimSpace(req.UnitName))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	a.invalidateSubjectList(r.Context())
	writeJSON(w, http.StatusCreated, subject)
}

func (a *API) handleGetUnit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subjectName := q.Get("subjectName")
	topicName := q.Get("topicName")
	unitName := q.Get("unitName")
	if !requireFields(w,
		"subjectName", subjectName,
		"topicName", topicName,
		"unitName", unitName,
	) {
		return
	}

	unit, err := a.lifecycle.Unit(r.Context(), unitRef(subjectName, topicName, unitName))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unit)
}

func (a *API) handleDeleteUnit(w http.ResponseWriter, r *http.Request) {
	var req unitPathRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w,
		"subjectName", req.SubjectName,
		"topicName", req.TopicName,
		"unitName", req.UnitName,
	) {
		return
	}

	err := a.lifecycle.DeleteUnit(r.Context(), unitRef(req.SubjectName, req.TopicName, req.UnitName))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	a.invalidateSubjectList(r.Context())
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}
