package httpapi

import (
	"net/http"
	"strings"

	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

func (a *API) handleDeleteMCQ(w http.ResponseWriter, r *http.Request) {
	var req deleteMCQRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w,
		"subjectName", req.SubjectName,
		"topicName", req.TopicName,
		"unitName", req.UnitName,
		"questionId", req.QuestionID,
	) {
		return
	}

	subject, err := a.lifecycle.DeleteMCQ(r.Context(),
		unitRef(req.SubjectName, req.TopicName, req.UnitName),
		strings.TrimSpace(req.QuestionID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (a *API) handleDeleteMCQsByFilter(w http.ResponseWriter, r *http.Request) {
	var req deleteByFilterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w,
		"subjectName", req.SubjectName,
		"topicName", req.TopicName,
		"unitName", req.UnitName,
		"filter", req.Filter,
	) {
		return
	}

	subject, removed, err := a.lifecycle.DeleteMCQsByFilter(r.Context(),
		unitRef(req.SubjectName, req.TopicName, req.UnitName),
		qbank.DeleteFilter(strings.TrimSpace(req.Filter)))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteByFilterResponse{Subject: subject, Removed: removed})
}

func (a *API) handleUpdateMCQ(w http.ResponseWriter, r *http.Request) {
	var req updateMCQRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w,
		"subjectName", req.SubjectName,
		"topicName", req.TopicName,
		"unitName", req.UnitName,
		"mcq.question_id", req.MCQ.QuestionID,
	) {
		return
	}

	subject, err := a.lifecycle.UpdateMCQ(r.Context(),
		unitRef(req.SubjectName, req.TopicName, req.UnitName), req.MCQ)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}
