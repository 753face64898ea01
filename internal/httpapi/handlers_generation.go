package httpapi

import (
	"net/http"
	"strings"

	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

func (a *API) handleGenerateOutcomes(w http.ResponseWriter, r *http.Request) {
	var req generateOutcomesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w, "readingMaterial", req.ReadingMaterial) {
		return
	}

	outcomes, err := a.lifecycle.GenerateLearningOutcomes(r.Context(), req.ReadingMaterial, req.IsCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if outcomes == nil {
		outcomes = []string{}
	}
	writeJSON(w, http.StatusOK, generateOutcomesResponse{LearningOutcomes: outcomes})
}

func (a *API) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req generateQuestionsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w,
		"subjectName", req.SubjectName,
		"topicName", req.TopicName,
		"unitName", req.UnitName,
		"readingMaterial", req.ReadingMaterial,
	) {
		return
	}
	if len(req.LearningOutcomes) == 0 {
		writeValidationError(w, "learningOutcomes must not be empty")
		return
	}

	mode := qbank.Mode(strings.TrimSpace(req.Mode))
	if !mode.Valid() {
		writeValidationError(w, "mode must be practice or exam")
		return
	}

	subject, err := a.lifecycle.GenerateQuestions(r.Context(), qbank.GenerateQuestionsRequest{
		UnitRef:          unitRef(req.SubjectName, req.TopicName, req.UnitName),
		ReadingMaterial:  req.ReadingMaterial,
		LearningOutcomes: req.LearningOutcomes,
		Toughness:        strings.TrimSpace(req.Toughness),
		Mode:             mode,
		IsCode:           req.IsCode,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	a.invalidateSubjectList(r.Context())
	writeJSON(w, http.StatusOK, subject)
}

func (a *API) handleGenerateVariants(w http.ResponseWriter, r *http.Request) {
	var req generateVariantsRequest
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
	if req.NumVariants <= 0 {
		writeValidationError(w, "numVariants must be a positive integer")
		return
	}

	subject, produced, err := a.lifecycle.GenerateVariants(r.Context(), qbank.GenerateVariantsRequest{
		UnitRef:     unitRef(req.SubjectName, req.TopicName, req.UnitName),
		NumVariants: req.NumVariants,
		IsCode:      req.IsCode,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, variantsResponse{Subject: subject, Produced: produced})
}
