package httpapi

import "github.com/harshaakurathi/newMCQ-backend/internal/qbank"

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type readyzResponse struct {
	Status   string            `json:"status"`
	Failures map[string]string `json:"failures,omitempty"`
}

type createSubjectRequest struct {
	SubjectName string `json:"subjectName"`
}

type createTopicRequest struct {
	SubjectName string `json:"subjectName"`
	TopicName   string `json:"topicName"`
}

type createUnitRequest struct {
	SubjectName string `json:"subjectName"`
	TopicName   string `json:"topicName"`
	UnitName    string `json:"unitName"`
}

type unitPathRequest struct {
	SubjectName string `json:"subjectName"`
	TopicName   string `json:"topicName"`
	UnitName    string `json:"unitName"`
}

type deleteTopicRequest struct {
	SubjectName string `json:"subjectName"`
	TopicName   string `json:"topicName"`
}

type generateOutcomesRequest struct {
	ReadingMaterial string `json:"readingMaterial"`
	IsCode          bool   `json:"isCode"`
}

type generateOutcomesResponse struct {
	LearningOutcomes []string `json:"learningOutcomes"`
}

type generateQuestionsRequest struct {
	SubjectName      string   `json:"subjectName"`
	TopicName        string   `json:"topicName"`
	UnitName         string   `json:"unitName"`
	ReadingMaterial  string   `json:"readingMaterial"`
	LearningOutcomes []string `json:"learningOutcomes"`
	Toughness        string   `json:"toughness"`
	Mode             string   `json:"mode"`
	IsCode           bool     `json:"isCode"`
}

type generateVariantsRequest struct {
	SubjectName string `json:"subjectName"`
	TopicName   string `json:"topicName"`
	UnitName    string `json:"unitName"`
	NumVariants int    `json:"numVariants"`
	IsCode      bool   `json:"isCode"`
}

type variantsResponse struct {
	Subject  *qbank.Subject `json:"subject"`
	Produced int            `json:"variantsProduced"`
}

type deleteMCQRequest struct {
	SubjectName string `json:"subjectName"`
	TopicName   string `json:"topicName"`
	UnitName    string `json:"unitName"`
	QuestionID  string `json:"questionId"`
}

type deleteByFilterRequest struct {
	SubjectName string `json:"subjectName"`
	TopicName   string `json:"topicName"`
	UnitName    string `json:"unitName"`
	Filter      string `json:"filter"`
}

type deleteByFilterResponse struct {
	Subject *qbank.Subject `json:"subject"`
	Removed int            `json:"removed"`
}

type updateMCQRequest struct {
	SubjectName string    `json:"subjectName"`
	TopicName   string    `json:"topicName"`
	UnitName    string    `json:"unitName"`
	MCQ         qbank.MCQ `json:"mcq"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

type executeCodeRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
}
