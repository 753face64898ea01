package qbank

import "time"

// Mode says whether a question belongs to the practice pool or the exam pool.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeExam     Mode = "exam"
)

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	return m == ModePractice || m == ModeExam
}

// Question type enum values produced by the generator.
const (
	TypeMultipleChoice      = "MULTIPLE_CHOICE"
	TypeMoreThanOneChoice   = "MORE_THAN_ONE_MULTIPLE_CHOICE"
	TypeCodeAnalysisChoice  = "CODE_ANALYSIS_MULTIPLE_CHOICE"
	TypeCodeAnalysisTextual = "CODE_ANALYSIS_TEXTUAL"

	defaultContentType      = "MARKDOWN"
	defaultQuestionLanguage = "python"
)

// Subject is the top-level stored document: a named collection of topics.
// Version is an optimistic-lock counter; every save is conditional on the
// version read at load time.
type Subject struct {
	ID        string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string    `bson:"subject_name" json:"subject_name"`
	Topics    []Topic   `bson:"topics" json:"topics"`
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Topic is a named collection of units within a subject.
type Topic struct {
	ID    string `bson:"topic_id" json:"topic_id"`
	Name  string `bson:"topic_name" json:"topic_name"`
	Units []Unit `bson:"units" json:"units"`
}

// Unit holds reading material, the learning outcomes derived from it, and
// the question pool.
type Unit struct {
	Name             string   `bson:"unit_name" json:"unit_name"`
	ReadingMaterial  string   `bson:"readingMaterial" json:"readingMaterial"`
	LearningOutcomes []string `bson:"learningOutcomes" json:"learningOutcomes"`
	MCQs             []MCQ    `bson:"mcqs" json:"mcqs"`
}

// MCQ is a single stored question, base or variant.
type MCQ struct {
	QuestionID     string          `bson:"question_id" json:"question_id"`
	QuestionKey    string          `bson:"question_key" json:"question_key"`
	IsBase         bool            `bson:"is_base" json:"is_base"`
	BaseQuestionID string          `bson:"base_question_id,omitempty" json:"base_question_id,omitempty"`
	IsCode         bool            `bson:"isCode" json:"isCode"`
	Language       string          `bson:"language,omitempty" json:"language,omitempty"`
	Mode           Mode            `bson:"mode" json:"mode"`
	CoreConcept    string          `bson:"core_concept" json:"core_concept"`
	Toughness      string          `bson:"toughness" json:"toughness"`
	Skills         []string        `bson:"skills" json:"skills"`
	QuestionType   string          `bson:"question_type" json:"question_type"`
	Question       QuestionContent `bson:"question" json:"question"`
	Options        []Option        `bson:"options" json:"options"`
	Explanation    Explanation     `bson:"explanation_for_answer" json:"explanation_for_answer"`
}

// QuestionContent is the question text plus presentation metadata.
type QuestionContent struct {
	Content     string   `bson:"content" json:"content"`
	CodeSnippet string   `bson:"code_snippet,omitempty" json:"code_snippet,omitempty"`
	ContentType string   `bson:"content_type" json:"content_type"`
	TagNames    []string `bson:"tag_names" json:"tag_names"`
}

// Option is one answer choice. IsCorrect is always stored explicitly; a
// candidate option missing the field decodes to false.
type Option struct {
	Content   string `bson:"content" json:"content"`
	IsCorrect bool   `bson:"is_correct" json:"is_correct"`
}

// Explanation is the rationale shown after answering.
type Explanation struct {
	Content string `bson:"content" json:"content"`
}

// Generated is a raw question candidate as parsed from the AI collaborator's
// JSON payload, before normalization stamps identity and provenance.
type Generated struct {
	CoreConcept  string          `json:"core_concept"`
	QuestionKey  string          `json:"question_key"`
	BloomLevel   string          `json:"bloom_level"`
	Skills       []string        `json:"skills"`
	Toughness    string          `json:"toughness"`
	QuestionType string          `json:"question_type"`
	Question     QuestionContent `json:"question"`
	Options      []Option        `json:"options"`
	Explanation  Explanation     `json:"explanation_for_answer"`
}

/// SubjectSummary is the projected shape returned by subject listings: names
// only, no reading material or questions.
type SubjectSummary struct {
	ID     string         `bson:"_id,omitempty" json:"_id,omitempty"`
	Name   string         `bson:"subject_name" json:"subject_name"`
	Topics []TopicSummary `bson:"topics" json:"topics"`
}

// TopicSummary is the projected topic shape in a SubjectSummary.
type TopicSummary struct {
	ID    string        `bson:"topic_id" json:"topic_id"`
	Name  string        `bson:"topic_name" json:"topic_name"`
	Units []UnitSummary `bson:"units" json:"units"`
}

// UnitSummary is the projected unit shape in a TopicSummary.
type UnitSummary struct {
	Name string `bson:"unit_name" json:"unit_name"`
}

// BaseCount returns the number of base questions in the unit.
func (u *Unit) BaseCount() int {
	n := 0
	for _, m := range u.MCQs {
		if m.IsBase {
			n++
		}
	}
	return n
}

// VariantCount returns the number of stored variants derived from the base
// question with the given id.
func (u *Unit) VariantCount(baseQuestionID string) int {
	n := 0
	for _, m := range u.MCQs {
		if !m.IsBase && m.BaseQuestionID == baseQuestionID {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the subject. Stores hand out clones so
// callers can mutate trees without aliasing stored state.
func (s *Subject) Clone() *Subject {
	if s == nil {
		return nil
	}
	out := *s
	out.Topics = make([]Topic, len(s.Topics))
	for i, t := range s.Topics {
		out.Topics[i] = t.clone()
	}
	return &out
}

func (t Topic) clone() Topic {
	out := t
	out.Units = make([]Unit, len(t.Units))
	for i, u := range t.Units {
		out.Units[i] = u.clone()
	}
	return out
}

func (u Unit) clone() Unit {
	out := u
	out.LearningOutcomes = append([]string(nil), u.LearningOutcomes...)
	out.MCQs = make([]MCQ, len(u.MCQs))
	for i, m := range u.MCQs {
		out.MCQs[i] = m.clone()
	}
	return out
}

func (m MCQ) clone() MCQ {
	out := m
	out.Skills = append([]string(nil), m.Skills...)
	out.Options = append([]Option(nil), m.Options...)
	out.Question.TagNames = append([]string(nil), m.Question.TagNames...)
	return out
}
