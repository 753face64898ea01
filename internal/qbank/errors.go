package qbank

import "errors"

// Lookup failures are level-distinct so the HTTP layer can report exactly
// which name in the subject/topic/unit path failed to resolve.
var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrUnitNotFound    = errors.New("unit not found")
	ErrMCQNotFound     = errors.New("mcq not found")

	ErrSubjectExists = errors.New("a subject with this name already exists")
	ErrTopicExists   = errors.New("a topic with this name already exists in this subject")
	ErrUnitExists    = errors.New("a unit with this name already exists in this topic")

	// ErrNoBaseQuestions means a variant batch had no qualifying base
	// questions to generate from. Surfaced instead of a silent no-op.
	ErrNoBaseQuestions = errors.New("no base questions found to generate variants from")

	// ErrVersionConflict means the subject document changed between load and
	// save. The operation is safe to retry from scratch.
	ErrVersionConflict = errors.New("subject was modified concurrently, retry the operation")
)
