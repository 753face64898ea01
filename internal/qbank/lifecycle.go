package qbank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// QuestionPrompt is the context handed to the generator for a base-question
// batch. Mode and IsCode are explicit fields; nothing is inferred from
// request paths.
type QuestionPrompt struct {
	ReadingMaterial  string
	LearningOutcomes []string
	Toughness        string
	Mode             Mode
	IsCode           bool
}

// Generator is the AI collaborator as the lifecycle manager sees it: prompt
// context in, parsed candidates out, or failure.
type Generator interface {
	LearningOutcomes(ctx context.Context, readingMaterial string, isCode bool) ([]string, error)
	Questions(ctx context.Context, prompt QuestionPrompt) ([]Generated, error)
	Variants(ctx context.Context, base MCQ, readingMaterial string, numVariants int) ([]Generated, error)
}

// UnitRef names a unit by its subject/topic/unit path.
type UnitRef struct {
	Subject string
	Topic   string
	Unit    string
}

// GenerateQuestionsRequest asks for a batch of base questions appended to a
// unit, creating the subject/topic/unit path as needed.
type GenerateQuestionsRequest struct {
	UnitRef
	ReadingMaterial  string
	LearningOutcomes []string
	Toughness        string
	Mode             Mode
	IsCode           bool
}

// GenerateVariantsRequest asks for variants of every qualifying practice
// base question in an existing unit. NumVariants is advisory: the stored
// count is whatever valid candidates the collaborator returns per base.
type GenerateVariantsRequest struct {
	UnitRef
	NumVariants int
	IsCode      bool
}

// Lifecycle orchestrates every mutation of the subject tree: structure CRUD,
// generated-batch insertion, variant insertion, deletions with learning
// outcome garbage collection, and wholesale question updates. Each operation
// is one load-mutate-save round trip against the store; a concurrent writer
// surfaces as ErrVersionConflict rather than being overwritten.
type Lifecycle struct {
	store SubjectStore
	gen   Generator
}

// NewLifecycle creates a lifecycle manager around the given store and
// generator.
func NewLifecycle(store SubjectStore, gen Generator) *Lifecycle {
	return &Lifecycle{store: store, gen: gen}
}

// ListSubjects returns name-only projections of all subjects.
func (l *Lifecycle) ListSubjects(ctx context.Context) ([]SubjectSummary, error) {
	return l.store.List(ctx)
}

// Subject returns the full document for the named subject.
func (l *Lifecycle) Subject(ctx context.Context, name string) (*Subject, error) {
	return l.store.Get(ctx, name)
}

// Topics returns the topics of the named subject.
func (l *Lifecycle) Topics(ctx context.Context, subjectName string) ([]Topic, error) {
	subject, err := l.store.Get(ctx, subjectName)
	if err != nil {
		return nil, err
	}
	return subject.Topics, nil
}

// Unit resolves a unit by path.
func (l *Lifecycle) Unit(ctx context.Context, ref UnitRef) (*Unit, error) {
	subject, err := l.store.Get(ctx, ref.Subject)
	if err != nil {
		return nil, err
	}
	return subject.FindUnit(ref.Topic, ref.Unit)
}

// MCQsForTopic returns every question under the topic with the given id,
// flattened across its units.
func (l *Lifecycle) MCQsForTopic(ctx context.Context, topicID string) ([]MCQ, error) {
	subject, err := l.store.GetByTopicID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	topic, err := subject.FindTopicByID(topicID)
	if err != nil {
		return nil, err
	}
	var out []MCQ
	for _, unit := range topic.Units {
		out = append(out, unit.MCQs...)
	}
	return out, nil
}

// CreateSubject creates an empty subject. Duplicate names are a conflict.
func (l *Lifecycle) CreateSubject(ctx context.Context, name string) (*Subject, error) {
	subject := &Subject{ID: NewID(), Name: name, Topics: []Topic{}}
	if err := l.store.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// CreateTopic appends an empty topic to the named subject.
func (l *Lifecycle) CreateTopic(ctx context.Context, subjectName, topicName string) (*Subject, error) {
	subject, err := l.store.Get(ctx, subjectName)
	if err != nil {
		return nil, err
	}
	if _, err := subject.FindTopic(topicName); err == nil {
		return nil, ErrTopicExists
	}
	subject.Topics = append(subject.Topics, Topic{ID: NewID(), Name: topicName, Units: []Unit{}})
	return l.save(ctx, subject)
}

// CreateUnit appends an empty unit to an existing topic.
func (l *Lifecycle) CreateUnit(ctx context.Context, subjectName, topicName, unitName string) (*Subject, error) {
	subject, err := l.store.Get(ctx, subjectName)
	if err != nil {
		return nil, err
	}
	topic, err := subject.FindTopic(topicName)
	if err != nil {
		return nil, err
	}
	if _, err := topic.FindUnit(unitName); err == nil {
		return nil, ErrUnitExists
	}
	topic.Units = append(topic.Units, Unit{
		Name:             unitName,
		LearningOutcomes: []string{},
		MCQs:             []MCQ{},
	})
	return l.save(ctx, subject)
}

// DeleteSubject removes a subject by name.
func (l *Lifecycle) DeleteSubject(ctx context.Context, name string) error {
	return l.store.Delete(ctx, name)
}

// DeleteSubjectByID removes a subject by id.
func (l *Lifecycle) DeleteSubjectByID(ctx context.Context, id string) error {
	return l.store.DeleteByID(ctx, id)
}

// DeleteTopic removes a topic by subject/topic names, cascading its units.
func (l *Lifecycle) DeleteTopic(ctx context.Context, subjectName, topicName string) error {
	subject, err := l.store.Get(ctx, subjectName)
	if err != nil {
		return err
	}
	if err := subject.removeTopic(func(t Topic) bool { return t.Name == topicName }); err != nil {
		return err
	}
	_, err = l.save(ctx, subject)
	return err
}

// DeleteTopicByID removes a topic by id from whichever subject holds it.
func (l *Lifecycle) DeleteTopicByID(ctx context.Context, topicID string) error {
	subject, err := l.store.GetByTopicID(ctx, topicID)
	if err != nil {
		return err
	}
	if err := subject.removeTopic(func(t Topic) bool { return t.ID == topicID }); err != nil {
		return err
	}
	_, err = l.save(ctx, subject)
	return err
}

// DeleteUnit removes a unit by path.
func (l *Lifecycle) DeleteUnit(ctx context.Context, ref UnitRef) error {
	subject, err := l.store.Get(ctx, ref.Subject)
	if err != nil {
		return err
	}
	topic, err := subject.FindTopic(ref.Topic)
	if err != nil {
		return err
	}
	for i := range topic.Units {
		if topic.Units[i].Name == ref.Unit {
			topic.Units = append(topic.Units[:i], topic.Units[i+1:]...)
			_, err = l.save(ctx, subject)
			return err
		}
	}
	return ErrUnitNotFound
}

// GenerateLearningOutcomes asks the collaborator for learning outcomes over
// the reading material. Nothing is persisted; outcomes only enter the tree
// when a question batch referencing them is generated.
func (l *Lifecycle) GenerateLearningOutcomes(ctx context.Context, readingMaterial string, isCode bool) ([]string, error) {
	return l.gen.LearningOutcomes(ctx, readingMaterial, isCode)
}

// GenerateQuestions produces a base-question batch for a unit and persists
// it. The AI call happens before any store access so a collaborator failure
// never leaves a half-written document. If the unit pre-exists its reading
// material is overwritten and its outcome set unioned with the request's.
func (l *Lifecycle) GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) (*Subject, error) {
	raw, err := l.gen.Questions(ctx, QuestionPrompt{
		ReadingMaterial:  req.ReadingMaterial,
		LearningOutcomes: req.LearningOutcomes,
		Toughness:        req.Toughness,
		Mode:             req.Mode,
		IsCode:           req.IsCode,
	})
	if err != nil {
		return nil, err
	}

	subject, created, err := l.getOrCreateSubject(ctx, req.Subject)
	if err != nil {
		return nil, err
	}
	topic := subject.FindOrCreateTopic(req.Topic)
	unit := topic.FindOrCreateUnit(req.Unit, req.ReadingMaterial)

	mcqs := NormalizeBatch(raw, BatchContext{
		UnitName:          req.Unit,
		TopicName:         req.Topic,
		ExistingBaseCount: unit.BaseCount(),
		LearningOutcomes:  req.LearningOutcomes,
		Toughness:         req.Toughness,
		Mode:              req.Mode,
		IsCode:            req.IsCode,
	})

	unit.ReadingMaterial = req.ReadingMaterial
	unit.MergeOutcomes(req.LearningOutcomes)
	unit.MCQs = append(unit.MCQs, mcqs...)

	slog.Info("generated question batch",
		"subject", req.Subject,
		"topic", req.Topic,
		"unit", req.Unit,
		"mode", req.Mode,
		"isCode", req.IsCode,
		"questions", len(mcqs),
		"subject_created", created,
	)
	return l.save(ctx, subject)
}

// GenerateVariants produces variants for every qualifying practice base
// question in an existing unit. A collaborator failure on one base is logged
// and skipped; the batch continues with the remaining bases. The returned
// count is the number of variants actually stored — zero is a successful
// outcome distinct from ErrNoBaseQuestions.
func (l *Lifecycle) GenerateVariants(ctx context.Context, req GenerateVariantsRequest) (*Subject, int, error) {
	subject, err := l.store.Get(ctx, req.Subject)
	if err != nil {
		return nil, 0, err
	}
	unit, err := subject.FindUnit(req.Topic, req.Unit)
	if err != nil {
		return nil, 0, err
	}

	var bases []MCQ
	for _, m := range unit.MCQs {
		if m.IsBase && m.Mode == ModePractice && m.IsCode == req.IsCode {
			bases = append(bases, m)
		}
	}
	if len(bases) == 0 {
		return nil, 0, ErrNoBaseQuestions
	}

	produced := 0
	for _, base := range bases {
		candidates, err := l.gen.Variants(ctx, base, unit.ReadingMaterial, req.NumVariants)
		if err != nil {
			slog.Warn("variant generation failed for base question, skipping",
				"question_key", base.QuestionKey,
				"error", err,
			)
			continue
		}
		variants := LinkVariants(base, candidates, unit.VariantCount(base.QuestionID))
		unit.MCQs = append(unit.MCQs, variants...)
		produced += len(variants)
	}

	if produced == 0 {
		return subject, 0, nil
	}

	slog.Info("generated variant batch",
		"subject", req.Subject,
		"unit", req.Unit,
		"isCode", req.IsCode,
		"variants", produced,
	)
	saved, err := l.save(ctx, subject)
	if err != nil {
		return nil, 0, err
	}
	return saved, produced, nil
}

// DeleteMCQ removes a single question by id and garbage-collects its primary
// learning outcome if nothing else references it.
func (l *Lifecycle) DeleteMCQ(ctx context.Context, ref UnitRef, questionID string) (*Subject, error) {
	subject, err := l.store.Get(ctx, ref.Subject)
	if err != nil {
		return nil, err
	}
	unit, err := subject.FindUnit(ref.Topic, ref.Unit)
	if err != nil {
		return nil, err
	}
	i, err := unit.FindMCQ(questionID)
	if err != nil {
		return nil, err
	}
	unit.RemoveMCQ(i)
	return l.save(ctx, subject)
}

// DeleteMCQsByFilter bulk-deletes questions matching the named filter and
// recomputes the unit's learning outcomes from the survivors. A zero removed
// count with a nil error means nothing matched; no save is performed.
func (l *Lifecycle) DeleteMCQsByFilter(ctx context.Context, ref UnitRef, filter DeleteFilter) (*Subject, int, error) {
	subject, err := l.store.Get(ctx, ref.Subject)
	if err != nil {
		return nil, 0, err
	}
	unit, err := subject.FindUnit(ref.Topic, ref.Unit)
	if err != nil {
		return nil, 0, err
	}
	removed := unit.ApplyDeleteFilter(filter)
	if removed == 0 {
		return subject, 0, nil
	}
	saved, err := l.save(ctx, subject)
	if err != nil {
		return nil, 0, err
	}
	return saved, removed, nil
}

// UpdateMCQ replaces a stored question wholesale with the caller-supplied
// version, matched by question_id. There is no field-level merge.
func (l *Lifecycle) UpdateMCQ(ctx context.Context, ref UnitRef, updated MCQ) (*Subject, error) {
	if updated.QuestionID == "" {
		return nil, fmt.Errorf("%w: updated mcq has no question_id", ErrMCQNotFound)
	}
	subject, err := l.store.Get(ctx, ref.Subject)
	if err != nil {
		return nil, err
	}
	unit, err := subject.FindUnit(ref.Topic, ref.Unit)
	if err != nil {
		return nil, err
	}
	i, err := unit.FindMCQ(updated.QuestionID)
	if err != nil {
		return nil, err
	}
	unit.MCQs[i] = updated
	return l.save(ctx, subject)
}

func (l *Lifecycle) getOrCreateSubject(ctx context.Context, name string) (*Subject, bool, error) {
	subject, err := l.store.Get(ctx, name)
	if err == nil {
		return subject, false, nil
	}
	if !errors.Is(err, ErrSubjectNotFound) {
		return nil, false, err
	}
	subject = &Subject{ID: NewID(), Name: name, Topics: []Topic{}}
	if err := l.store.Create(ctx, subject); err != nil {
		return nil, false, err
	}
	return subject, true, nil
}

func (l *Lifecycle) save(ctx context.Context, subject *Subject) (*Subject, error) {
	subject.UpdatedAt = time.Now()
	if err := l.store.Save(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *Subject) removeTopic(match func(Topic) bool) error {
	for i := range s.Topics {
		if match(s.Topics[i]) {
			s.Topics = append(s.Topics[:i], s.Topics[i+1:]...)
			return nil
		}
	}
	return ErrTopicNotFound
}
