package qbank

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// stubGenerator is a canned Generator for lifecycle tests.
type stubGenerator struct {
	outcomes     []string
	outcomesErr  error
	questions    []Generated
	questionsErr error
	variantsFn   func(base MCQ) ([]Generated, error)
	lastPrompt   QuestionPrompt
}

func (g *stubGenerator) LearningOutcomes(_ context.Context, _ string, _ bool) ([]string, error) {
	return g.outcomes, g.outcomesErr
}

func (g *stubGenerator) Questions(_ context.Context, prompt QuestionPrompt) ([]Generated, error) {
	g.lastPrompt = prompt
	return g.questions, g.questionsErr
}

func (g *stubGenerator) Variants(_ context.Context, base MCQ, _ string, _ int) ([]Generated, error) {
	if g.variantsFn != nil {
		return g.variantsFn(base)
	}
	return nil, nil
}

func newTestLifecycle(gen Generator) (*Lifecycle, *MemoryStore) {
	store := NewMemoryStore()
	return NewLifecycle(store, gen), store
}

func TestCreateStructure(t *testing.T) {
	l, _ := newTestLifecycle(&stubGenerator{})
	ctx := t.Context()

	subject, err := l.CreateSubject(ctx, "CSS")
	if err != nil {
		t.Fatalf("CreateSubject error = %v", err)
	}
	if subject.ID == "" {
		t.Error("subject should get an id")
	}
	if _, err := l.CreateSubject(ctx, "CSS"); !errors.Is(err, ErrSubjectExists) {
		t.Errorf("duplicate subject = %v, want ErrSubjectExists", err)
	}

	subject, err = l.CreateTopic(ctx, "CSS", "Selectors")
	if err != nil {
		t.Fatalf("CreateTopic error = %v", err)
	}
	if len(subject.Topics) != 1 || subject.Topics[0].ID == "" {
		t.Errorf("topics = %+v", subject.Topics)
	}
	if _, err := l.CreateTopic(ctx, "CSS", "Selectors"); !errors.Is(err, ErrTopicExists) {
		t.Errorf("duplicate topic = %v, want ErrTopicExists", err)
	}
	if _, err := l.CreateTopic(ctx, "nope", "Selectors"); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("topic under missing subject = %v, want ErrSubjectNotFound", err)
	}

	subject, err = l.CreateUnit(ctx, "CSS", "Selectors", "Basic")
	if err != nil {
		t.Fatalf("CreateUnit error = %v", err)
	}
	if len(subject.Topics[0].Units) != 1 {
		t.Errorf("units = %+v", subject.Topics[0].Units)
	}
	if _, err := l.CreateUnit(ctx, "CSS", "Selectors", "Basic"); !errors.Is(err, ErrUnitExists) {
		t.Errorf("duplicate unit = %v, want ErrUnitExists", err)
	}
	// Unit creation requires an existing topic, unlike generation.
	if _, err := l.CreateUnit(ctx, "CSS", "Layout", "Flexbox"); !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("unit under missing topic = %v, want ErrTopicNotFound", err)
	}
}

func TestGenerateQuestionsCreatesPath(t *testing.T) {
	gen := &stubGenerator{questions: []Generated{
		{CoreConcept: "CSS Selectors", BloomLevel: "APPLY"},
		{CoreConcept: "Specificity"},
	}}
	l, store := newTestLifecycle(gen)
	ctx := t.Context()

	subject, err := l.GenerateQuestions(ctx, GenerateQuestionsRequest{
		UnitRef:          UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"},
		ReadingMaterial:  "Selectors match elements.",
		LearningOutcomes: []string{"Identify selectors", "Rank specificity"},
		Toughness:        "EASY",
		Mode:             ModePractice,
	})
	if err != nil {
		t.Fatalf("GenerateQuestions error = %v", err)
	}

	unit := subject.Topics[0].Units[0]
	if len(unit.MCQs) != 2 {
		t.Fatalf("question count = %d, want 2", len(unit.MCQs))
	}
	if unit.MCQs[0].QuestionKey != "CB01" || unit.MCQs[1].QuestionKey != "CB02" {
		t.Errorf("keys = %q, %q", unit.MCQs[0].QuestionKey, unit.MCQs[1].QuestionKey)
	}
	if unit.ReadingMaterial != "Selectors match elements." {
		t.Errorf("reading material = %q", unit.ReadingMaterial)
	}
	if !reflect.DeepEqual(unit.LearningOutcomes, []string{"Identify selectors", "Rank specificity"}) {
		t.Errorf("outcomes = %v", unit.LearningOutcomes)
	}
	if gen.lastPrompt.Mode != ModePractice {
		t.Errorf("prompt mode = %q, want practice", gen.lastPrompt.Mode)
	}

	// The batch is persisted, not just returned.
	stored, err := store.Get(ctx, "CSS")
	if err != nil {
		t.Fatalf("stored subject missing: %v", err)
	}
	if len(stored.Topics[0].Units[0].MCQs) != 2 {
		t.Error("generated batch was not persisted")
	}
}

func TestGenerateQuestionsMergesIntoExistingUnit(t *testing.T) {
	gen := &stubGenerator{questions: []Generated{{CoreConcept: "Combinators"}}}
	l, store := newTestLifecycle(gen)
	ctx := t.Context()

	if err := store.Create(ctx, &Subject{
		Name: "CSS",
		Topics: []Topic{{
			ID:   "t-1",
			Name: "CSS Basics",
			Units: []Unit{{
				Name:             "Selectors",
				ReadingMaterial:  "old material",
				LearningOutcomes: []string{"Identify selectors"},
				MCQs: []MCQ{
					{QuestionID: "q-1", QuestionKey: "CB01", IsBase: true, Mode: ModePractice, Skills: []string{"Identify selectors"}},
				},
			}},
		}},
	}); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	subject, err := l.GenerateQuestions(ctx, GenerateQuestionsRequest{
		UnitRef:          UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"},
		ReadingMaterial:  "new material",
		LearningOutcomes: []string{"Identify selectors", "Use combinators"},
		Mode:             ModePractice,
	})
	if err != nil {
		t.Fatalf("GenerateQuestions error = %v", err)
	}

	unit := subject.Topics[0].Units[0]
	if unit.ReadingMaterial != "new material" {
		t.Errorf("reading material = %q, want overwritten", unit.ReadingMaterial)
	}
	if !reflect.DeepEqual(unit.LearningOutcomes, []string{"Identify selectors", "Use combinators"}) {
		t.Errorf("outcomes = %v, want union without duplicates", unit.LearningOutcomes)
	}
	// Key sequencing continues past the stored base question.
	if unit.MCQs[1].QuestionKey != "CB02" {
		t.Errorf("new key = %q, want CB02", unit.MCQs[1].QuestionKey)
	}
}

func TestGenerateQuestionsAIFailureLeavesNoSubject(t *testing.T) {
	gen := &stubGenerator{questionsErr: fmt.Errorf("provider down")}
	l, store := newTestLifecycle(gen)
	ctx := t.Context()

	_, err := l.GenerateQuestions(ctx, GenerateQuestionsRequest{
		UnitRef:          UnitRef{Subject: "CSS", Topic: "T", Unit: "U"},
		ReadingMaterial:  "rm",
		LearningOutcomes: []string{"lo"},
		Mode:             ModePractice,
	})
	if err == nil {
		t.Fatal("expected generation failure")
	}
	if _, err := store.Get(ctx, "CSS"); !errors.Is(err, ErrSubjectNotFound) {
		t.Error("failed generation must not create the subject")
	}
}

func variantSeedSubject() *Subject {
	return &Subject{
		Name: "CSS",
		Topics: []Topic{{
			ID:   "t-1",
			Name: "CSS Basics",
			Units: []Unit{{
				Name:            "Selectors",
				ReadingMaterial: "rm",
				MCQs: []MCQ{
					{QuestionID: "b-1", QuestionKey: "CB01", IsBase: true, Mode: ModePractice, IsCode: false, Skills: []string{"lo-1"}},
					{QuestionID: "b-2", QuestionKey: "CB02", IsBase: true, Mode: ModePractice, IsCode: false, Skills: []string{"lo-2"}},
					{QuestionID: "b-3", QuestionKey: "CB03", IsBase: true, Mode: ModeExam, IsCode: false},
					{QuestionID: "b-4", QuestionKey: "CB04", IsBase: true, Mode: ModePractice, IsCode: true},
				},
			}},
		}},
	}
}

func TestGenerateVariants(t *testing.T) {
	gen := &stubGenerator{variantsFn: func(base MCQ) ([]Generated, error) {
		return []Generated{{Question: QuestionContent{Content: "variant of " + base.QuestionKey}}}, nil
	}}
	l, store := newTestLifecycle(gen)
	ctx := t.Context()

	if err := store.Create(ctx, variantSeedSubject()); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	subject, produced, err := l.GenerateVariants(ctx, GenerateVariantsRequest{
		UnitRef:     UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"},
		NumVariants: 1,
		IsCode:      false,
	})
	if err != nil {
		t.Fatalf("GenerateVariants error = %v", err)
	}
	// Only the two standard practice bases qualify; the exam and code
	// questions are skipped.
	if produced != 2 {
		t.Errorf("produced = %d, want 2", produced)
	}

	unit := subject.Topics[0].Units[0]
	if len(unit.MCQs) != 6 {
		t.Fatalf("question count = %d, want 4 bases + 2 variants", len(unit.MCQs))
	}
	if unit.MCQs[4].QuestionKey != "CB01_V1" || unit.MCQs[5].QuestionKey != "CB02_V1" {
		t.Errorf("variant keys = %q, %q", unit.MCQs[4].QuestionKey, unit.MCQs[5].QuestionKey)
	}
}

func TestGenerateVariantsNumberingContinues(t *testing.T) {
	gen := &stubGenerator{variantsFn: func(base MCQ) ([]Generated, error) {
		return []Generated{{}}, nil
	}}
	l, store := newTestLifecycle(gen)
	ctx := t.Context()

	seed := variantSeedSubject()
	// One variant of CB01 already stored.
	seed.Topics[0].Units[0].MCQs = append(seed.Topics[0].Units[0].MCQs, MCQ{
		QuestionID: "v-1", QuestionKey: "CB01_V1", BaseQuestionID: "b-1", Mode: ModePractice,
	})
	if err := store.Create(ctx, seed); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	subject, _, err := l.GenerateVariants(ctx, GenerateVariantsRequest{
		UnitRef:     UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"},
		NumVariants: 1,
	})
	if err != nil {
		t.Fatalf("GenerateVariants error = %v", err)
	}

	unit := subject.Topics[0].Units[0]
	var keys []string
	for _, m := range unit.MCQs {
		if m.BaseQuestionID == "b-1" {
			keys = append(keys, m.QuestionKey)
		}
	}
	if !reflect.DeepEqual(keys, []string{"CB01_V1", "CB01_V2"}) {
		t.Errorf("CB01 variant keys = %v, want numbering to continue", keys)
	}
}

func TestGenerateVariantsNoBaseQuestions(t *testing.T) {
	l, store := newTestLifecycle(&stubGenerator{})
	ctx := t.Context()

	if err := store.Create(ctx, &Subject{
		Name: "CSS",
		Topics: []Topic{{
			ID: "t-1", Name: "CSS Basics",
			Units: []Unit{{Name: "Selectors", MCQs: []MCQ{
				{QuestionID: "e-1", IsBase: true, Mode: ModeExam},
			}}},
		}},
	}); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	_, _, err := l.GenerateVariants(ctx, GenerateVariantsRequest{
		UnitRef: UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"},
	})
	if !errors.Is(err, ErrNoBaseQuestions) {
		t.Errorf("err = %v, want ErrNoBaseQuestions", err)
	}
}

func TestGenerateVariantsPartialFailure(t *testing.T) {
	gen := &stubGenerator{variantsFn: func(base MCQ) ([]Generated, error) {
		if base.QuestionID == "b-1" {
			return nil, fmt.Errorf("model refused")
		}
		return []Generated{{}}, nil
	}}
	l, store := newTestLifecycle(gen)
	ctx := t.Context()

	if err := store.Create(ctx, variantSeedSubject()); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	_, produced, err := l.GenerateVariants(ctx, GenerateVariantsRequest{
		UnitRef:     UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"},
		NumVariants: 1,
	})
	if err != nil {
		t.Fatalf("GenerateVariants error = %v", err)
	}
	// b-1 failed and was skipped; b-2 produced one variant.
	if produced != 1 {
		t.Errorf("produced = %d, want 1", produced)
	}
}

func TestGenerateVariantsAllFailNoSave(t *testing.T) {
	gen := &stubGenerator{variantsFn: func(MCQ) ([]Generated, error) {
		return nil, fmt.Errorf("model down")
	}}
	l, store := newTestLifecycle(gen)
	ctx := t.Context()

	if err := store.Create(ctx, variantSeedSubject()); err != nil {
		t.Fatalf("seed error = %v", err)
	}
	before, _ := store.Get(ctx, "CSS")

	subject, produced, err := l.GenerateVariants(ctx, GenerateVariantsRequest{
		UnitRef:     UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"},
		NumVariants: 1,
	})
	if err != nil {
		t.Fatalf("GenerateVariants error = %v", err)
	}
	if produced != 0 || subject == nil {
		t.Errorf("produced = %d, subject nil = %v; want 0 and a subject", produced, subject == nil)
	}

	after, _ := store.Get(ctx, "CSS")
	if after.Version != before.Version {
		t.Error("zero-produced batch must not write to the store")
	}
}

func TestDeleteMCQWithOutcomeGC(t *testing.T) {
	l, store := newTestLifecycle(&stubGenerator{})
	ctx := t.Context()

	if err := store.Create(ctx, &Subject{
		Name: "CSS",
		Topics: []Topic{{
			ID: "t-1", Name: "CSS Basics",
			Units: []Unit{{
				Name:             "Selectors",
				LearningOutcomes: []string{"understanding_css_selectors", "using_flexbox"},
				MCQs: []MCQ{
					{QuestionID: "q-1", Skills: []string{"understanding_css_selectors"}},
					{QuestionID: "q-2", Skills: []string{"using_flexbox"}},
				},
			}},
		}},
	}); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	ref := UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"}
	subject, err := l.DeleteMCQ(ctx, ref, "q-1")
	if err != nil {
		t.Fatalf("DeleteMCQ error = %v", err)
	}

	unit := subject.Topics[0].Units[0]
	if len(unit.MCQs) != 1 {
		t.Errorf("question count = %d, want 1", len(unit.MCQs))
	}
	if !reflect.DeepEqual(unit.LearningOutcomes, []string{"using_flexbox"}) {
		t.Errorf("outcomes = %v, want orphan collected", unit.LearningOutcomes)
	}

	if _, err := l.DeleteMCQ(ctx, ref, "q-404"); !errors.Is(err, ErrMCQNotFound) {
		t.Errorf("missing question = %v, want ErrMCQNotFound", err)
	}
}

func TestDeleteMCQsByFilterNoMatchNoSave(t *testing.T) {
	l, store := newTestLifecycle(&stubGenerator{})
	ctx := t.Context()

	if err := store.Create(ctx, variantSeedSubject()); err != nil {
		t.Fatalf("seed error = %v", err)
	}
	before, _ := store.Get(ctx, "CSS")

	_, removed, err := l.DeleteMCQsByFilter(ctx,
		UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"},
		FilterPracticeVariantsAll)
	if err != nil {
		t.Fatalf("DeleteMCQsByFilter error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0 (no variants stored)", removed)
	}

	after, _ := store.Get(ctx, "CSS")
	if after.Version != before.Version {
		t.Error("no-match filter delete must not write to the store")
	}
}

func TestDeleteMCQsByFilterRemoves(t *testing.T) {
	l, store := newTestLifecycle(&stubGenerator{})
	ctx := t.Context()

	if err := store.Create(ctx, variantSeedSubject()); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	subject, removed, err := l.DeleteMCQsByFilter(ctx,
		UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"},
		FilterPracticeBase)
	if err != nil {
		t.Fatalf("DeleteMCQsByFilter error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want the two standard practice bases", removed)
	}
	if got := len(subject.Topics[0].Units[0].MCQs); got != 2 {
		t.Errorf("survivors = %d, want 2", got)
	}
}

func TestUpdateMCQWholesaleReplace(t *testing.T) {
	l, store := newTestLifecycle(&stubGenerator{})
	ctx := t.Context()

	if err := store.Create(ctx, variantSeedSubject()); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	ref := UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"}
	updated := MCQ{
		QuestionID:  "b-1",
		QuestionKey: "CB01",
		IsBase:      true,
		Mode:        ModePractice,
		Toughness:   "HARD",
		Question:    QuestionContent{Content: "rewritten"},
	}

	subject, err := l.UpdateMCQ(ctx, ref, updated)
	if err != nil {
		t.Fatalf("UpdateMCQ error = %v", err)
	}

	unit := subject.Topics[0].Units[0]
	i, _ := unit.FindMCQ("b-1")
	if unit.MCQs[i].Toughness != "HARD" || unit.MCQs[i].Question.Content != "rewritten" {
		t.Errorf("stored question = %+v, want wholesale replacement", unit.MCQs[i])
	}
	// Fields absent from the update are gone, not merged.
	if unit.MCQs[i].Skills != nil {
		t.Errorf("skills = %v, want dropped by replacement", unit.MCQs[i].Skills)
	}

	if _, err := l.UpdateMCQ(ctx, ref, MCQ{}); !errors.Is(err, ErrMCQNotFound) {
		t.Errorf("empty question id = %v, want ErrMCQNotFound", err)
	}
	if _, err := l.UpdateMCQ(ctx, ref, MCQ{QuestionID: "ghost"}); !errors.Is(err, ErrMCQNotFound) {
		t.Errorf("unknown question id = %v, want ErrMCQNotFound", err)
	}
}

func TestDeleteTopicAndUnit(t *testing.T) {
	l, store := newTestLifecycle(&stubGenerator{})
	ctx := t.Context()

	if err := store.Create(ctx, variantSeedSubject()); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	if err := l.DeleteUnit(ctx, UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "nope"}); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("missing unit = %v, want ErrUnitNotFound", err)
	}
	if err := l.DeleteUnit(ctx, UnitRef{Subject: "CSS", Topic: "CSS Basics", Unit: "Selectors"}); err != nil {
		t.Fatalf("DeleteUnit error = %v", err)
	}

	if err := l.DeleteTopicByID(ctx, "t-404"); !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("missing topic id = %v, want ErrTopicNotFound", err)
	}
	if err := l.DeleteTopicByID(ctx, "t-1"); err != nil {
		t.Fatalf("DeleteTopicByID error = %v", err)
	}

	subject, _ := store.Get(ctx, "CSS")
	if len(subject.Topics) != 0 {
		t.Errorf("topics = %+v, want empty", subject.Topics)
	}
}

func TestMCQsForTopic(t *testing.T) {
	l, store := newTestLifecycle(&stubGenerator{})
	ctx := t.Context()

	if err := store.Create(ctx, variantSeedSubject()); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	mcqs, err := l.MCQsForTopic(ctx, "t-1")
	if err != nil {
		t.Fatalf("MCQsForTopic error = %v", err)
	}
	if len(mcqs) != 4 {
		t.Errorf("flattened count = %d, want 4", len(mcqs))
	}

	if _, err := l.MCQsForTopic(ctx, "t-404"); !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("missing topic = %v, want ErrTopicNotFound", err)
	}
}

func TestGenerateLearningOutcomesPassThrough(t *testing.T) {
	gen := &stubGenerator{outcomes: []string{"a", "b"}}
	l, store := newTestLifecycle(gen)
	ctx := t.Context()

	outcomes, err := l.GenerateLearningOutcomes(ctx, "material", false)
	if err != nil {
		t.Fatalf("GenerateLearningOutcomes error = %v", err)
	}
	if !reflect.DeepEqual(outcomes, []string{"a", "b"}) {
		t.Errorf("outcomes = %v", outcomes)
	}

	// Nothing is persisted by outcome generation.
	if list, _ := store.List(ctx); len(list) != 0 {
		t.Error("outcome generation must not create subjects")
	}
}
