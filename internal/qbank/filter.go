package qbank

// DeleteFilter names a bulk-deletion predicate over a unit's question pool.
type DeleteFilter string

// Known filters. The combined views remove across the code/standard split;
// the individual filters pin isCode as well.
const (
	FilterPracticeBaseAll     DeleteFilter = "practice-base-all"
	FilterPracticeVariantsAll DeleteFilter = "practice-variants-all"
	FilterPracticeAll         DeleteFilter = "practice-all"
	FilterExam                DeleteFilter = "exam"
	FilterPracticeBase        DeleteFilter = "practice-base"
	FilterPracticeVariants    DeleteFilter = "practice-variants"
	FilterCodeBase            DeleteFilter = "code-base"
	FilterCodeVariants        DeleteFilter = "code-variants"
	FilterExamMCQ             DeleteFilter = "exam-mcq"
	FilterExamCode            DeleteFilter = "exam-code"
)

// Removes reports whether the filter removes the given question. An
// unrecognized filter name removes nothing.
func (f DeleteFilter) Removes(m MCQ) bool {
	switch f {
	case FilterPracticeBaseAll:
		return m.Mode == ModePractice && m.IsBase
	case FilterPracticeVariantsAll:
		return m.Mode == ModePractice && !m.IsBase
	case FilterPracticeAll:
		return m.Mode == ModePractice
	case FilterExam:
		return m.Mode == ModeExam && m.IsBase
	case FilterPracticeBase:
		return m.Mode == ModePractice && m.IsBase && !m.IsCode
	case FilterPracticeVariants:
		return m.Mode == ModePractice && !m.IsBase && !m.IsCode
	case FilterCodeBase:
		return m.Mode == ModePractice && m.IsBase && m.IsCode
	case FilterCodeVariants:
		return m.Mode == ModePractice && !m.IsBase && m.IsCode
	case FilterExamMCQ:
		return m.Mode == ModeExam && !m.IsCode
	case FilterExamCode:
		return m.Mode == ModeExam && m.IsCode
	default:
		return false
	}
}

// ApplyDeleteFilter partitions the unit's questions with f, replaces the
// pool with the survivors, and recomputes the unit's learning outcomes to
// exactly the set still referenced by a surviving question's skills. It
// returns the number of questions removed.
func (u *Unit) ApplyDeleteFilter(f DeleteFilter) int {
	kept := make([]MCQ, 0, len(u.MCQs))
	for _, m := range u.MCQs {
		if !f.Removes(m) {
			kept = append(kept, m)
		}
	}
	removed := len(u.MCQs) - len(kept)
	if removed == 0 {
		return 0
	}
	u.MCQs = kept
	u.pruneOutcomes()
	return removed
}

// RemoveMCQ deletes the question at index i and garbage-collects its primary
// learning outcome from the unit if no other question still references it.
func (u *Unit) RemoveMCQ(i int) {
	var outcome string
	if len(u.MCQs[i].Skills) > 0 {
		outcome = u.MCQs[i].Skills[0]
	}
	u.MCQs = append(u.MCQs[:i], u.MCQs[i+1:]...)

	if outcome == "" {
		return
	}
	for _, m := range u.MCQs {
		for _, skill := range m.Skills {
			if skill == outcome {
				return
			}
		}
	}
	u.LearningOutcomes = removeString(u.LearningOutcomes, outcome)
}

// pruneOutcomes drops every learning outcome no surviving question's skills
// reference.
func (u *Unit) pruneOutcomes() {
	referenced := make(map[string]bool)
	for _, m := range u.MCQs {
		for _, skill := range m.Skills {
			referenced[skill] = true
		}
	}
	kept := u.LearningOutcomes[:0]
	for _, lo := range u.LearningOutcomes {
		if referenced[lo] {
			kept = append(kept, lo)
		}
	}
	u.LearningOutcomes = kept
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
