package qbank

// BatchContext carries the unit/topic state a generated batch is normalized
// against.
type BatchContext struct {
	UnitName          string
	TopicName         string
	ExistingBaseCount int
	LearningOutcomes  []string
	Toughness         string
	Mode              Mode
	IsCode            bool
}

// NormalizeBatch converts raw AI-generated question candidates into
// finalized base MCQ records ready to append to a unit's question pool.
//
// Keys continue the unit's existing base-question sequence: with 3 base
// questions stored, a batch of 2 yields the 04 and 05 keys. The candidate's
// bloom level is folded into the tag list and not persisted as a field, and
// skills are overwritten to exactly the learning outcome that drove the
// question at that position.
func NormalizeBatch(raw []Generated, bc BatchContext) []MCQ {
	out := make([]MCQ, 0, len(raw))
	for i, gen := range raw {
		key := BaseQuestionKey(bc.TopicName, bc.ExistingBaseCount+i+1)

		bloom := gen.BloomLevel
		if bloom == "" {
			bloom = "UNKNOWN"
		}
		outcome := ""
		if i < len(bc.LearningOutcomes) {
			outcome = bc.LearningOutcomes[i]
		}

		question := gen.Question
		question.TagNames = []string{
			bc.UnitName,
			key,
			NormalizeConcept(gen.CoreConcept),
			bloom,
			outcome,
		}
		if question.ContentType == "" {
			question.ContentType = defaultContentType
		}

		mcq := MCQ{
			QuestionID:   NewID(),
			QuestionKey:  key,
			IsBase:       true,
			IsCode:       bc.IsCode,
			Mode:         bc.Mode,
			CoreConcept:  gen.CoreConcept,
			Toughness:    gen.Toughness,
			Skills:       []string{outcome},
			QuestionType: gen.QuestionType,
			Question:     question,
			Options:      append([]Option(nil), gen.Options...),
			Explanation:  gen.Explanation,
		}
		if mcq.Toughness == "" {
			mcq.Toughness = bc.Toughness
		}
		if bc.IsCode && mcq.Language == "" {
			mcq.Language = defaultQuestionLanguage
		}
		out = append(out, mcq)
	}
	return out
}
