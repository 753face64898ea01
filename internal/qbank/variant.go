package qbank

// LinkVariants turns AI-generated variant candidates into stored variant
// records derived from base. existingVariants is the count of variants of
// this base already stored, so numbering continues across repeated
// generation calls instead of restarting at _V1.
//
// The candidate is untrusted: identity fields (core concept, skills,
// toughness, language) are copied from the base question rather than taken
// from the candidate, which only contributes question content, code snippet,
// question type, options and explanation.
func LinkVariants(base MCQ, candidates []Generated, existingVariants int) []MCQ {
	out := make([]MCQ, 0, len(candidates))
	for i, cand := range candidates {
		variantKey := VariantKey(base.QuestionKey, existingVariants+i+1)

		question := cand.Question
		question.TagNames = retagVariant(cand.Question.TagNames, base.QuestionKey, variantKey)
		if question.ContentType == "" {
			question.ContentType = defaultContentType
		}

		out = append(out, MCQ{
			QuestionID:     NewID(),
			QuestionKey:    variantKey,
			IsBase:         false,
			BaseQuestionID: base.QuestionID,
			IsCode:         base.IsCode,
			Language:       base.Language,
			Mode:           ModePractice,
			CoreConcept:    base.CoreConcept,
			Toughness:      base.Toughness,
			Skills:         append([]string(nil), base.Skills...),
			QuestionType:   cand.QuestionType,
			Question:       question,
			Options:        append([]Option(nil), cand.Options...),
			Explanation:    cand.Explanation,
		})
	}
	return out
}

// retagVariant replaces the base question key in the AI-supplied tag list
// with the variant key. If the AI dropped the base key from the tags, the
// variant key is appended so the question stays addressable by key.
func retagVariant(tags []string, baseKey, variantKey string) []string {
	out := make([]string, len(tags))
	replaced := false
	for i, tag := range tags {
		if tag == baseKey {
			out[i] = variantKey
			replaced = true
			continue
		}
		out[i] = tag
	}
	if !replaced {
		out = append(out, variantKey)
	}
	return out
}
