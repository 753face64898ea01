package genai

import (
	"fmt"
	"strings"

	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

// Prompt construction for the three generation purposes. Each prompt ends
// with a strict output-schema section; the models still need the fence
// stripping in parse.go because they rarely obey "raw JSON" to the letter.

func outcomesPrompt(readingMaterial string, isCode bool) string {
	if isCode {
		return fmt.Sprintf(`Instructions:
Analyze the provided reading material and identify the main headings and subtopics exactly as they appear.
For each heading or subtopic, generate one coding-focused learning outcome only if the material includes code, syntax, implementation, or a programming example.
Do NOT generate outcomes for topics that only contain definitions, theory, or conceptual explanations without any coding relevance.
Use an action-oriented verb prefixed with an appropriate Bloom's cognitive level: understanding, remembering, analyzing, or applying.
Output must be in lowercase snake_case format. Avoid duplication.
Format Example:
applying_for_loops
analyzing_conditional_statements
Output as a raw JSON object:
{ "learning_outcomes": ["outcome_1", "outcome_2"] }
Text:
---
%s
---`, readingMaterial)
	}
	return fmt.Sprintf(`Instructions:
Analyze the provided reading material to identify the main subtopics exactly as mentioned in the content.
Preserve complete compound terms without shortening them, and do not assume sub-concepts beyond what appears as a heading or subheading.
For each identified subtopic, generate one learning outcome using an action-oriented verb prefixed by an appropriate Bloom's cognitive level: understanding, remembering, analyzing, or applying.
Each learning outcome should represent a clear and assessable conceptual or theoretical skill; exclude coding-related outcomes.
Use lowercase snake_case format and preserve all important topic words. Avoid duplication.
Format Example:
understanding_selectors_in_css
applying_ways_to_apply_css
Format the output as a raw JSON object:
{ "learning_outcomes": ["Outcome 1", "Outcome 2"] }
Text:
---
%s
---`, readingMaterial)
}

func questionsPrompt(p qbank.QuestionPrompt) string {
	var numbered strings.Builder
	for i, lo := range p.LearningOutcomes {
		fmt.Fprintf(&numbered, "%d. %s\n", i+1, lo)
	}
	toughness := strings.ToUpper(p.Toughness)

	if p.IsCode {
		return fmt.Sprintf(`You are an expert programming assessment creator. Generate a JSON object with one coding-based question for each learning outcome below.

Question Guidelines:
- Each question must present a single, clear problem using positive language.
- Every question must include a relevant code snippet and require both question text and code to answer.
- Prefer phrasing such as "What will be the output of the following code snippet?" over direct numeric questions.
- Questions must align strictly with the provided reading material.

Options Guidelines:
- Exactly four options per question, consistent phrasing, similar length.
- Distractors must be plausible, realistic incorrect outcomes.
- Every option object MUST carry an "is_correct" boolean.

Explanation Guidelines:
- Explain why the correct answer is right using only concepts from the reading material; never reference "option 1", "option 2", or the source text.

Mode: %s. Toughness: %s.

Learning Outcomes to Assess:
---
%s---

Output Schema (Strict JSON):
{
  "mcqs": [
    {
      "core_concept": "string", "question_key": "string", "bloom_level": "string",
      "skills": ["string"], "toughness": "%s",
      "question_type": "CODE_ANALYSIS_MULTIPLE_CHOICE",
      "question": { "content": "string", "code_snippet": "string", "content_type": "MARKDOWN" },
      "options": [ { "content": "string", "is_correct": true }, { "content": "string", "is_correct": false } ],
      "explanation_for_answer": { "content": "string" }
    }
  ]
}

Reading Material to Use:
---
%s
---`, strings.ToUpper(string(p.Mode)), toughness, numbered.String(), toughness, p.ReadingMaterial)
	}

	return fmt.Sprintf(`You are an expert assessment creator. Generate a JSON object containing one high-quality, standalone quiz question per learning outcome, based strictly on the provided reading material.

Critical Quality Rules:
1. Standalone questions: never reference "the session", "the provided text", or similar — the student will not have the text.
2. No code snippets or programming syntax.
3. All options, correct and incorrect, must be plausible terms or concepts from the reading material.
4. Exactly four options, similar length and tone; avoid absolutes like "always" or "never"; use "All of the given options" instead of "All of the above".
5. The "skills" array must contain exactly ONE string: the learning outcome being assessed.
6. Explanations must justify the correct answer from the material and briefly contrast the rest, without the words "option 1", "option 2", etc.

Mode: %s. Toughness: %s.
Cognitive Levels: generate 70%% of questions from REMEMBERING and UNDERSTANDING and 30%% from APPLYING, ANALYZING and EVALUATING.

Learning Outcomes to Assess:
---
%s---

Output Schema (Strict JSON):
{
  "mcqs": [
    {
      "core_concept": "string", "question_key": "string",
      "bloom_level": "string (e.g., UNDERSTANDING, APPLYING)",
      "skills": ["string"], "toughness": "%s",
      "question_type": "MULTIPLE_CHOICE",
      "question": { "content": "string", "content_type": "MARKDOWN" },
      "options": [
        { "content": "string", "is_correct": true },
        { "content": "string", "is_correct": false },
        { "content": "string", "is_correct": false },
        { "content": "string", "is_correct": false }
      ],
      "explanation_for_answer": { "content": "string" }
    }
  ]
}

Reading Material to Use:
---
%s
---`, strings.ToUpper(string(p.Mode)), toughness, numbered.String(), toughness, p.ReadingMaterial)
}

func variantPrompt(base qbank.MCQ, readingMaterial string, numVariants int) string {
	if base.IsCode {
		return codeVariantPrompt(base, readingMaterial, numVariants)
	}
	return standardVariantPrompt(base, readingMaterial, numVariants)
}

func standardVariantPrompt(base qbank.MCQ, readingMaterial string, numVariants int) string {
	return fmt.Sprintf(`You are an expert assessment creator. Generate %d new, distinct variants of the base question below. Do not repeat the base question text in any variant.

Base Question Details:
- Question: %s
- Core Concept: %s

Variant diversity: cover as many of these types as the requested count allows — standard MULTIPLE_CHOICE, MORE_THAN_ONE_MULTIPLE_CHOICE, True/False (statements only, never phrased "True or False:"), statement-based, and fill-in-the-blank (blanks written as ________).

Critical Quality Rules:
1. Variants must be self-contained and test the SAME core concept and skill as the base question.
2. All options must be plausible terms or concepts from the reading material; distractors believable and relevant.
3. Every option object MUST have an "is_correct" boolean field.
4. Use plain language; explanations must be standalone, with no reference to the source material.

Output Schema (Strict JSON):
{ "mcqs": [ { "core_concept": %q, "question_key": "string", "skills": %s, "toughness": %q, "question_type": "string", "question": { "content": "string", "content_type": "MARKDOWN", "tag_names": %s }, "options": [ { "content": "string", "is_correct": true }, { "content": "string", "is_correct": false } ], "explanation_for_answer": { "content": "string" } } ] }

Reading Material to Use:
---
%s
---`, numVariants, base.Question.Content, base.CoreConcept,
		base.CoreConcept, jsonList(base.Skills), base.Toughness, jsonList(base.Question.TagNames),
		readingMaterial)
}

func codeVariantPrompt(base qbank.MCQ, readingMaterial string, numVariants int) string {
	return fmt.Sprintf(`You are an expert programming assessment creator. The base question is of type %q. Generate %d new, distinct variants of it.

Core Rules:
- Each variant must test the SAME core concept as the base question.
- Include the full code ONLY in the "code_snippet" field, never repeated in the question text.
- Every option object MUST have an "is_correct" boolean field.
- All questions must be fully self-contained with clear, unambiguous language.

Allowed Variant Types (use those that logically fit): output prediction, output prediction as True/False, error identification, identify-and-fix, and identify-functionality questions over the given code.

Base Question:
- Concept: %s
- Question: %s
- Code Snippet: %s

Output Schema (Strict JSON):
{ "mcqs": [ { "core_concept": %q, "question_key": "string", "skills": %s, "toughness": %q, "question_type": "CODE_ANALYSIS_MULTIPLE_CHOICE", "question": { "content": "string", "code_snippet": "string", "tag_names": %s }, "options": [ { "content": "string", "is_correct": true }, { "content": "string", "is_correct": false } ], "explanation_for_answer": { "content": "string" } } ] }

Reading Material to Use:
---
%s
---`, base.QuestionType, numVariants,
		base.CoreConcept, base.Question.Content, base.Question.CodeSnippet,
		base.CoreConcept, jsonList(base.Skills), base.Toughness, jsonList(base.Question.TagNames),
		readingMaterial)
}

func jsonList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
