package genai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

// ErrMalformedContent marks a collaborator response that could not be parsed
// into the expected schema. Match with errors.Is.
var ErrMalformedContent = errors.New("malformed generated content")

// MalformedContentError carries the raw model output for diagnosis.
type MalformedContentError struct {
	Reason string
	Raw    string
}

func (e *MalformedContentError) Error() string {
	return fmt.Sprintf("malformed generated content: %s", e.Reason)
}

func (e *MalformedContentError) Is(target error) bool {
	return target == ErrMalformedContent
}

// The models are prompted for raw JSON but routinely fence it anyway, so
// both payload schemas are enforced after stripping.
const mcqPayloadSchema = `{
  "type": "object",
  "required": ["mcqs"],
  "properties": {
    "mcqs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "options"],
        "properties": {
          "core_concept": {"type": "string"},
          "question_key": {"type": "string"},
          "bloom_level": {"type": "string"},
          "skills": {"type": "array", "items": {"type": "string"}},
          "toughness": {"type": "string"},
          "question_type": {"type": "string"},
          "question": {
            "type": "object",
            "required": ["content"],
            "properties": {
              "content": {"type": "string"},
              "code_snippet": {"type": "string"},
              "content_type": {"type": "string"},
              "tag_names": {"type": "array", "items": {"type": "string"}}
            }
          },
          "options": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["content"],
              "properties": {
                "content": {"type": "string"},
                "is_correct": {"type": "boolean"}
              }
            }
          },
          "explanation_for_answer": {
            "type": "object",
            "properties": {"content": {"type": "string"}}
          }
        }
      }
    }
  }
}`

const outcomesPayloadSchema = `{
  "type": "object",
  "required": ["learning_outcomes"],
  "properties": {
    "learning_outcomes": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

// ExtractJSON strips markdown code fences from model output and trims
// whitespace, leaving what should be a bare JSON object.
func ExtractJSON(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// DecodeMCQs validates and decodes a generated question payload. Any
// deviation from the expected shape — unparsable JSON, missing mcqs array,
// wrong field types — returns a MalformedContentError carrying the raw text.
func DecodeMCQs(content string) ([]qbank.Generated, error) {
	text := ExtractJSON(content)
	if err := validatePayload(mcqPayloadSchema, text); err != nil {
		return nil, &MalformedContentError{Reason: err.Error(), Raw: content}
	}

	var payload struct {
		MCQs []qbank.Generated `json:"mcqs"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &MalformedContentError{Reason: err.Error(), Raw: content}
	}
	return payload.MCQs, nil
}

// DecodeOutcomes validates and decodes a learning-outcomes payload.
func DecodeOutcomes(content string) ([]string, error) {
	text := ExtractJSON(content)
	if err := validatePayload(outcomesPayloadSchema, text); err != nil {
		return nil, &MalformedContentError{Reason: err.Error(), Raw: content}
	}

	var payload struct {
		LearningOutcomes []string `json:"learning_outcomes"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &MalformedContentError{Reason: err.Error(), Raw: content}
	}
	return payload.LearningOutcomes, nil
}

func validatePayload(schema, doc string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("not valid JSON: %v", err)
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return fmt.Errorf("schema violation: %s", strings.Join(reasons, "; "))
	}
	return nil
}
