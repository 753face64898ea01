package qbank

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a globally unique opaque identifier for subjects, topics and
// questions.
func NewID() string {
	return uuid.NewString()
}

// NormalizeConcept turns a free-text core concept into a short slug used in
// question tags: lowercased, at most the first two words, hyphen-joined.
// Empty input normalizes to "general".
func NormalizeConcept(concept string) string {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(concept)))
	if len(parts) == 0 {
		return "general"
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "-")
}

// TopicPrefix derives the human-readable question key prefix from a topic
// name: initials for multi-word names ("Operating Systems" -> "OS"),
// otherwise the first three characters ("Python" -> "PYT").
func TopicPrefix(topicName string) string {
	words := strings.Fields(topicName)
	if len(words) > 1 {
		var b strings.Builder
		for _, w := range words {
			b.WriteString(string([]rune(w)[0]))
		}
		return strings.ToUpper(b.String())
	}
	runes := []rune(topicName)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// BaseQuestionKey builds the key for the n-th base question of a topic,
// zero-padded to two digits ("OP04").
func BaseQuestionKey(topicName string, n int) string {
	return fmt.Sprintf("%s%02d", TopicPrefix(topicName), n)
}

// VariantKey builds the key for the n-th variant of a base question
// ("OP04_V2").
func VariantKey(baseKey string, n int) string {
	return fmt.Sprintf("%s_V%d", baseKey, n)
}
