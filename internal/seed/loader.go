// Package seed loads subject trees from YAML files on disk, for bootstrapping
// a fresh question bank.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

// subjectFile is the on-disk shape of one seed file: a subject with its
// topic/unit skeleton and optional reading material.
type subjectFile struct {
	Subject string `yaml:"subject"`
	Topics  []struct {
		Name  string `yaml:"name"`
		Units []struct {
			Name             string   `yaml:"name"`
			ReadingMaterial  string   `yaml:"readingMaterial"`
			LearningOutcomes []string `yaml:"learningOutcomes"`
		} `yaml:"units"`
	} `yaml:"topics"`
}

// Load walks rootDir and parses every YAML file into a subject tree. Files
// that fail to parse or lack a subject name are skipped with a warning.
func Load(rootDir string) ([]*qbank.Subject, error) {
	var subjects []*qbank.Subject

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		subject, err := loadFile(path)
		if err != nil {
			slog.Warn("skipping invalid seed file", "path", path, "error", err)
			return nil
		}
		if subject != nil {
			subjects = append(subjects, subject)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking seed directory: %w", err)
	}

	slog.Info("seed files loaded", "dir", rootDir, "subjects", len(subjects))
	return subjects, nil
}

func loadFile(path string) (*qbank.Subject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file subjectFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if strings.TrimSpace(file.Subject) == "" {
		// Not a subject file.
		return nil, nil
	}

	subject := &qbank.Subject{
		ID:     qbank.NewID(),
		Name:   strings.TrimSpace(file.Subject),
		Topics: []qbank.Topic{},
	}
	for _, t := range file.Topics {
		topic := qbank.Topic{
			ID:    qbank.NewID(),
			Name:  strings.TrimSpace(t.Name),
			Units: []qbank.Unit{},
		}
		for _, u := range t.Units {
			topic.Units = append(topic.Units, qbank.Unit{
				Name:             strings.TrimSpace(u.Name),
				ReadingMaterial:  u.ReadingMaterial,
				LearningOutcomes: append([]string{}, u.LearningOutcomes...),
				MCQs:             []qbank.MCQ{},
			})
		}
		subject.Topics = append(subject.Topics, topic)
	}
	return subject, nil
}

// Apply creates every loaded subject through the store, skipping subjects
// that already exist.
func Apply(ctx context.Context, store qbank.SubjectStore, subjects []*qbank.Subject) (int, error) {
	created := 0
	for _, subject := range subjects {
		err := store.Create(ctx, subject)
		if errors.Is(err, qbank.ErrSubjectExists) {
			slog.Info("subject already seeded, skipping", "subject", subject.Name)
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seeding subject %q: %w", subject.Name, err)
		}
		created++
	}
	return created, nil
}
