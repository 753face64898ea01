// Package export renders a subject's question bank as an Excel workbook,
// one sheet per topic.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

var headerRow = []string{
	"Unit", "Question Key", "Base", "Mode", "Question Type", "Core Concept",
	"Toughness", "Skills", "Question", "Code Snippet", "Options",
	"Correct Options", "Explanation", "Tags",
}

// Workbook builds an Excel workbook for the subject. Topics map to sheets;
// each MCQ is one row.
func Workbook(subject *qbank.Subject) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, topic := range subject.Topics {
		name := sheetName(topic.Name, i)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeTopic(f, name, topic); err != nil {
			return nil, err
		}
	}

	// Drop the default sheet only when the workbook has real content;
	// excelize requires at least one sheet.
	if len(subject.Topics) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}

	return f, nil
}

func writeTopic(f *excelize.File, sheet string, topic qbank.Topic) error {
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header on %q: %w", sheet, err)
	}

	row := 2
	for _, unit := range topic.Units {
		for _, mcq := range unit.MCQs {
			cells := mcqRow(unit.Name, mcq)
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("cell name for row %d: %w", row, err)
			}
			if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
				return fmt.Errorf("write row %d on %q: %w", row, sheet, err)
			}
			row++
		}
	}

	if err := f.SetColWidth(sheet, "I", "N", 48); err != nil {
		return fmt.Errorf("set column width on %q: %w", sheet, err)
	}
	return nil
}

func mcqRow(unitName string, mcq qbank.MCQ) []any {
	var options, correct []string
	for _, opt := range mcq.Options {
		options = append(options, opt.Content)
		if opt.IsCorrect {
			correct = append(correct, opt.Content)
		}
	}

	base := "variant"
	if mcq.IsBase {
		base = "base"
	}

	return []any{
		unitName,
		mcq.QuestionKey,
		base,
		string(mcq.Mode),
		mcq.QuestionType,
		mcq.CoreConcept,
		mcq.Toughness,
		strings.Join(mcq.Skills, "; "),
		mcq.Question.Content,
		mcq.Question.CodeSnippet,
		strings.Join(options, "\n"),
		strings.Join(correct, "\n"),
		mcq.Explanation.Content,
		strings.Join(mcq.Question.TagNames, "; "),
	}
}

// sheetName sanitizes a topic name into a legal, unique Excel sheet name.
// Excel forbids []:*?/\ and caps names at 31 characters.
func sheetName(topicName string, index int) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(topicName))

	if cleaned == "" {
		cleaned = fmt.Sprintf("Topic %d", index+1)
	}
	if len(cleaned) > 31 {
		cleaned = cleaned[:31]
	}
	return cleaned
}
